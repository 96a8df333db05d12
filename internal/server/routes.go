package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lead_relay/pkg/httpx/reply"
)

// RegisterRoutes обработчик заявок сам разбирает метод: OPTIONS и чужие
// методы должны получать CORS-заголовки и ответы в его порядке проверок.
func (s Server) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/", handler(s.postLead))
	r.Route("/v1", func(r chi.Router) {
		r.HandleFunc("/lead", handler(s.postLead))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
