package server

// Server объединяет HTTP-обработчики сервиса. Сейчас он один, приём заявок.
type Server struct {
	LeadServer
}

func NewServer(
	leadServer LeadServer,
) Server {
	return Server{
		LeadServer: leadServer,
	}
}
