package entity

import (
	"time"

	"lead_relay/internal/domain/value"
)

// Lead принятая и очищенная заявка, готовая к отправке.
type Lead struct {
	Name        string
	Phone       value.Phone
	QueryParams value.QueryParams
	StartedAt   time.Time
	ReceivedAt  time.Time
	ClientIP    string
}

// FillDuration сколько пользователь заполнял форму.
func (l Lead) FillDuration() time.Duration {
	return l.ReceivedAt.Sub(l.StartedAt)
}
