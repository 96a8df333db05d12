package lead

import (
	"time"

	"lead_relay/internal/domain/value"
)

// Submission заявка в том виде, в каком её прислала форма. Ничему из неё
// нельзя доверять до проверки в Service.Submit.
type Submission struct {
	Name    string
	Phone   string
	Company string
	// StartedAt момент открытия формы; нулевое значение означает, что метки нет.
	StartedAt   time.Time
	QueryParams []value.QueryParam
	ClientIP    string
}

type Outcome string

const (
	OutcomeRelayed  Outcome = "relayed"
	OutcomeHoneypot Outcome = "honeypot"
)

func (o Outcome) String() string {
	return string(o)
}
