package notifier

import (
	"strings"

	"lead_relay/internal/domain/entity"
)

// LeadText текст уведомления о заявке. Без разметки: имя и параметры
// приходят от посетителя и не должны интерпретироваться как HTML.
func LeadText(lead entity.Lead) string {
	var b strings.Builder

	b.WriteString("Новая заявка\n")
	b.WriteString("Имя: ")
	b.WriteString(lead.Name)
	b.WriteString("\nТелефон: ")
	b.WriteString(lead.Phone.Formatted())

	if len(lead.QueryParams) > 0 {
		b.WriteString("\nПараметры:")

		for _, p := range lead.QueryParams {
			b.WriteString("\n")
			b.WriteString(p.Key)
			b.WriteString(": ")
			b.WriteString(p.Value)
		}
	}

	return b.String()
}
