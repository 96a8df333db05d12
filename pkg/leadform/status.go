package leadform

// Kind итог отправки формы.
type Kind string

const (
	KindNotConnected Kind = "not_connected"
	KindIncomplete   Kind = "incomplete"
	KindInvalidPhone Kind = "invalid_phone"
	KindNoConsent    Kind = "no_consent"
	KindStale        Kind = "stale"
	KindSent         Kind = "sent"
	KindFailed       Kind = "failed"
)

const (
	MessageNotConnected = "Сервис заявок ещё не подключен."
	MessageIncomplete   = "Заполните имя и телефон."
	MessageInvalidPhone = "Введите корректный телефон."
	MessageNoConsent    = "Подтвердите согласие с политикой конфиденциальности."
	MessageStale        = "Обновите страницу и попробуйте снова."
	MessageSending      = "Отправляем..."
	MessageSuccess      = "Спасибо!"
	MessageFailed       = "Не удалось отправить. Попробуйте ещё раз."
)

// Status то, что форма показывает пользователю. HTTPStatus ноль, если
// запрос не отправлялся.
type Status struct {
	Kind       Kind
	Message    string
	HTTPStatus int
}

func (s Status) OK() bool {
	return s.Kind == KindSent
}

func (s Status) String() string {
	return s.Message
}

func newStatus(kind Kind, message string) Status {
	return Status{Kind: kind, Message: message}
}
