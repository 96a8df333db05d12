package lead

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"lead_relay/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// contactFields уже очищенные имя и телефон. Длина имени считается в символах.
type contactFields struct {
	Name  string `validate:"min=2,max=80"`
	Phone string `validate:"len=11,numeric,startswith=7"`
}

// check сначала проверяет имя, потом телефон: клиенту сообщаем о первой проблеме.
func (f contactFields) check() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	var nameErr, phoneErr error

	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "Name":
			nameErr = domain.ErrInvalidName.Wrap(fe)
		case "Phone":
			phoneErr = domain.ErrInvalidPhone.Wrap(fe)
		}
	}

	if nameErr != nil {
		return nameErr
	}

	if phoneErr != nil {
		return phoneErr
	}

	return fmt.Errorf("validate.Struct: %w", err)
}
