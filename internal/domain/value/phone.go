package value

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PhoneLength количество цифр в нормализованном российском номере.
	PhoneLength = 11

	phoneCountryDigit = '7'
	phoneTrunkDigit   = '8'
)

var ErrInvalidPhone = errors.New("phone must normalize to 11 digits")

// Phone нормализованный номер: ровно 11 цифр, первая 7.
type Phone string

// ParsePhone нормализует произвольный ввод и проверяет длину.
func ParsePhone(s string) (Phone, error) {
	digits := NormalizePhoneDigits(s)
	if len(digits) != PhoneLength {
		return "", fmt.Errorf("parse phone %q: %w", s, ErrInvalidPhone)
	}

	return Phone(digits), nil
}

func (p Phone) String() string {
	return string(p)
}

// Formatted возвращает номер в виде +7 (XXX) XXX-XX-XX.
func (p Phone) Formatted() string {
	return FormatPhone(string(p))
}

// NormalizePhoneDigits оставляет только цифры, приводит номер к коду 7
// (8 в начале заменяется, иначе 7 дописывается) и обрезает до 11 цифр.
// Пустой ввод остаётся пустым.
func NormalizePhoneDigits(s string) string {
	digits := onlyDigits(s)
	if digits == "" {
		return ""
	}

	switch digits[0] {
	case phoneTrunkDigit:
		digits = string(phoneCountryDigit) + digits[1:]
	case phoneCountryDigit:
	default:
		digits = string(phoneCountryDigit) + digits
	}

	if len(digits) > PhoneLength {
		digits = digits[:PhoneLength]
	}

	return digits
}

// FormatPhone рисует маску по мере накопления цифр:
// "+7", "+7 (9", "+7 (999)", "+7 (999) 1", "+7 (999) 123-4", ...
func FormatPhone(s string) string {
	digits := NormalizePhoneDigits(s)
	if digits == "" {
		return ""
	}

	rest := digits[1:]

	var b strings.Builder

	b.WriteString("+7")

	if len(rest) > 0 {
		b.WriteString(" (")
		b.WriteString(rest[:min(3, len(rest))])

		if len(rest) >= 3 {
			b.WriteString(")")
		}
	}

	if len(rest) > 3 {
		b.WriteString(" ")
		b.WriteString(rest[3:min(6, len(rest))])
	}

	if len(rest) > 6 {
		b.WriteString("-")
		b.WriteString(rest[6:min(8, len(rest))])
	}

	if len(rest) > 8 {
		b.WriteString("-")
		b.WriteString(rest[8:min(10, len(rest))])
	}

	return b.String()
}

func onlyDigits(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
