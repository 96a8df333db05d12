package value

import "strings"

const phoneInputPrefix = "+7 ("

// PhoneEditor держит поле телефона в маске и не даёт каретке прыгать при
// вводе и удалении. Позиции каретки считаются в рунах.
type PhoneEditor struct{}

// Edit результат правки поля: новое значение и позиция каретки.
type Edit struct {
	Value string
	Caret int
}

// Input переформатирует сырое значение после ввода, сохраняя число цифр
// слева от каретки.
func (PhoneEditor) Input(raw string, caret int) Edit {
	digitsBefore := countDigitsBefore(raw, caret)
	formatted := FormatPhone(raw)

	return Edit{
		Value: formatted,
		Caret: caretAfterDigits(formatted, digitsBefore),
	}
}

// Backspace обрабатывает удаление, когда слева от каретки стоит разделитель
// маски: вместо него удаляется ближайшая цифра. handled=false означает, что
// поле должно отработать удаление само.
func (PhoneEditor) Backspace(value string, start, end int) (Edit, bool) {
	if start != end || start <= 0 {
		return Edit{}, false
	}

	runes := []rune(value)
	if start > len(runes) {
		return Edit{}, false
	}

	if left := runes[start-1]; left >= '0' && left <= '9' {
		return Edit{}, false
	}

	digitsBefore := countDigitsBefore(value, start)
	if digitsBefore <= 0 {
		return Edit{}, false
	}

	removeIndex := digitsBefore - 1
	formatted := FormatPhone(removeDigitAt(NormalizePhoneDigits(value), removeIndex))

	return Edit{
		Value: formatted,
		Caret: caretAfterDigits(formatted, removeIndex),
	}, true
}

// Focus подставляет начало маски в пустое поле.
func (PhoneEditor) Focus(value string) Edit {
	if strings.TrimSpace(value) == "" {
		return Edit{Value: phoneInputPrefix, Caret: len([]rune(phoneInputPrefix))}
	}

	return Edit{Value: value, Caret: len([]rune(value))}
}

// Blur очищает поле, в котором осталась только маска.
func (PhoneEditor) Blur(value string) string {
	if value == "+7" || value == phoneInputPrefix {
		return ""
	}

	return value
}

func countDigitsBefore(value string, index int) int {
	count := 0

	for i, r := range []rune(value) {
		if i >= index {
			break
		}

		if r >= '0' && r <= '9' {
			count++
		}
	}

	return count
}

func caretAfterDigits(value string, digits int) int {
	if digits <= 0 {
		return 0
	}

	runes := []rune(value)
	seen := 0

	for i, r := range runes {
		if r >= '0' && r <= '9' {
			seen++
			if seen == digits {
				return i + 1
			}
		}
	}

	return len(runes)
}

func removeDigitAt(digits string, index int) string {
	if index < 0 || index >= len(digits) {
		return digits
	}

	return digits[:index] + digits[index+1:]
}
