package value

import "strings"

// SanitizeText заменяет управляющие символы пробелами, схлопывает пробельные
// последовательности и обрезает края.
func SanitizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes обрезает строку до n символов.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
