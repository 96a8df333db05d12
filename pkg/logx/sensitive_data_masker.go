package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// Telegram bot token in the Bot API path.
	regexp.MustCompile(`(/bot)\d+:[\w-]+?(/)`),
	// JSON string fields; escaped quotes stay inside the value.
	regexp.MustCompile(`("name":\s?")(?:[^"\\]|\\.)*(")`),
	regexp.MustCompile(`("phone":\s?")(?:[^"\\]|\\.)*(")`),
	regexp.MustCompile(`("text":\s?")(?:[^"\\]|\\.)*(")`),
	regexp.MustCompile(`("[Pp]assword":\s?")(?:[^"\\]|\\.)*(")`),
}

// SensitiveDataMasker hides lead personal data and credentials in dumped
// HTTP traffic.
type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
