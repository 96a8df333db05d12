package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Milliseconds длительность, заданная целым числом миллисекунд ("1500")
// или в формате Go ("1.5s").
type Milliseconds time.Duration

func (m *Milliseconds) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return fmt.Errorf("negative duration %q", s)
		}

		*m = Milliseconds(time.Duration(ms) * time.Millisecond)

		return nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("time.ParseDuration: %w", err)
	}

	if d < 0 {
		return fmt.Errorf("negative duration %q", s)
	}

	*m = Milliseconds(d)

	return nil
}

func (m Milliseconds) Duration() time.Duration {
	return time.Duration(m)
}
