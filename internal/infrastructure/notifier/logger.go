package notifier

import (
	"fmt"
	"log/slog"

	"lead_relay/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// botLogger пересылает внутренние сообщения telego в slog.
type botLogger struct {
	log *slog.Logger
}

func (l botLogger) Debugf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l botLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}
