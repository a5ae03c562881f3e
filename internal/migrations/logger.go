package migrations

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Simplici0/cupcost/internal/logging"
)

// gooseLogger forwards goose output to the default slog logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	slog.Info(gooseMessage(format, v), "component", "goose")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logging.Fatal(gooseMessage(format, v), "component", "goose")
}

func gooseMessage(format string, v []any) string {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	return strings.TrimPrefix(msg, "goose: ")
}
