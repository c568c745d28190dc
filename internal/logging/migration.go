package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// MigrationLogger adapts a Logger to the Printf/Fatalf logger goose
// expects, so migration output ends up in the structured log.
type MigrationLogger struct {
	l    Logger
	exit func(code int)
}

func NewMigrationLogger(l Logger) *MigrationLogger {
	return &MigrationLogger{l: l, exit: os.Exit}
}

func (m *MigrationLogger) Printf(format string, v ...any) {
	m.l.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level and exits, as goose's default logger does.
func (m *MigrationLogger) Fatalf(format string, v ...any) {
	m.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	m.exit(1)
}
