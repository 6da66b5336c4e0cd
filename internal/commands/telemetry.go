package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to a Telemetry callback once a hook command
// (propagate, sync, cleanup, settings save) has finished.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry observes command outcomes.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry records each outcome on logger with its duration.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logger
		if len(info.Fields) > 0 {
			entry = logging.WithFields(entry, info.Fields)
		}
		elapsed := info.Duration.Milliseconds()
		if info.Status == TelemetryStatusSuccess {
			entry.Info("l10n.command.telemetry", "status", info.Status, "duration_ms", elapsed)
			return
		}
		entry.Error("l10n.command.telemetry", "status", info.Status, "duration_ms", elapsed, "error", info.Error)
	}
}
