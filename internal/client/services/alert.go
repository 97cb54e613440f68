package services

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/logging"
)

// Alerter shows a blocking, user-visible message.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// LogAlerter writes alerts to a logger. Used when no UI is attached.
type LogAlerter struct {
	Logger logging.Logger
}

// Alert logs msg at warning level.
func (a LogAlerter) Alert(msg string) {
	a.Logger.Warn(context.Background(), "alert", "message", msg)
}
