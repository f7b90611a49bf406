package notify

import (
	"context"
	"time"
)

// Level classifies a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a short user-facing message.
type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Success builds a success toast.
func Success(msg string) Toast { return Toast{Level: LevelSuccess, Message: msg, At: time.Now()} }

// Error builds an error toast.
func Error(msg string) Toast { return Toast{Level: LevelError, Message: msg, At: time.Now()} }

// Info builds an informational toast.
func Info(msg string) Toast { return Toast{Level: LevelInfo, Message: msg, At: time.Now()} }

// Sink describes a destination capable of surfacing user-facing notifications.
type Sink interface {
	Notify(ctx context.Context, t Toast)
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, t Toast)

// Notify implements the Sink interface.
func (f SinkFunc) Notify(ctx context.Context, t Toast) {
	if f == nil {
		return
	}
	f(ctx, t)
}

// Nop discards every toast.
var Nop Sink = SinkFunc(func(context.Context, Toast) {})

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop
	}
	return s
}
