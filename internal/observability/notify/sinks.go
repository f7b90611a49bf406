package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// WriterSink prints one line per toast, e.g. to the CLI's stderr.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink builds a WriterSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(_ context.Context, t Toast) {
	if s == nil || s.w == nil || t.Message == "" {
		return
	}
	prefix := "i"
	switch t.Level {
	case LevelSuccess:
		prefix = "ok"
	case LevelError:
		prefix = "error"
	case LevelInfo:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, "[%s] %s\n", prefix, t.Message)
}

// LogSink records toasts through slog.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink builds a LogSink; a nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Level == LevelError {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "toast", "level", string(t.Level), "message", t.Message)
}

// Multi fans a toast out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return SinkFunc(func(ctx context.Context, t Toast) {
		for _, s := range out {
			s.Notify(ctx, t)
		}
	})
}

// Recorder keeps every toast it receives.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.toasts))
	for i, t := range r.toasts {
		out[i] = t.Message
	}
	return out
}

// Drain returns and forgets the recorded toasts.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

type collectorKey struct{}

// WithCollector attaches a fresh Recorder to ctx. ContextSink delivers into it.
func WithCollector(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, collectorKey{}, rec), rec
}

// ContextSink delivers toasts to the Recorder attached by WithCollector, if any.
var ContextSink Sink = SinkFunc(func(ctx context.Context, t Toast) {
	if rec, ok := ctx.Value(collectorKey{}).(*Recorder); ok && rec != nil {
		rec.Notify(ctx, t)
	}
})
