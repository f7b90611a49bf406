package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/SlowBrain97/E-Commerce/internal/observability/errors"
	"github.com/SlowBrain97/E-Commerce/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// RequestMetric captures one outbound backend call.
type RequestMetric struct {
	Method   string
	Route    string
	Status   int
	Retried  bool
	Duration time.Duration
	Err      error
}

// EmitRequest emits the standard backend request counter and timing.
func EmitRequest(sink statsd.Sink, in RequestMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	tags := map[string]string{
		"method":  in.Method,
		"route":   in.Route,
		"result":  result,
		"retried": strconv.FormatBool(in.Retried),
	}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if class := obserrors.Classify(in.Err); class != "" {
		tags["error_class"] = class
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.request.duration", in.Duration, CloneTags(tags))
	}
}

// StoreAction captures one store action outcome (login, cart add, ...).
type StoreAction struct {
	Store  string
	Action string
	Err    error
}

// EmitStoreAction counts store actions by outcome.
func EmitStoreAction(sink statsd.Sink, in StoreAction) {
	if sink == nil {
		return
	}
	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	sink.Count("store.action", 1, map[string]string{
		"store":  in.Store,
		"action": in.Action,
		"result": result,
	})
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
