package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

type requestOptions struct {
	query  url.Values
	header http.Header
	quiet  bool
}

// RequestOption customises a single call.
type RequestOption func(*requestOptions)

// WithQuery merges v into the request's query string.
func WithQuery(v url.Values) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, vals := range v {
			for _, val := range vals {
				o.query.Add(k, val)
			}
		}
	}
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = http.Header{}
		}
		o.header.Set(key, value)
	}
}

// Quiet suppresses the generic error notification; the caller surfaces its own.
func Quiet() RequestOption {
	return func(o *requestOptions) { o.quiet = true }
}

func buildOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// retryState is the per-request refresh flag. A request starts notRetried and
// becomes retried once it has triggered a refresh.
type retryState int

const (
	notRetried retryState = iota
	retried
)

type retryKey struct{}

func withRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryKey{}, retried)
}

func isRetried(ctx context.Context) bool {
	s, _ := ctx.Value(retryKey{}).(retryState)
	return s == retried
}
