package ports

import "context"

// Navigator moves the user to another client route, for example the login page
// after the session could not be refreshed.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, path string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	if f == nil {
		return
	}
	f(ctx, path)
}
