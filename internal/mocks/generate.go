// Package mocks provides gomock implementations of the storefront ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockStateStore(ctrl)
//	store.EXPECT().Save(gomock.Any(), "cart-storage", gomock.Any()).Return(nil)
//
// Hand-written doubles that keep real state live in internal/mocks/state.
package mocks

// Generate mock for StateStore interface from internal/ports package.
// This creates MockStateStore with methods for all StateStore interface methods:
// Load, Save, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=state_store_mock.go github.com/SlowBrain97/E-Commerce/internal/ports StateStore

// Generate mock for Navigator interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=navigator_mock.go github.com/SlowBrain97/E-Commerce/internal/ports Navigator
