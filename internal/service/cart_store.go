package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
	"github.com/SlowBrain97/E-Commerce/internal/observability/metrics"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/observability/statsd"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// Cart store notification messages.
const (
	MsgCartAdded         = "Added to cart!"
	MsgCartAddFailed     = "Failed to add to cart"
	MsgCartUpdated       = "Cart updated!"
	MsgCartUpdateFailed  = "Failed to update cart"
	MsgCartRemoved       = "Item removed from cart"
	MsgCartRemoveFailed  = "Failed to remove item"
	MsgCartCleared       = "Cart cleared"
	MsgCartClearFailed   = "Failed to clear cart"
	MsgCartValidateError = "Failed to validate cart"
)

// ErrInvalidQuantity rejects a cart line update below one before any network call.
var ErrInvalidQuantity = apperrors.ValidationField("quantity", "Quantity must be at least 1")

// CartStoreOptions groups dependencies for CartStore.
type CartStoreOptions struct {
	Cart    CartBackend
	State   ports.StateStore
	Sink    notify.Sink
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// persistedCart is the shape stored under CartStateKey.
type persistedCart struct {
	Cart *model.Cart `json:"cart"`
}

// CartStore caches the server-held cart. Mutations are followed by a full
// refetch; totals are always the server's.
type CartStore struct {
	backend CartBackend
	state   ports.StateStore
	sink    notify.Sink
	logger  *slog.Logger
	metrics statsd.Sink

	mu      sync.RWMutex
	cart    *model.Cart
	loading bool
}

// NewCartStore constructs an empty CartStore.
func NewCartStore(opts CartStoreOptions) *CartStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStore{
		backend: opts.Cart,
		state:   opts.State,
		sink:    notify.OrNop(opts.Sink),
		logger:  logger.With("component", "cart_store"),
		metrics: opts.Metrics,
	}
}

// Snapshot returns a copy of the cached cart, or nil when none is cached.
func (s *CartStore) Snapshot() *model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Loading reports whether an action is in flight.
func (s *CartStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ItemCount returns the server's total item count for the cached cart.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems
}

// Line returns the cached line with the given ID, or a not-found error when
// no cached cart holds it.
func (s *CartStore) Line(lineID string) (model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.cart.FindItem(lineID); ok {
		return item, nil
	}
	return model.CartItem{}, apperrors.NotFound(fmt.Sprintf("Cart item %s not found", lineID))
}

func (s *CartStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// replace swaps the snapshot wholesale, clears loading and persists.
func (s *CartStore) replace(ctx context.Context, cart *model.Cart) {
	s.mu.Lock()
	s.cart = cart.Clone()
	s.loading = false
	s.mu.Unlock()

	if err := saveJSON(ctx, s.state, CartStateKey, persistedCart{Cart: cart}); err != nil {
		s.logger.WarnContext(ctx, "persist cart failed", "error", err)
	}
}

// Fetch replaces the snapshot with the server cart. Failures are logged and
// returned, never notified.
func (s *CartStore) Fetch(ctx context.Context) error {
	s.setLoading(true)
	cart, err := s.backend.Get(ctx, apiclient.Quiet())
	if err != nil {
		s.setLoading(false)
		s.logger.WarnContext(ctx, "fetch cart failed", "error", err)
		return err
	}
	s.replace(ctx, cart)
	return nil
}

// mutate runs a cart write and, only if it succeeded, refetches the cart.
// A failed refetch after a successful write is logged; the write still counts.
func (s *CartStore) mutate(ctx context.Context, action, okMsg, failMsg string, call func() error) error {
	s.setLoading(true)
	err := call()
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "cart", Action: action, Err: err})
	if err != nil {
		s.setLoading(false)
		s.sink.Notify(ctx, notify.Error(apiclient.MessageOr(err, failMsg)))
		return err
	}
	if fetchErr := s.Fetch(ctx); fetchErr != nil {
		s.logger.WarnContext(ctx, "refetch after cart write failed", "action", action, "error", fetchErr)
	}
	s.sink.Notify(ctx, notify.Success(okMsg))
	return nil
}

// Add puts quantity units of a product (and optional variant) in the cart.
func (s *CartStore) Add(ctx context.Context, productID, variantID string, quantity int) error {
	req := model.AddToCartRequest{ProductID: productID, VariantID: variantID, Quantity: quantity}
	return s.mutate(ctx, "add", MsgCartAdded, MsgCartAddFailed, func() error {
		_, err := s.backend.Add(ctx, req, apiclient.Quiet())
		return err
	})
}

// UpdateItem sets a line's quantity. Quantities below one are rejected locally.
func (s *CartStore) UpdateItem(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.mutate(ctx, "update", MsgCartUpdated, MsgCartUpdateFailed, func() error {
		_, err := s.backend.UpdateItem(ctx, lineID, quantity, apiclient.Quiet())
		return err
	})
}

// Remove deletes a line.
func (s *CartStore) Remove(ctx context.Context, lineID string) error {
	return s.mutate(ctx, "remove", MsgCartRemoved, MsgCartRemoveFailed, func() error {
		return s.backend.RemoveItem(ctx, lineID, apiclient.Quiet())
	})
}

// Clear empties the server cart and, once confirmed, the snapshot.
func (s *CartStore) Clear(ctx context.Context) error {
	s.setLoading(true)
	err := s.backend.Clear(ctx, apiclient.Quiet())
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "cart", Action: "clear", Err: err})
	if err != nil {
		s.setLoading(false)
		s.sink.Notify(ctx, notify.Error(apiclient.MessageOr(err, MsgCartClearFailed)))
		return err
	}
	s.replace(ctx, nil)
	s.sink.Notify(ctx, notify.Success(MsgCartCleared))
	return nil
}

// Sync replaces the server cart with lines; the response becomes the snapshot.
// Failures are logged and returned, never notified.
func (s *CartStore) Sync(ctx context.Context, lines []model.AddToCartRequest) error {
	s.setLoading(true)
	cart, err := s.backend.Sync(ctx, lines, apiclient.Quiet())
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "cart", Action: "sync", Err: err})
	if err != nil {
		s.setLoading(false)
		s.logger.WarnContext(ctx, "sync cart failed", "lines", len(lines), "error", err)
		return err
	}
	s.replace(ctx, cart)
	return nil
}

// Validate asks the server to check the cart against stock and prices and
// returns its verdict. The snapshot is not touched.
func (s *CartStore) Validate(ctx context.Context) (string, error) {
	msg, err := s.backend.Validate(ctx, apiclient.Quiet())
	metrics.EmitStoreAction(s.metrics, metrics.StoreAction{Store: "cart", Action: "validate", Err: err})
	if err != nil {
		s.sink.Notify(ctx, notify.Error(apiclient.MessageOr(err, MsgCartValidateError)))
		return "", err
	}
	if msg != "" {
		s.sink.Notify(ctx, notify.Info(msg))
	}
	return msg, nil
}

// Reset drops the snapshot and its persisted copy without calling the backend.
func (s *CartStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.cart = nil
	s.loading = false
	s.mu.Unlock()
	return deleteKey(ctx, s.state, CartStateKey)
}

// Restore loads the persisted snapshot. An unreadable record is discarded.
func (s *CartStore) Restore(ctx context.Context) error {
	var p persistedCart
	found, err := loadJSON(ctx, s.state, CartStateKey, &p)
	if !found {
		return err
	}
	if err != nil {
		s.logger.WarnContext(ctx, "discarding persisted cart", "error", err)
		return deleteKey(ctx, s.state, CartStateKey)
	}
	s.mu.Lock()
	s.cart = p.Cart
	s.mu.Unlock()
	return nil
}
