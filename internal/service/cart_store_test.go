package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlowBrain97/E-Commerce/internal/api"
	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	"github.com/SlowBrain97/E-Commerce/internal/domain/model"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
	mocks "github.com/SlowBrain97/E-Commerce/internal/mocks/state"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
)

func newCartFixture(backend *fakeCart) (*CartStore, *mocks.MemoryStateStore, *notify.Recorder) {
	state := mocks.NewMemoryStateStore()
	toasts := &notify.Recorder{}
	store := NewCartStore(CartStoreOptions{Cart: backend, State: state, Sink: toasts})
	return store, state, toasts
}

func TestCartStore_AddRefetchesSnapshot(t *testing.T) {
	backend := &fakeCart{cart: model.Cart{Currency: "VND"}}
	store, state, toasts := newCartFixture(backend)

	require.NoError(t, store.Add(context.Background(), "42", "", 1))

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.TotalItems)
	assert.Equal(t, backend.cart.Items, snap.Items)
	assert.Equal(t, int32(1), backend.gets.Load())
	assert.False(t, store.Loading())
	assert.Equal(t, []string{MsgCartAdded}, toasts.Messages())
	assert.True(t, state.Has(CartStateKey))
}

func TestCartStore_AddFailureKeepsSnapshot(t *testing.T) {
	backend := &fakeCart{addErr: serverErr(409, "Insufficient stock")}
	store, _, toasts := newCartFixture(backend)

	err := store.Add(context.Background(), "42", "", 99)

	require.Error(t, err)
	assert.Nil(t, store.Snapshot())
	assert.Zero(t, backend.gets.Load())
	assert.False(t, store.Loading())
	assert.Equal(t, []string{"Insufficient stock"}, toasts.Messages())
}

func TestCartStore_UpdateItemRejectsLowQuantity(t *testing.T) {
	backend := &fakeCart{}
	store, _, toasts := newCartFixture(backend)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "42", "", 2))
	before := store.Snapshot()
	calls := backend.calls.Load()

	for _, q := range []int{0, -1} {
		err := store.UpdateItem(ctx, "line-42", q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	assert.Equal(t, calls, backend.calls.Load())
	assert.Equal(t, before, store.Snapshot())
	assert.Equal(t, []string{MsgCartAdded}, toasts.Messages())
}

func TestCartStore_UpdateAndRemove(t *testing.T) {
	backend := &fakeCart{}
	store, _, toasts := newCartFixture(backend)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "42", "", 1))

	require.NoError(t, store.UpdateItem(ctx, "line-42", 3))
	assert.Equal(t, 3, store.ItemCount())

	require.NoError(t, store.Remove(ctx, "line-42"))
	assert.Equal(t, 0, store.ItemCount())
	assert.True(t, store.Snapshot().IsEmpty())

	assert.Equal(t, []string{MsgCartAdded, MsgCartUpdated, MsgCartRemoved}, toasts.Messages())
}

func TestCartStore_FailureMessagesFallBack(t *testing.T) {
	backend := &fakeCart{
		updateErr: errors.New("network"),
		removeErr: serverErr(500, ""),
		clearErr:  serverErr(500, ""),
	}
	store, _, toasts := newCartFixture(backend)
	ctx := context.Background()

	require.Error(t, store.UpdateItem(ctx, "x", 2))
	require.Error(t, store.Remove(ctx, "x"))
	require.Error(t, store.Clear(ctx))

	assert.Equal(t, []string{MsgCartUpdateFailed, MsgCartRemoveFailed, MsgCartClearFailed}, toasts.Messages())
}

func TestCartStore_FailedMutationsKeepSeededSnapshot(t *testing.T) {
	backend := &fakeCart{cart: model.Cart{Currency: "VND"}}
	store, _, toasts := newCartFixture(backend)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "42", "", 2))
	seeded := store.Snapshot()
	require.Equal(t, 2, seeded.TotalItems)

	backend.updateErr = serverErr(409, "Insufficient stock")
	backend.removeErr = serverErr(500, "")
	backend.clearErr = errors.New("connection reset")
	gets := backend.gets.Load()

	steps := map[string]func() error{
		"update": func() error { return store.UpdateItem(ctx, "line-42", 5) },
		"remove": func() error { return store.Remove(ctx, "line-42") },
		"clear":  func() error { return store.Clear(ctx) },
	}
	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			require.Error(t, step())
			assert.Equal(t, seeded, store.Snapshot())
			assert.False(t, store.Loading())
		})
	}
	assert.Equal(t, gets, backend.gets.Load())
	assert.Len(t, toasts.Messages(), 4)
}

func TestCartStore_Line(t *testing.T) {
	store, _, _ := newCartFixture(&fakeCart{})
	ctx := context.Background()

	_, err := store.Line("line-42")
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, store.Add(ctx, "42", "", 2))
	item, err := store.Line("line-42")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = store.Line("line-7")
	assert.True(t, apperrors.IsNotFound(err))
	assert.EqualError(t, err, "Cart item line-7 not found")
}

func TestCartStore_RefetchFailureStillReportsSuccess(t *testing.T) {
	backend := &fakeCart{getErr: serverErr(503, "")}
	store, _, toasts := newCartFixture(backend)

	require.NoError(t, store.Add(context.Background(), "42", "", 1))

	assert.Nil(t, store.Snapshot())
	assert.False(t, store.Loading())
	assert.Equal(t, []string{MsgCartAdded}, toasts.Messages())
}

func TestCartStore_ClearEmptiesSnapshot(t *testing.T) {
	backend := &fakeCart{}
	store, state, toasts := newCartFixture(backend)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "42", "", 1))

	require.NoError(t, store.Clear(ctx))

	assert.Nil(t, store.Snapshot())
	raw, err := state.Load(ctx, CartStateKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":null}`, string(raw))
	assert.Equal(t, []string{MsgCartAdded, MsgCartCleared}, toasts.Messages())
}

func TestCartStore_SyncUsesResponseWithoutRefetch(t *testing.T) {
	backend := &fakeCart{}
	store, _, toasts := newCartFixture(backend)

	err := store.Sync(context.Background(), []model.AddToCartRequest{{ProductID: "1", Quantity: 2}, {ProductID: "2", Quantity: 1}})

	require.NoError(t, err)
	assert.Equal(t, 3, store.ItemCount())
	assert.Zero(t, backend.gets.Load())
	assert.Empty(t, toasts.Messages())
}

func TestCartStore_SyncFailureIsNotNotified(t *testing.T) {
	backend := &fakeCart{syncErr: serverErr(500, "boom")}
	store, _, toasts := newCartFixture(backend)

	require.Error(t, store.Sync(context.Background(), nil))

	assert.Empty(t, toasts.Messages())
	assert.False(t, store.Loading())
}

func TestCartStore_FetchFailureIsNotNotified(t *testing.T) {
	backend := &fakeCart{getErr: serverErr(500, "boom")}
	store, _, toasts := newCartFixture(backend)

	require.Error(t, store.Fetch(context.Background()))
	assert.Empty(t, toasts.Messages())
}

func TestCartStore_Validate(t *testing.T) {
	store, _, toasts := newCartFixture(&fakeCart{})

	msg, err := store.Validate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Cart is valid", msg)
	assert.Equal(t, []string{"Cart is valid"}, toasts.Messages())
}

func TestCartStore_RestoreAndReset(t *testing.T) {
	store, state, _ := newCartFixture(&fakeCart{})
	ctx := context.Background()
	state.Put(CartStateKey, []byte(`{"cart":{"items":[{"id":"a","productId":"1","quantity":2}],"totalItems":2,"totalPrice":10,"currency":"VND"}}`))

	require.NoError(t, store.Restore(ctx))
	assert.Equal(t, 2, store.ItemCount())

	require.NoError(t, store.Reset(ctx))
	assert.Nil(t, store.Snapshot())
	assert.False(t, state.Has(CartStateKey))
}

func TestCartStore_RestoreDiscardsGarbage(t *testing.T) {
	store, state, _ := newCartFixture(&fakeCart{})
	state.Put(CartStateKey, []byte(`not json`))

	require.NoError(t, store.Restore(context.Background()))

	assert.Nil(t, store.Snapshot())
	assert.False(t, state.Has(CartStateKey))
}

// End to end over the real client: after a successful add the snapshot is
// exactly what the following GET returned, and a rejected update never hits
// the network.
func TestCartStore_OverHTTP(t *testing.T) {
	var hits atomic.Int32
	serverCart := model.Cart{Currency: "VND"}

	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "status": 200, "data": data})
	}
	mux.HandleFunc("POST /api/cart/add", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req model.AddToCartRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		serverCart.Items = append(serverCart.Items, model.CartItem{
			ID: "1", ProductID: req.ProductID, Quantity: req.Quantity, Price: 250000,
			AddedAt: "2025-10-18T09:37:12.123456",
		})
		serverCart.TotalItems += req.Quantity
		serverCart.TotalPrice += 250000 * float64(req.Quantity)
		write(w, serverCart.Items[len(serverCart.Items)-1])
	})
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		write(w, serverCart)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	store := NewCartStore(CartStoreOptions{Cart: api.New(client).Cart})
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "42", "", 1))
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.TotalItems)
	assert.InDelta(t, 250000, snap.TotalPrice, 0.001)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "2025-10-18T09:37:12.123456", snap.Items[0].AddedAt)
	assert.Equal(t, int32(2), hits.Load())

	require.ErrorIs(t, store.UpdateItem(ctx, "1", 0), ErrInvalidQuantity)
	assert.Equal(t, int32(2), hits.Load())
}
