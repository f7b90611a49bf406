package service

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

// Persistence keys shared with the storefront's browser build.
const (
	SessionStateKey = "userInfo-storage"
	CartStateKey    = "cart-storage"
)

// saveJSON writes v under key. A nil store disables persistence.
func saveJSON(ctx context.Context, store ports.StateStore, key string, v any) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s", key)
	}
	if err := store.Save(ctx, key, data); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "save %s", key)
	}
	return nil
}

// loadJSON reads key into v. found is false when nothing is stored.
func loadJSON(ctx context.Context, store ports.StateStore, key string, v any) (found bool, err error) {
	if store == nil {
		return false, nil
	}
	data, err := store.Load(ctx, key)
	if errors.Is(err, ports.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "load %s", key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s", key)
	}
	return true, nil
}

func deleteKey(ctx context.Context, store ports.StateStore, key string) error {
	if store == nil {
		return nil
	}
	if err := store.Delete(ctx, key); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "delete %s", key)
	}
	return nil
}
