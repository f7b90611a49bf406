package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrCodeInternal, "save cart snapshot")

	assert.Equal(t, "save cart snapshot: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestConstructorsAndPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsValidation(ValidationField("quantity", "bad")))
	assert.True(t, IsUnauthorized(Unauthorized("login required")))
	assert.False(t, IsNotFound(Unauthorized("login required")))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestGetCodeAndField_ThroughWrapping(t *testing.T) {
	base := ValidationField("quantity", "Quantity must be at least 1")
	wrapped := fmt.Errorf("update cart item: %w", base)

	assert.Equal(t, ErrCodeValidation, GetCode(wrapped))
	assert.Equal(t, "quantity", GetField(wrapped))
	assert.Empty(t, GetCode(errors.New("plain")))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestWrapf(t *testing.T) {
	err := Wrapf(errors.New("eof"), ErrCodeInternal, "load %s", "cart-storage")
	assert.Equal(t, "load cart-storage: eof", err.Error())
	assert.Equal(t, ErrCodeInternal, GetCode(err))
}
