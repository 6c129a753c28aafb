package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError("op", nil))

	wrapped := storeError("list products", errors.New("connection refused"))
	assert.ErrorIs(t, wrapped, ErrUnavailable)
	assert.Contains(t, wrapped.Error(), "list products")
	assert.Contains(t, wrapped.Error(), "connection refused")

	// service errors keep their class
	nf := notFound("category", uuid.New())
	assert.Same(t, nf, storeError("op", nf))
	conflict := &ConflictError{Resource: "category", Reason: "in use", Count: 3}
	assert.Same(t, conflict, storeError("op", conflict))
}

func TestErrorClasses(t *testing.T) {
	assert.ErrorIs(t, invalid("page", "bad"), ErrValidation)
	assert.ErrorIs(t, &ConflictError{}, ErrConflict)
	assert.ErrorIs(t, fmt.Errorf("ctx: %w", notFound("size", uuid.Nil)), ErrNotFound)
	assert.Equal(t, "page: bad", invalid("page", "bad").Error())
}
