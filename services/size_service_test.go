package services

import (
	"context"
	"testing"

	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeService(t *testing.T) {
	db := setupTestDB(t)
	inv := &countingInvalidator{}
	svc := NewSizeService(db, inv)

	for _, name := range []string{"P", "GG", "M"} {
		_, err := svc.Create(context.Background(), models.SizeRequest{Name: name})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inv.calls)

	_, err := svc.Create(context.Background(), models.SizeRequest{Name: "m"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(context.Background(), models.SizeRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	sizes, err := svc.List(context.Background())
	require.NoError(t, err)
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"GG", "M", "P"}, names)
}
