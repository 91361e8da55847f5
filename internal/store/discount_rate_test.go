package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-admin-server/internal/models"
)

func TestDiscountRateCRUD(t *testing.T) {
	s := newTestStore(t, nil)

	r := s.AddDiscountRate(models.DiscountRate{Name: "VIP", Rate: 10, IsActive: true})
	assert.NotEmpty(t, r.ID)

	got, ok := s.GetDiscountRate(r.ID)
	require.True(t, ok)
	assert.Equal(t, "VIP", got.Name)
	assert.Equal(t, 10, got.Rate)

	require.NoError(t, s.UpdateDiscountRate(r.ID, "VIP", 15, false))
	got, _ = s.GetDiscountRate(r.ID)
	assert.Equal(t, 15, got.Rate)
	assert.False(t, got.IsActive)

	require.NoError(t, s.DeleteDiscountRate(r.ID))
	_, ok = s.GetDiscountRate(r.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, s.UpdateDiscountRate(r.ID, "VIP", 15, true), ErrRateNotFound)
}
