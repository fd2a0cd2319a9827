package services

import (
	"context"
	"testing"

	"mealplanner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	svc := NewFavoriteService(newTestDB(t))
	ctx := context.Background()
	curry := models.MealData{IDMeal: "52772", StrMeal: "Teriyaki Chicken Casserole"}

	_, err := svc.Add(ctx, alice, models.MealData{StrMeal: "no id"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, alice, curry)
	require.NoError(t, err)
	_, err = svc.Add(ctx, alice, curry)
	require.NoError(t, err, "adding twice is a no-op")

	favs, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Teriyaki Chicken Casserole", favs[0].StrMeal)

	ok, err := svc.IsFavorite(ctx, alice, "52772")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.IsFavorite(ctx, bob, "52772")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Remove(ctx, alice, "52772"))
	favs, err = svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, favs)
}
