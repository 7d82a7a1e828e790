package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autonego-backend/model"
)

func TestListingCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeListingStore()
	u := NewListingUsecase(store)

	tests := []struct {
		name   string
		asking int64
		floor  int64
	}{
		{"zero asking", 0, 0},
		{"negative floor", 1_000_000, -1},
		{"floor above asking", 1_000_000, 1_100_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.Create(ctx, "s1", "v1", tt.asking, tt.floor, nil, "")
			assert.ErrorIs(t, err, model.ErrInvalidPrices)
		})
	}

	listing, err := u.Create(ctx, "s1", "v1", 2_000_000, 1_700_000, []string{"sunroof"}, "clean car")
	require.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.True(t, listing.IsActive)

	// One active listing per vehicle.
	_, err = u.Create(ctx, "s1", "v1", 2_100_000, 1_800_000, nil, "")
	assert.ErrorIs(t, err, model.ErrVehicleListed)

	// Floor at asking is a fixed-price listing, allowed.
	_, err = u.Create(ctx, "s1", "v2", 1_500_000, 1_500_000, nil, "")
	assert.NoError(t, err)
}

func TestListingDeactivateGuards(t *testing.T) {
	ctx := context.Background()
	store := newFakeListingStore()
	u := NewListingUsecase(store)

	listing, err := u.Create(ctx, "s1", "v1", 2_000_000, 1_700_000, nil, "")
	require.NoError(t, err)

	assert.ErrorIs(t, u.Deactivate(ctx, "missing", "s1"), model.ErrListingNotFound)
	assert.ErrorIs(t, u.Deactivate(ctx, listing.ID, "s2"), model.ErrNotOwner)

	require.NoError(t, u.Deactivate(ctx, listing.ID, "s1"))
	got, err := u.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, got.Available())

	// Sold listings are immutable through this surface.
	sold := *got
	sold.IsSold = true
	require.NoError(t, store.Insert(ctx, &sold))
	assert.ErrorIs(t, u.Deactivate(ctx, sold.ID, "s1"), model.ErrAlreadySold)
}

func i64(v int64) *int64 { return &v }

func strp(s string) *string { return &s }

func TestListingUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeListingStore()
	u := NewListingUsecase(store)

	listing, err := u.Create(ctx, "s1", "v1", 2_000_000, 1_700_000, []string{"sunroof"}, "clean car")
	require.NoError(t, err)

	// Price edits are re-validated against the merged result.
	_, err = u.Update(ctx, listing.ID, "s1", i64(1_000_000), nil, nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidPrices, "lowering asking under the kept floor must fail")
	_, err = u.Update(ctx, listing.ID, "s1", nil, i64(2_500_000), nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidPrices)
	_, err = u.Update(ctx, listing.ID, "s1", nil, i64(-1), nil, nil)
	assert.ErrorIs(t, err, model.ErrInvalidPrices)

	updated, err := u.Update(ctx, listing.ID, "s1",
		i64(2_200_000), i64(1_900_000), []string{"sunroof", "new tyres"}, strp("freshly serviced"))
	require.NoError(t, err)
	assert.Equal(t, int64(2_200_000), updated.AskingPrice)
	assert.Equal(t, int64(1_900_000), updated.FloorPrice)
	assert.Equal(t, "freshly serviced", updated.Description)

	// Absent fields stay as they were.
	updated, err = u.Update(ctx, listing.ID, "s1", nil, i64(2_000_000), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2_200_000), updated.AskingPrice)
	assert.Equal(t, int64(2_000_000), updated.FloorPrice)
	assert.Len(t, updated.Features, 2)

	_, err = u.Update(ctx, listing.ID, "s2", nil, nil, nil, nil)
	assert.ErrorIs(t, err, model.ErrNotOwner)
	_, err = u.Update(ctx, "missing", "s1", nil, nil, nil, nil)
	assert.ErrorIs(t, err, model.ErrListingNotFound)

	sold := *updated
	sold.IsSold = true
	require.NoError(t, store.Insert(ctx, &sold))
	_, err = u.Update(ctx, sold.ID, "s1", i64(2_300_000), nil, nil, nil)
	assert.ErrorIs(t, err, model.ErrAlreadySold)
}

func TestListingListOwn(t *testing.T) {
	ctx := context.Background()
	store := newFakeListingStore()
	u := NewListingUsecase(store)

	_, err := u.Create(ctx, "s1", "v1", 2_000_000, 1_700_000, nil, "")
	require.NoError(t, err)
	mine, err := u.Create(ctx, "s1", "v2", 900_000, 800_000, nil, "")
	require.NoError(t, err)
	_, err = u.Create(ctx, "s2", "v3", 1_200_000, 1_000_000, nil, "")
	require.NoError(t, err)

	// Deactivated listings still show up for their owner.
	require.NoError(t, u.Deactivate(ctx, mine.ID, "s1"))

	own, err := u.ListOwn(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, l := range own {
		assert.Equal(t, "s1", l.SellerID)
	}
}

func TestListingGetNotFound(t *testing.T) {
	u := NewListingUsecase(newFakeListingStore())
	_, err := u.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrListingNotFound)
}
