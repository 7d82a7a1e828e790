package usecase

import (
	"context"
	"time"

	"autonego-backend/model"
)

type ListingUsecase struct {
	listings ListingStore
}

func NewListingUsecase(listings ListingStore) *ListingUsecase {
	return &ListingUsecase{listings: listings}
}

func (u *ListingUsecase) Create(ctx context.Context, sellerID, vehicleID string,
	askingPrice, floorPrice int64, features []string, description string) (*model.Listing, error) {
	if askingPrice <= 0 || floorPrice <= 0 || floorPrice > askingPrice {
		return nil, model.ErrInvalidPrices
	}

	existing, err := u.listings.ActiveByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrVehicleListed
	}

	now := time.Now()
	listing := &model.Listing{
		ID:          newID(),
		SellerID:    sellerID,
		VehicleID:   vehicleID,
		AskingPrice: askingPrice,
		FloorPrice:  floorPrice,
		Features:    features,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.listings.Insert(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update edits an active listing. Nil price and description pointers leave
// the current value alone; the combined prices are re-validated after the
// edit. Sold listings are immutable.
func (u *ListingUsecase) Update(ctx context.Context, id, sellerID string,
	askingPrice, floorPrice *int64, features []string, description *string) (*model.Listing, error) {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}
	if listing.SellerID != sellerID {
		return nil, model.ErrNotOwner
	}
	if listing.IsSold {
		return nil, model.ErrAlreadySold
	}

	if askingPrice != nil {
		listing.AskingPrice = *askingPrice
	}
	if floorPrice != nil {
		listing.FloorPrice = *floorPrice
	}
	if features != nil {
		listing.Features = features
	}
	if description != nil {
		listing.Description = *description
	}
	if listing.AskingPrice <= 0 || listing.FloorPrice <= 0 || listing.FloorPrice > listing.AskingPrice {
		return nil, model.ErrInvalidPrices
	}

	listing.UpdatedAt = time.Now()
	if err := u.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ListOwn returns all of the seller's listings, sold and inactive included.
func (u *ListingUsecase) ListOwn(ctx context.Context, sellerID string) ([]model.Listing, error) {
	return u.listings.GetBySeller(ctx, sellerID)
}

func (u *ListingUsecase) GetActive(ctx context.Context, excludeSellerID string, limit, offset int) ([]model.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.listings.GetActive(ctx, excludeSellerID, limit, offset)
}

func (u *ListingUsecase) Get(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}
	return listing, nil
}

// Deactivate soft-deletes the seller's own listing. Sold listings stay as
// they are; administrative correction is outside this surface.
func (u *ListingUsecase) Deactivate(ctx context.Context, id, sellerID string) error {
	listing, err := u.listings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing == nil {
		return model.ErrListingNotFound
	}
	if listing.SellerID != sellerID {
		return model.ErrNotOwner
	}
	if listing.IsSold {
		return model.ErrAlreadySold
	}
	return u.listings.Deactivate(ctx, id)
}
