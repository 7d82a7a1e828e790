package dao

import (
	"context"
	"database/sql"
	"encoding/json"

	"autonego-backend/model"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `id, seller_id, vehicle_id, asking_price, floor_price, features, description, is_active, is_sold, created_at, updated_at`

func (r *ListingRepository) Insert(ctx context.Context, l *model.Listing) error {
	features, err := json.Marshal(l.Features)
	if err != nil {
		return err
	}
	query := `INSERT INTO listings (` + listingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		l.ID, l.SellerID, l.VehicleID, l.AskingPrice, l.FloorPrice,
		string(features), l.Description, l.IsActive, l.IsSold, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	return scanListing(r.db.QueryRowContext(ctx, query, id))
}

// GetActive returns active unsold listings, newest first, excluding the
// requesting seller's own listings when excludeSellerID is set.
func (r *ListingRepository) GetActive(ctx context.Context, excludeSellerID string, limit, offset int) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE is_active = TRUE AND is_sold = FALSE AND seller_id <> ?
		ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, excludeSellerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		l, err := scanListingRow(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

// Update persists price and presentation edits to a listing.
func (r *ListingRepository) Update(ctx context.Context, l *model.Listing) error {
	features, err := json.Marshal(l.Features)
	if err != nil {
		return err
	}
	query := `UPDATE listings SET asking_price = ?, floor_price = ?, features = ?,
		description = ?, updated_at = NOW() WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		l.AskingPrice, l.FloorPrice, string(features), l.Description, l.ID)
	return err
}

// GetBySeller returns all of a seller's listings regardless of state,
// newest first.
func (r *ListingRepository) GetBySeller(ctx context.Context, sellerID string) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE seller_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		l, err := scanListingRow(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

// ActiveByVehicle finds an open listing for a vehicle, used to enforce one
// active listing per vehicle.
func (r *ListingRepository) ActiveByVehicle(ctx context.Context, vehicleID string) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE vehicle_id = ? AND is_active = TRUE AND is_sold = FALSE LIMIT 1`
	return scanListing(r.db.QueryRowContext(ctx, query, vehicleID))
}

// Deactivate soft-deletes a listing. Rows are never removed while
// negotiations reference them.
func (r *ListingRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings SET is_active = FALSE, updated_at = NOW() WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row *sql.Row) (*model.Listing, error) {
	l, err := scanListingRow(row)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	return l, err
}

func scanListingRow(row rowScanner) (*model.Listing, error) {
	var l model.Listing
	var features sql.NullString
	if err := row.Scan(&l.ID, &l.SellerID, &l.VehicleID, &l.AskingPrice, &l.FloorPrice,
		&features, &l.Description, &l.IsActive, &l.IsSold, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &l.Features); err != nil {
			return nil, err
		}
	}
	return &l, nil
}
