package model

import "time"

const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
	ListingStatusSold     = "sold"
)

// Listing is a vehicle offered for sale. FloorPrice is the seller's secret
// minimum and must never reach a buyer-facing response; the json tag keeps it
// out of every default serialization path.
type Listing struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	VehicleID   string    `json:"vehicle_id"`
	AskingPrice int64     `json:"asking_price"`
	FloorPrice  int64     `json:"-"`
	Features    []string  `json:"features"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	IsSold      bool      `json:"is_sold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available reports whether new negotiations may be opened against the listing.
func (l *Listing) Available() bool {
	return l.IsActive && !l.IsSold
}

// OwnerView is the seller-only serialization, the one place the floor price
// is allowed to appear.
type OwnerView struct {
	Listing
	FloorPrice int64 `json:"floor_price"`
}

func (l *Listing) ToOwnerView() OwnerView {
	return OwnerView{Listing: *l, FloorPrice: l.FloorPrice}
}
