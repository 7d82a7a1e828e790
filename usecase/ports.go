package usecase

import (
	"context"

	"autonego-backend/model"
	"autonego-backend/pkg/gemini"
)

// Store interfaces implemented by the dao package; tests substitute
// in-memory fakes.

type ListingStore interface {
	Insert(ctx context.Context, l *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	GetActive(ctx context.Context, excludeSellerID string, limit, offset int) ([]model.Listing, error)
	GetBySeller(ctx context.Context, sellerID string) ([]model.Listing, error)
	ActiveByVehicle(ctx context.Context, vehicleID string) (*model.Listing, error)
	Deactivate(ctx context.Context, id string) error
}

type NegotiationStore interface {
	Insert(ctx context.Context, n *model.Negotiation) error
	GetByID(ctx context.Context, id string) (*model.Negotiation, error)
	Update(ctx context.Context, n *model.Negotiation) error
	ListByListing(ctx context.Context, listingID string) ([]model.Negotiation, error)
	AppendTurn(ctx context.Context, t *model.ChatTurn) error
	GetTurns(ctx context.Context, negotiationID string) ([]model.ChatTurn, error)
	InsertLog(ctx context.Context, l *model.NegotiationLog) error
	AcceptExclusive(ctx context.Context, negotiationID, sellerID string) error
	Reject(ctx context.Context, negotiationID, sellerID string) error
}

type UserStore interface {
	Insert(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ReplyGenerator phrases an already-made decision. A nil generator is valid;
// the ledger then always uses the templated fallback.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, rc gemini.ReplyContext) (string, error)
}

// IdempotencyStore remembers client tokens for duplicate-turn detection.
type IdempotencyStore interface {
	Seen(ctx context.Context, negotiationID, token string) bool
}
