package model

import "time"

const (
	NegotiationPending  = "pending"
	NegotiationAccepted = "accepted"
	NegotiationRejected = "rejected"
)

const (
	SenderBuyer  = "buyer"
	SenderSystem = "system"
)

// Negotiation is one buyer conversation against a single listing. Buyer
// identity fields stay empty until the contact-collection stage fills them.
type Negotiation struct {
	ID               string    `json:"id"`
	ListingID        string    `json:"listing_id"`
	BuyerName        string    `json:"buyer_name,omitempty"`
	BuyerEmail       string    `json:"buyer_email,omitempty"`
	BuyerContact     string    `json:"buyer_contact,omitempty"`
	CurrentOffer     int64     `json:"current_offer,omitempty"`
	LastCounter      int64     `json:"-"`
	AgreedPrice      int64     `json:"-"`
	Rounds           int       `json:"-"`
	BottomQuoted     bool      `json:"-"`
	Status           string    `json:"status"`
	ContactCollected bool      `json:"contact_collected"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Terminal reports whether the status admits no further transition.
func (n *Negotiation) Terminal() bool {
	return n.Status == NegotiationAccepted || n.Status == NegotiationRejected
}

// Closed reports whether further buyer turns are refused. A negotiation stops
// taking input once contact details are collected, even while it still waits
// for the seller's accept/reject.
func (n *Negotiation) Closed() bool {
	return n.Terminal() || n.ContactCollected
}

// ChatTurn is one immutable transcript entry. Ordering within a negotiation
// follows arrival order only.
type ChatTurn struct {
	ID            string    `json:"-"`
	NegotiationID string    `json:"-"`
	Sender        string    `json:"sender"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"timestamp"`
}

// NegotiationLog is the audit trail of the policy's numeric decisions, one
// row per system turn.
type NegotiationLog struct {
	ID            string    `json:"id"`
	NegotiationID string    `json:"negotiation_id"`
	ProposedPrice int64     `json:"proposed_price"`
	Decision      string    `json:"decision"`
	CounterPrice  int64     `json:"counter_price"`
	LogTime       time.Time `json:"log_time"`
}
