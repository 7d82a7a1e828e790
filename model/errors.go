package model

import "errors"

// Failure taxonomy shared by dao, usecase and controller. Structural errors
// surface to the caller; extraction and synthesis problems are recovered
// inside the turn pipeline and never appear here.
var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingUnavailable  = errors.New("listing is not available")
	ErrNegotiationNotFound = errors.New("negotiation not found")
	ErrNegotiationClosed   = errors.New("negotiation is closed")
	ErrAlreadySold         = errors.New("listing already sold")
	ErrNotOwner            = errors.New("not the listing owner")
	ErrAlreadyTerminal     = errors.New("negotiation already finalized")
	ErrVehicleListed       = errors.New("vehicle is already listed for sale")
	ErrInvalidPrices       = errors.New("floor price must be positive and not above asking price")
	ErrInvalidDecision     = errors.New("decision must be accept or reject")
)
