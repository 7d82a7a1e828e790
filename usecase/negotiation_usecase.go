package usecase

import (
	"context"
	"time"

	"autonego-backend/model"
	"autonego-backend/pkg/gemini"
	"autonego-backend/pkg/logger"
	"autonego-backend/pkg/nego"
	"autonego-backend/pkg/telemetry"
)

const historyWindow = 10

type NegotiationUsecase struct {
	listings     ListingStore
	negotiations NegotiationStore
	replies      ReplyGenerator
	idem         IdempotencyStore
	policy       nego.Policy
	synthTimeout time.Duration
}

func NewNegotiationUsecase(listings ListingStore, negotiations NegotiationStore,
	replies ReplyGenerator, idem IdempotencyStore, maxRounds int, synthTimeout time.Duration) *NegotiationUsecase {
	if synthTimeout <= 0 {
		synthTimeout = 5 * time.Second
	}
	return &NegotiationUsecase{
		listings:     listings,
		negotiations: negotiations,
		replies:      replies,
		idem:         idem,
		policy:       nego.NewPolicy(maxRounds),
		synthTimeout: synthTimeout,
	}
}

// TurnResult is the buyer-facing snapshot after one turn. It never carries
// the floor price in any field.
type TurnResult struct {
	NegotiationID    string           `json:"negotiation_id"`
	Response         string           `json:"response"`
	CurrentOffer     int64            `json:"current_offer,omitempty"`
	IsFinal          bool             `json:"is_final"`
	ContactCollected bool             `json:"contact_collected"`
	FinalPrice       int64            `json:"final_price,omitempty"`
	ChatHistory      []model.ChatTurn `json:"chat_history"`
}

// Negotiate runs one buyer turn: load or create the negotiation, append the
// buyer message, decide, synthesize, append the reply, persist. The buyer
// turn is persisted before any downstream stage so the transcript always
// reflects received input.
func (u *NegotiationUsecase) Negotiate(ctx context.Context, listingID, negotiationID, message, idemToken string) (*TurnResult, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}

	var negotiation *model.Negotiation
	var turns []model.ChatTurn

	if negotiationID == "" {
		if !listing.Available() {
			return nil, model.ErrListingUnavailable
		}
		now := time.Now()
		negotiation = &model.Negotiation{
			ID:        newID(),
			ListingID: listingID,
			Status:    model.NegotiationPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := u.negotiations.Insert(ctx, negotiation); err != nil {
			return nil, err
		}
		telemetry.NegotiationsOpened.Inc()
	} else {
		negotiation, err = u.negotiations.GetByID(ctx, negotiationID)
		if err != nil {
			return nil, err
		}
		if negotiation == nil || negotiation.ListingID != listingID {
			return nil, model.ErrNegotiationNotFound
		}
		if negotiation.Closed() {
			return nil, model.ErrNegotiationClosed
		}
		if !listing.Available() {
			return nil, model.ErrListingUnavailable
		}
		turns, err = u.negotiations.GetTurns(ctx, negotiation.ID)
		if err != nil {
			return nil, err
		}
		// Duplicate retries of the same turn replay the previous reply
		// instead of appending a second transcript entry.
		if u.idem != nil && u.idem.Seen(ctx, negotiation.ID, idemToken) {
			return u.replay(negotiation, turns), nil
		}
		if isDuplicateTail(turns, message) {
			return u.replay(negotiation, turns), nil
		}
	}

	buyerTurn := &model.ChatTurn{
		ID:            newID(),
		NegotiationID: negotiation.ID,
		Sender:        model.SenderBuyer,
		Message:       message,
		CreatedAt:     time.Now(),
	}
	if err := u.negotiations.AppendTurn(ctx, buyerTurn); err != nil {
		return nil, err
	}

	st := stateOf(negotiation, listing)
	decision := u.policy.Decide(&st, message)
	applyState(negotiation, st)
	telemetry.Turns.WithLabelValues(string(decision.Action)).Inc()

	response := u.synthesize(ctx, listing, decision, message, turns)

	systemTurn := &model.ChatTurn{
		ID:            newID(),
		NegotiationID: negotiation.ID,
		Sender:        model.SenderSystem,
		Message:       response,
		CreatedAt:     time.Now(),
	}
	if err := u.negotiations.AppendTurn(ctx, systemTurn); err != nil {
		return nil, err
	}
	if err := u.negotiations.Update(ctx, negotiation); err != nil {
		return nil, err
	}

	if err := u.negotiations.InsertLog(ctx, &model.NegotiationLog{
		ID:            newID(),
		NegotiationID: negotiation.ID,
		ProposedPrice: negotiation.CurrentOffer,
		Decision:      string(decision.Action),
		CounterPrice:  decision.CounterPrice,
		LogTime:       time.Now(),
	}); err != nil {
		logger.Warnw("negotiation log insert failed", "negotiation_id", negotiation.ID, "err", err)
	}

	history := append(turns, *buyerTurn, *systemTurn)
	return &TurnResult{
		NegotiationID:    negotiation.ID,
		Response:         response,
		CurrentOffer:     negotiation.CurrentOffer,
		IsFinal:          decision.IsFinal,
		ContactCollected: negotiation.ContactCollected,
		FinalPrice:       decision.FinalPrice,
		ChatHistory:      tail(history, historyWindow),
	}, nil
}

// synthesize asks the language service to phrase the decision, with a
// bounded timeout and a floor-leak check; any failure degrades to the
// template. The decision itself is already final at this point.
func (u *NegotiationUsecase) synthesize(ctx context.Context, listing *model.Listing,
	decision nego.Decision, message string, turns []model.ChatTurn) string {
	fallback := nego.FallbackText(decision, listing.Features)
	if u.replies == nil {
		return fallback
	}

	history := make([]gemini.TurnHistory, 0, len(turns))
	for _, t := range turns {
		sender := "Buyer"
		if t.Sender == model.SenderSystem {
			sender = "Seller"
		}
		history = append(history, gemini.TurnHistory{Sender: sender, Content: t.Message})
	}

	sctx, cancel := context.WithTimeout(ctx, u.synthTimeout)
	defer cancel()
	reply, err := u.replies.GenerateReply(sctx, gemini.ReplyContext{
		VehicleDesc:  listing.Description,
		Features:     listing.Features,
		BuyerMessage: message,
		History:      history,
		Decision:     decision,
	})
	if err != nil {
		logger.Warnw("reply synthesis failed, using fallback", "listing_id", listing.ID, "err", err)
		telemetry.SynthesisFallbacks.Inc()
		return fallback
	}
	if reply == "" {
		telemetry.SynthesisFallbacks.Inc()
		return fallback
	}
	// The floor figure must never reach a buyer. A generated reply that
	// quotes it is discarded, not repaired.
	if listing.FloorPrice < listing.AskingPrice && nego.ContainsAmount(reply, listing.FloorPrice) {
		logger.Errorw("synthesized reply leaked floor figure, discarded", "listing_id", listing.ID)
		telemetry.SynthesisFallbacks.Inc()
		return fallback
	}
	return reply
}

// replay serves a duplicate buyer turn from the transcript tail.
func (u *NegotiationUsecase) replay(n *model.Negotiation, turns []model.ChatTurn) *TurnResult {
	telemetry.ReplaysServed.Inc()
	response := ""
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Sender == model.SenderSystem {
			response = turns[i].Message
			break
		}
	}
	isFinal := n.ContactCollected && n.AgreedPrice > 0
	var finalPrice int64
	if isFinal {
		finalPrice = n.AgreedPrice
	}
	return &TurnResult{
		NegotiationID:    n.ID,
		Response:         response,
		CurrentOffer:     n.CurrentOffer,
		IsFinal:          isFinal,
		ContactCollected: n.ContactCollected,
		FinalPrice:       finalPrice,
		ChatHistory:      tail(turns, historyWindow),
	}
}

// FinalizeResult reports the seller's accept/reject outcome.
type FinalizeResult struct {
	Status      string `json:"status"`
	ListingSold bool   `json:"listing_sold"`
}

// Finalize is the seller's explicit accept or reject. Accept cascades:
// exactly one negotiation can win a listing, every other pending one is
// rejected and the listing is marked sold inside one locked transaction.
func (u *NegotiationUsecase) Finalize(ctx context.Context, negotiationID, sellerID, decision string) (*FinalizeResult, error) {
	switch decision {
	case "accept":
		if err := u.negotiations.AcceptExclusive(ctx, negotiationID, sellerID); err != nil {
			return nil, err
		}
		telemetry.Finalized.WithLabelValues("accept").Inc()
		return &FinalizeResult{Status: model.NegotiationAccepted, ListingSold: true}, nil
	case "reject":
		if err := u.negotiations.Reject(ctx, negotiationID, sellerID); err != nil {
			return nil, err
		}
		telemetry.Finalized.WithLabelValues("reject").Inc()
		return &FinalizeResult{Status: model.NegotiationRejected, ListingSold: false}, nil
	}
	return nil, model.ErrInvalidDecision
}

// ListForListing returns a listing's negotiations to its owner.
func (u *NegotiationUsecase) ListForListing(ctx context.Context, listingID, sellerID string) ([]model.Negotiation, error) {
	listing, err := u.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}
	if listing.SellerID != sellerID {
		return nil, model.ErrNotOwner
	}
	return u.negotiations.ListByListing(ctx, listingID)
}

// isDuplicateTail reports whether message is a retry of the most recent
// buyer turn that already has its system reply.
func isDuplicateTail(turns []model.ChatTurn, message string) bool {
	if len(turns) < 2 {
		return false
	}
	last := turns[len(turns)-1]
	prev := turns[len(turns)-2]
	return last.Sender == model.SenderSystem &&
		prev.Sender == model.SenderBuyer &&
		prev.Message == message
}

func stateOf(n *model.Negotiation, l *model.Listing) nego.State {
	return nego.State{
		Asking:           l.AskingPrice,
		Floor:            l.FloorPrice,
		LastCounter:      n.LastCounter,
		CurrentOffer:     n.CurrentOffer,
		AgreedPrice:      n.AgreedPrice,
		Rounds:           n.Rounds,
		BottomQuoted:     n.BottomQuoted,
		BuyerName:        n.BuyerName,
		BuyerEmail:       n.BuyerEmail,
		BuyerContact:     n.BuyerContact,
		ContactCollected: n.ContactCollected,
	}
}

func applyState(n *model.Negotiation, st nego.State) {
	n.LastCounter = st.LastCounter
	n.CurrentOffer = st.CurrentOffer
	n.AgreedPrice = st.AgreedPrice
	n.Rounds = st.Rounds
	n.BottomQuoted = st.BottomQuoted
	n.BuyerName = st.BuyerName
	n.BuyerEmail = st.BuyerEmail
	n.BuyerContact = st.BuyerContact
	n.ContactCollected = st.ContactCollected
	n.UpdatedAt = time.Now()
}

func tail(turns []model.ChatTurn, n int) []model.ChatTurn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
