package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"autonego-backend/middleware"
	"autonego-backend/model"
	"autonego-backend/usecase"
)

// Negotiator is the slice of the negotiation usecase this controller needs.
type Negotiator interface {
	Negotiate(ctx context.Context, listingID, negotiationID, message, idemToken string) (*usecase.TurnResult, error)
	Finalize(ctx context.Context, negotiationID, sellerID, decision string) (*usecase.FinalizeResult, error)
	ListForListing(ctx context.Context, listingID, sellerID string) ([]model.Negotiation, error)
}

type NegotiationController struct {
	usecase Negotiator
}

func NewNegotiationController(usecase Negotiator) *NegotiationController {
	return &NegotiationController{usecase: usecase}
}

type negotiateRequest struct {
	Message        string `json:"message"`
	NegotiationID  string `json:"negotiation_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Negotiate handles POST /listings/{id}/negotiate. Public: buyers are not
// authenticated, they are identified by their negotiation id.
func (c *NegotiationController) Negotiate(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]

	var req negotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("X-Idempotency-Key")
	}

	result, err := c.usecase.Negotiate(r.Context(), listingID, req.NegotiationID, req.Message, req.IdempotencyKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type finalizeRequest struct {
	Decision string `json:"decision"`
}

// Finalize handles POST /negotiations/{id}/finalize (seller only).
func (c *NegotiationController) Finalize(w http.ResponseWriter, r *http.Request) {
	negotiationID := mux.Vars(r)["id"]
	sellerID := middleware.UserID(r)

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := c.usecase.Finalize(r.Context(), negotiationID, sellerID, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListForListing handles GET /listings/{id}/negotiations (owner only).
func (c *NegotiationController) ListForListing(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["id"]
	sellerID := middleware.UserID(r)

	negotiations, err := c.usecase.ListForListing(r.Context(), listingID, sellerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if negotiations == nil {
		negotiations = []model.Negotiation{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"negotiations": negotiations,
		"count":        len(negotiations),
	})
}
