package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"autonego-backend/middleware"
	"autonego-backend/model"
)

type ListingService interface {
	Create(ctx context.Context, sellerID, vehicleID string, askingPrice, floorPrice int64, features []string, description string) (*model.Listing, error)
	Update(ctx context.Context, id, sellerID string, askingPrice, floorPrice *int64, features []string, description *string) (*model.Listing, error)
	GetActive(ctx context.Context, excludeSellerID string, limit, offset int) ([]model.Listing, error)
	ListOwn(ctx context.Context, sellerID string) ([]model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	Deactivate(ctx context.Context, id, sellerID string) error
}

type ListingController struct {
	usecase ListingService
}

func NewListingController(usecase ListingService) *ListingController {
	return &ListingController{usecase: usecase}
}

type createListingRequest struct {
	VehicleID   string   `json:"vehicle_id"`
	AskingPrice int64    `json:"asking_price"`
	FloorPrice  int64    `json:"floor_price"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

func (c *ListingController) Create(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.UserID(r)

	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.VehicleID == "" {
		http.Error(w, "vehicle_id is required", http.StatusBadRequest)
		return
	}

	listing, err := c.usecase.Create(r.Context(), sellerID, req.VehicleID,
		req.AskingPrice, req.FloorPrice, req.Features, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	// The creator sees the floor price back; nobody else ever does.
	writeJSON(w, http.StatusCreated, listing.ToOwnerView())
}

type updateListingRequest struct {
	AskingPrice *int64   `json:"asking_price"`
	FloorPrice  *int64   `json:"floor_price"`
	Features    []string `json:"features"`
	Description *string  `json:"description"`
}

// Update handles PUT /listings/{id} (owner only). Absent fields are left
// unchanged.
func (c *ListingController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	listing, err := c.usecase.Update(r.Context(), id, middleware.UserID(r),
		req.AskingPrice, req.FloorPrice, req.Features, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.ToOwnerView())
}

// ListMine handles GET /my/listings: the seller's own listings in every
// state, with floor prices.
func (c *ListingController) ListMine(w http.ResponseWriter, r *http.Request) {
	listings, err := c.usecase.ListOwn(r.Context(), middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]model.OwnerView, 0, len(listings))
	for i := range listings {
		views = append(views, listings[i].ToOwnerView())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"listings": views,
		"count":    len(views),
	})
}

func (c *ListingController) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	listings, err := c.usecase.GetActive(r.Context(), middleware.UserID(r), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"listings": listings,
		"count":    len(listings),
	})
}

func (c *ListingController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	listing, err := c.usecase.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if listing.SellerID == middleware.UserID(r) {
		writeJSON(w, http.StatusOK, listing.ToOwnerView())
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (c *ListingController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := c.usecase.Deactivate(r.Context(), id, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "listing deactivated"})
}
