package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"autonego-backend/model"
	"autonego-backend/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the failure taxonomy onto HTTP statuses. Anything outside
// the taxonomy is an internal fault and is never echoed to the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrListingNotFound),
		errors.Is(err, model.ErrNegotiationNotFound),
		errors.Is(err, model.ErrListingUnavailable):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, model.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, model.ErrNegotiationClosed),
		errors.Is(err, model.ErrAlreadySold),
		errors.Is(err, model.ErrAlreadyTerminal):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidPrices),
		errors.Is(err, model.ErrVehicleListed),
		errors.Is(err, model.ErrInvalidDecision):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		logger.Errorw("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
