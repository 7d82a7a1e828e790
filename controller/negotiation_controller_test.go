package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autonego-backend/model"
	"autonego-backend/usecase"
)

type stubNegotiator struct {
	turn     *usecase.TurnResult
	fin      *usecase.FinalizeResult
	list     []model.Negotiation
	err      error
	gotIdem  string
	gotMsg   string
	gotNegID string
}

func (s *stubNegotiator) Negotiate(_ context.Context, _, negotiationID, message, idemToken string) (*usecase.TurnResult, error) {
	s.gotNegID = negotiationID
	s.gotMsg = message
	s.gotIdem = idemToken
	return s.turn, s.err
}

func (s *stubNegotiator) Finalize(_ context.Context, _, _, _ string) (*usecase.FinalizeResult, error) {
	return s.fin, s.err
}

func (s *stubNegotiator) ListForListing(_ context.Context, _, _ string) ([]model.Negotiation, error) {
	return s.list, s.err
}

func doNegotiate(c *NegotiationController, body, idemHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/listings/l1/negotiate", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "l1"})
	if idemHeader != "" {
		req.Header.Set("X-Idempotency-Key", idemHeader)
	}
	w := httptest.NewRecorder()
	c.Negotiate(w, req)
	return w
}

func TestNegotiateHandler(t *testing.T) {
	stub := &stubNegotiator{turn: &usecase.TurnResult{
		NegotiationID: "n1",
		Response:      "The asking price is Rs. 2,000,000.",
	}}
	c := NewNegotiationController(stub)

	w := doNegotiate(c, `{"message":"hello","negotiation_id":"n1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n1", stub.gotNegID)
	assert.Equal(t, "hello", stub.gotMsg)

	var res usecase.TurnResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "n1", res.NegotiationID)
	assert.Contains(t, res.Response, "2,000,000")
}

func TestNegotiateHandlerEmptyMessage(t *testing.T) {
	c := NewNegotiationController(&stubNegotiator{})

	w := doNegotiate(c, `{"message":"   "}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doNegotiate(c, `{bad json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNegotiateHandlerIdempotencyHeaderFallback(t *testing.T) {
	stub := &stubNegotiator{turn: &usecase.TurnResult{NegotiationID: "n1"}}
	c := NewNegotiationController(stub)

	doNegotiate(c, `{"message":"hi","idempotency_key":"body-key"}`, "header-key")
	assert.Equal(t, "body-key", stub.gotIdem, "body key wins over header")

	doNegotiate(c, `{"message":"hi"}`, "header-key")
	assert.Equal(t, "header-key", stub.gotIdem)
}

func TestNegotiateHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{model.ErrListingNotFound, http.StatusNotFound},
		{model.ErrNegotiationNotFound, http.StatusNotFound},
		{model.ErrListingUnavailable, http.StatusNotFound},
		{model.ErrNegotiationClosed, http.StatusConflict},
		{model.ErrAlreadySold, http.StatusConflict},
		{model.ErrNotOwner, http.StatusForbidden},
		{model.ErrInvalidDecision, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c := NewNegotiationController(&stubNegotiator{err: tt.err})
			w := doNegotiate(c, `{"message":"hello"}`, "")
			assert.Equal(t, tt.code, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.code == http.StatusInternalServerError {
				assert.Equal(t, "internal error", body["error"], "internal faults are not echoed")
			} else {
				assert.Equal(t, tt.err.Error(), body["error"])
			}
		})
	}
}

func TestFinalizeHandler(t *testing.T) {
	stub := &stubNegotiator{fin: &usecase.FinalizeResult{Status: model.NegotiationAccepted, ListingSold: true}}
	c := NewNegotiationController(stub)

	req := httptest.NewRequest(http.MethodPost, "/negotiations/n1/finalize", strings.NewReader(`{"decision":"accept"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "n1"})
	w := httptest.NewRecorder()
	c.Finalize(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res usecase.FinalizeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.NegotiationAccepted, res.Status)
	assert.True(t, res.ListingSold)
}

func TestListForListingHandlerEmpty(t *testing.T) {
	c := NewNegotiationController(&stubNegotiator{})

	req := httptest.NewRequest(http.MethodGet, "/listings/l1/negotiations", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "l1"})
	w := httptest.NewRecorder()
	c.ListForListing(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Negotiations []model.Negotiation `json:"negotiations"`
		Count        int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotNil(t, res.Negotiations)
	assert.Zero(t, res.Count)
}
