// internal/api/handler/referral.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"investrack/internal/api/types"
	"investrack/internal/domain"
	"investrack/internal/service"
	"investrack/internal/util"
)

// ReferralHandler handles HTTP requests for the referral ledger.
type ReferralHandler struct {
	service service.ReferralService
	logger  *slog.Logger
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(svc service.ReferralService, logger *slog.Logger) *ReferralHandler {
	return &ReferralHandler{service: svc, logger: logger}
}

// CreateReferralRequest represents the referral registration body.
type CreateReferralRequest struct {
	ReferrerID int64 `json:"referrer_id"`
	ReferredID int64 `json:"referred_id"`
}

// Create handles the referral registration request.
// POST /referral
func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	referral, err := h.service.CreateReferral(r.Context(), req.ReferrerID, req.ReferredID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, referral)
}

// ListUnpaid handles the operator listing of referrals still owed.
// GET /referral/unpaid
func (h *ReferralHandler) ListUnpaid(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.service.ListUnsettled(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Referral]{
		Data:  referrals,
		Count: len(referrals),
	})
}

// PatchReferralRequest represents the settle request body.
type PatchReferralRequest struct {
	Settled bool `json:"settled"`
}

// Patch handles the operator settle request. Settled is one-way intent:
// only {"settled": true} is accepted.
// PATCH /referral/{id}
func (h *ReferralHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req PatchReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !req.Settled {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	referral, err := h.service.Settle(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, referral)
}

// ListByInvestor handles the per-investor referral listing.
// GET /referral/investor/{investorID}?settled=true|false
func (h *ReferralHandler) ListByInvestor(w http.ResponseWriter, r *http.Request) {
	investorID, err := strconv.ParseInt(chi.URLParam(r, "investorID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var settled *bool
	if v := r.URL.Query().Get("settled"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		settled = &parsed
	}

	referrals, err := h.service.ListByInvestor(r.Context(), investorID, settled)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Referral]{
		Data:  referrals,
		Count: len(referrals),
	})
}
