// internal/api/handler/fee.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"investrack/internal/api/types"
	"investrack/internal/domain"
	"investrack/internal/service"
	"investrack/internal/util"
)

// FeeHandler handles HTTP requests for verification fees.
type FeeHandler struct {
	service service.FeeService
	logger  *slog.Logger
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(svc service.FeeService, logger *slog.Logger) *FeeHandler {
	return &FeeHandler{service: svc, logger: logger}
}

// CreateFeeRequest represents the operator request to open a fee.
type CreateFeeRequest struct {
	InvestorID int64           `json:"investor_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// Create handles the operator fee creation request.
// POST /verification-fee
func (h *FeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.InvestorID == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	fee, err := h.service.CreateFee(r.Context(), req.InvestorID, req.Name, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, fee)
}

// Get handles the fee detail request.
// GET /verification-fee/{id}
func (h *FeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	fee, err := h.service.GetFee(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, fee)
}

// ListUnpaid handles the unpaid fee listing that feeds the eligibility
// calculator's callers.
// GET /verification-fee/investor-unpaid/{investorID}
func (h *FeeHandler) ListUnpaid(w http.ResponseWriter, r *http.Request) {
	investorID, err := strconv.ParseInt(chi.URLParam(r, "investorID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	fees, err := h.service.ListUnpaid(r.Context(), investorID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.VerificationFee]{
		Data:  fees,
		Count: len(fees),
	})
}
