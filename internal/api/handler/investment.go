// internal/api/handler/investment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"investrack/internal/service"
	"investrack/internal/util"
)

// InvestmentHandler handles HTTP requests for portfolios.
type InvestmentHandler struct {
	service service.PortfolioService
	logger  *slog.Logger
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(svc service.PortfolioService, logger *slog.Logger) *InvestmentHandler {
	return &InvestmentHandler{service: svc, logger: logger}
}

// CreateInvestmentRequest represents the request body for opening a portfolio.
type CreateInvestmentRequest struct {
	Amount        decimal.Decimal        `json:"amount"`
	ManagerID     int64                  `json:"manager_id"`
	DepositMethod string                 `json:"deposit_method"`
	Wallet        *service.WalletRequest `json:"wallet,omitempty"`
}

// Create handles the investment request.
// POST /investments/new/{investorID}
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	investorID, err := strconv.ParseInt(chi.URLParam(r, "investorID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.ManagerID == 0 || req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	// Crypto funding needs a wallet; fiat funding must not carry one.
	isCrypto := strings.EqualFold(req.DepositMethod, "CRYPTO")
	if isCrypto && req.Wallet == nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if !isCrypto {
		req.Wallet = nil
	}

	portfolio, err := h.service.CreatePortfolio(r.Context(), investorID, req.ManagerID, req.Amount, req.Wallet)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"investment_id": portfolio.ID,
		"reference":     portfolio.Reference,
	})
}

// Get handles the investment detail request.
// GET /investments/{id}
func (h *InvestmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	detail, err := h.service.GetPortfolio(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, detail)
}

// Eligibility handles the withdrawal eligibility request.
// GET /investments/{id}/eligibility
func (h *InvestmentHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Eligibility(r.Context(), id, time.Now().UTC())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, result)
}
