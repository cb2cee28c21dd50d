// internal/api/handler/payment.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/service"
	"investrack/internal/util"
)

// maxReceiptSize bounds the multipart form held in memory.
const maxReceiptSize = 10 << 20 // 10 MiB

// PaymentHandler handles HTTP requests for payment submissions and
// operator verification.
type PaymentHandler struct {
	service service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

// Create handles the proof-of-payment upload.
// POST /payments (multipart form: receipt file + fields)
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	input := service.CreatePaymentInput{
		Type:          domain.PaymentType(r.FormValue("type")),
		Amount:        amount,
		ExternalRef:   r.FormValue("payment_id"),
		DepositMethod: r.FormValue("deposit_method"),
	}

	// The target foreign key depends on the payment type; both are optional
	// form fields here and the service enforces the exactly-one rule.
	if v := r.FormValue("managed_portfolio_id"); v != "" {
		portfolioID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		input.PortfolioID = &portfolioID
	}
	if v := r.FormValue("verification_fee_id"); v != "" {
		feeID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		input.FeeID = &feeID
	}

	receipt, header, err := r.FormFile("receipt")
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	defer receipt.Close()

	payment, err := h.service.CreatePayment(r.Context(), input, header.Filename, receipt)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, payment)
}

// Verify handles the operator verification request.
// GET /payments/verify/{id}
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	payment, err := h.service.Verify(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, payment)
}

// Unverify handles the operator escape hatch.
// GET /payments/unverify/{id}
func (h *PaymentHandler) Unverify(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	payment, err := h.service.Unverify(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, payment)
}

// Delete handles the investor-initiated removal of a Pending payment.
// DELETE /payments/{id}
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
