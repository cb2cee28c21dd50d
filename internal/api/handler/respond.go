// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"investrack/internal/api/types"
	"investrack/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 30 * time.Second

// Error codes surfaced in the response body.
const (
	codeValidation = "VALIDATION_ERROR"
	codeNotFound   = "NOT_FOUND"
	codeConflict   = "CONFLICT"
	codeInternal   = "INTERNAL_ERROR"
)

// respondWithJSON writes payload as JSON with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError is the single boundary translator: it maps the service
// error taxonomy to a status code and a {code, message} body.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	code := codeInternal
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrBelowMinimumInvestment),
		util.IsError(err, util.ErrInvalidAddress):
		statusCode = http.StatusBadRequest
		code = codeValidation
		message = err.Error()
	case util.IsError(err, util.ErrNotFound),
		util.IsError(err, util.ErrInvestorNotFound),
		util.IsError(err, util.ErrManagerNotFound),
		util.IsError(err, util.ErrPortfolioNotFound),
		util.IsError(err, util.ErrPaymentNotFound),
		util.IsError(err, util.ErrFeeNotFound),
		util.IsError(err, util.ErrReferralNotFound):
		statusCode = http.StatusNotFound
		code = codeNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrConflict),
		util.IsError(err, util.ErrPaymentVerified),
		util.IsError(err, util.ErrDuplicateWallet),
		util.IsError(err, util.ErrDuplicatePortfolio):
		statusCode = http.StatusConflict
		code = codeConflict
		message = err.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.ErrorResponse{
		Error: types.ErrorBody{Code: code, Message: message},
	})
}
