// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"investrack/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	investmentHandler *handler.InvestmentHandler,
	paymentHandler *handler.PaymentHandler,
	feeHandler *handler.FeeHandler,
	referralHandler *handler.ReferralHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/investments", func(r chi.Router) {
		r.Post("/new/{investorID}", investmentHandler.Create)
		r.Get("/{id}", investmentHandler.Get)
		r.Get("/{id}/eligibility", investmentHandler.Eligibility)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.Create)
		r.Get("/verify/{id}", paymentHandler.Verify)
		r.Get("/unverify/{id}", paymentHandler.Unverify)
		r.Delete("/{id}", paymentHandler.Delete)
	})

	r.Route("/verification-fee", func(r chi.Router) {
		r.Post("/", feeHandler.Create)
		r.Get("/{id}", feeHandler.Get)
		r.Get("/investor-unpaid/{investorID}", feeHandler.ListUnpaid)
	})

	r.Route("/referral", func(r chi.Router) {
		r.Post("/", referralHandler.Create)
		r.Get("/unpaid", referralHandler.ListUnpaid)
		r.Get("/investor/{investorID}", referralHandler.ListByInvestor)
		r.Patch("/{id}", referralHandler.Patch)
	})

	return r
}
