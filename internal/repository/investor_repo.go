// internal/repository/investor_repo.go
package repository

import (
	"context"

	"investrack/internal/domain"
)

// InvestorRepository defines the interface for investor data operations.
type InvestorRepository interface {
	// CreateInvestor adds a new investor using the provided DBExecutor.
	CreateInvestor(ctx context.Context, q DBExecutor, investor *domain.Investor) error
	// GetInvestorByID retrieves an investor by ID using the provided DBExecutor.
	GetInvestorByID(ctx context.Context, q DBExecutor, id int64) (*domain.Investor, error)
}

// ManagerRepository defines the interface for manager data operations.
type ManagerRepository interface {
	// GetManagerByID retrieves a manager by ID using the provided DBExecutor.
	GetManagerByID(ctx context.Context, q DBExecutor, id int64) (*domain.Manager, error)
}
