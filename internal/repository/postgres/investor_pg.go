// internal/repository/postgres/investor_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

// InvestorRepository implements repository.InvestorRepository for PostgreSQL.
type InvestorRepository struct{}

// NewInvestorRepository creates a new InvestorRepository.
func NewInvestorRepository(db *sqlx.DB) repository.InvestorRepository {
	return &InvestorRepository{}
}

// CreateInvestor inserts a new investor using the provided DBExecutor.
func (r *InvestorRepository) CreateInvestor(ctx context.Context, q repository.DBExecutor, investor *domain.Investor) error {
	query := `INSERT INTO investors (full_name, email, kyc_verified, referred_by, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		investor.FullName, investor.Email, investor.KYCVerified, investor.ReferredBy, investor.CreatedAt,
	).Scan(&investor.ID)
	if err != nil {
		return fmt.Errorf("failed to create investor: %w", err)
	}
	return nil
}

// GetInvestorByID retrieves an investor by ID using the provided DBExecutor.
func (r *InvestorRepository) GetInvestorByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Investor, error) {
	var investor domain.Investor
	query := `SELECT id, full_name, email, kyc_verified, referred_by, created_at FROM investors WHERE id = $1`
	err := q.GetContext(ctx, &investor, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrInvestorNotFound
		}
		return nil, fmt.Errorf("failed to get investor by ID %d: %w", id, err)
	}
	return &investor, nil
}

// ManagerRepository implements repository.ManagerRepository for PostgreSQL.
type ManagerRepository struct{}

// NewManagerRepository creates a new ManagerRepository.
func NewManagerRepository(db *sqlx.DB) repository.ManagerRepository {
	return &ManagerRepository{}
}

// GetManagerByID retrieves a manager by ID using the provided DBExecutor.
func (r *ManagerRepository) GetManagerByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Manager, error) {
	var manager domain.Manager
	query := `SELECT id, name, minimum_investment, percentage_yield, duration_days, created_at FROM managers WHERE id = $1`
	err := q.GetContext(ctx, &manager, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrManagerNotFound
		}
		return nil, fmt.Errorf("failed to get manager by ID %d: %w", id, err)
	}
	return &manager, nil
}
