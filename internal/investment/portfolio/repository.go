package portfolios

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

const uniqueViolation = "23505"

type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	FindByID(ctx context.Context, portfolioID uuid.UUID, portfolio *models.Portfolio) error
	ExistsByName(ctx context.Context, userID string, name string) (bool, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Portfolio, error)
	Update(ctx context.Context, portfolio *models.Portfolio) (int64, error)
	DeletePortfolio(ctx context.Context, portfolioID uuid.UUID) error
}

type portfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *portfolioRepository) ExistsByName(ctx context.Context, userID string, name string) (bool, error) {
	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return false, err
	}
	query := `SELECT COUNT(1)
              FROM portfolios
              WHERE user_id = $1 AND name = $2`

	var count int
	err = r.db.QueryRowContext(ctx, query, parsedID, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	query := `INSERT INTO portfolios (id, user_id, name, description, currency, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, portfolio.ID, portfolio.UserID, portfolio.Name, portfolio.Description,
		portfolio.Currency, portfolio.CreatedAt, portfolio.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrPortfolioNameTaken
	}
	return err
}

func (r *portfolioRepository) FindByID(ctx context.Context, portfolioID uuid.UUID, portfolio *models.Portfolio) error {
	query := `SELECT id, user_id, name, description, currency, created_at, updated_at
              FROM portfolios WHERE id = $1`

	return r.db.QueryRowContext(ctx, query, portfolioID).Scan(
		&portfolio.ID, &portfolio.UserID, &portfolio.Name, &portfolio.Description, &portfolio.Currency,
		&portfolio.CreatedAt, &portfolio.UpdatedAt)
}

func (r *portfolioRepository) FindByUserID(ctx context.Context, userID string) ([]models.Portfolio, error) {
	query := `SELECT id, user_id, name, description, currency, created_at, updated_at
              FROM portfolios WHERE user_id = $1
              ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Currency, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

func (r *portfolioRepository) Update(ctx context.Context, portfolio *models.Portfolio) (int64, error) {
	query := `
        UPDATE portfolios
        SET name = $1, description = $2, updated_at = $3
        WHERE id = $4 AND user_id = $5
    `

	result, err := r.db.ExecContext(ctx, query, portfolio.Name, portfolio.Description, time.Now(), portfolio.ID, portfolio.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrPortfolioNameTaken
		}
		return 0, err
	}

	return result.RowsAffected()
}

func (r *portfolioRepository) DeletePortfolio(ctx context.Context, portfolioID uuid.UUID) error {
	query := `
        DELETE FROM portfolios
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, portfolioID)
	return err
}
