package transactions

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type TransactionRepository interface {
	create(ctx context.Context, transaction *models.Transaction) error
	getTransactionsByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error)
	delete(ctx context.Context, portfolioID, transactionID uuid.UUID) (int64, error)
}

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) create(ctx context.Context, transaction *models.Transaction) error {
	query := `
        INSERT INTO transactions (id, portfolio_id, asset_id, transaction_type, quantity, price, transaction_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.ExecContext(ctx, query, transaction.ID, transaction.PortfolioID, transaction.AssetID,
		string(transaction.Type), transaction.Quantity, transaction.Price, transaction.Date, transaction.CreatedAt)
	return err
}

func (r *transactionRepository) getTransactionsByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error) {
	query := `SELECT id, portfolio_id, asset_id, transaction_type, quantity, price, transaction_date, created_at
              FROM transactions WHERE portfolio_id = $1
              ORDER BY transaction_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.PortfolioID, &t.AssetID, &t.Type, &t.Quantity, &t.Price, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) delete(ctx context.Context, portfolioID, transactionID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND portfolio_id = $2`, transactionID, portfolioID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
