package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type mockTransactionRepository struct {
	transactions []models.Transaction
	shouldFail   bool
}

func (m *mockTransactionRepository) create(_ context.Context, transaction *models.Transaction) error {
	if m.shouldFail {
		return errors.New("repository error")
	}
	m.transactions = append(m.transactions, *transaction)
	return nil
}

func (m *mockTransactionRepository) getTransactionsByPortfolio(_ context.Context, portfolioID uuid.UUID) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range m.transactions {
		if t.PortfolioID == portfolioID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTransactionRepository) delete(_ context.Context, portfolioID, transactionID uuid.UUID) (int64, error) {
	for i, t := range m.transactions {
		if t.ID == transactionID && t.PortfolioID == portfolioID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type mockAssetChecker struct {
	known map[uuid.UUID]bool
	err   error
}

func (m *mockAssetChecker) AssetExists(_ context.Context, assetID uuid.UUID) (bool, error) {
	return m.known[assetID], m.err
}
