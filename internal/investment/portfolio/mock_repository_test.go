package portfolios

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type mockPortfolioRepository struct {
	portfolios map[uuid.UUID]models.Portfolio
	shouldFail bool
}

func newMockPortfolioRepository(portfolios ...models.Portfolio) *mockPortfolioRepository {
	m := &mockPortfolioRepository{portfolios: make(map[uuid.UUID]models.Portfolio)}
	for _, p := range portfolios {
		m.portfolios[p.ID] = p
	}
	return m
}

func (m *mockPortfolioRepository) Create(_ context.Context, portfolio *models.Portfolio) error {
	if m.shouldFail {
		return errors.New("repository error")
	}
	m.portfolios[portfolio.ID] = *portfolio
	return nil
}

func (m *mockPortfolioRepository) FindByID(_ context.Context, portfolioID uuid.UUID, portfolio *models.Portfolio) error {
	if m.shouldFail {
		return errors.New("repository error")
	}
	p, ok := m.portfolios[portfolioID]
	if !ok {
		return sql.ErrNoRows
	}
	*portfolio = p
	return nil
}

func (m *mockPortfolioRepository) ExistsByName(_ context.Context, userID string, name string) (bool, error) {
	for _, p := range m.portfolios {
		if p.UserID == userID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPortfolioRepository) FindByUserID(_ context.Context, userID string) ([]models.Portfolio, error) {
	portfolios := []models.Portfolio{}
	for _, p := range m.portfolios {
		if p.UserID == userID {
			portfolios = append(portfolios, p)
		}
	}
	return portfolios, nil
}

func (m *mockPortfolioRepository) Update(_ context.Context, portfolio *models.Portfolio) (int64, error) {
	if _, ok := m.portfolios[portfolio.ID]; !ok {
		return 0, nil
	}
	m.portfolios[portfolio.ID] = *portfolio
	return 1, nil
}

func (m *mockPortfolioRepository) DeletePortfolio(_ context.Context, portfolioID uuid.UUID) error {
	delete(m.portfolios, portfolioID)
	return nil
}
