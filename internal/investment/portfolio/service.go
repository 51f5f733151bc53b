package portfolios

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// DefaultCurrency is the settlement currency of the BRVM.
const DefaultCurrency = "XOF"

var (
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrUnauthorizedAccess = errors.New("unauthorized: user does not own this portfolio")
	ErrPortfolioNameTaken = errors.New("portfolio with this name already exists")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter ISO code")
)

type Service interface {
	CreatePortfolio(ctx context.Context, userID string, name, description, currency string) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID uuid.UUID, userID string) (*models.Portfolio, error)
	GetAllPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, portfolioID uuid.UUID, userID string, name, description *string) error
	DeletePortfolio(ctx context.Context, portfolioID uuid.UUID, userID string) error
	CheckPortfolioOwnership(ctx context.Context, portfolioID uuid.UUID, userID string) (bool, error)
}

type service struct {
	portfolioRepo PortfolioRepository
	log           zerolog.Logger
}

func NewPortfolioService(repo PortfolioRepository, log zerolog.Logger) Service {
	return &service{portfolioRepo: repo, log: log.With().Str("service", "portfolio").Logger()}
}

func (s *service) CreatePortfolio(ctx context.Context, userID string, name, description, currency string) (*models.Portfolio, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}

	exists, err := s.portfolioRepo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPortfolioNameTaken
	}

	now := time.Now()
	portfolio := &models.Portfolio{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	s.log.Info().Str("portfolio_id", portfolio.ID.String()).Str("user_id", userID).Msg("Portfolio created")
	return portfolio, nil
}

func (s *service) GetPortfolio(ctx context.Context, portfolioID uuid.UUID, userID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.portfolioRepo.FindByID(ctx, portfolioID, &portfolio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}
	if portfolio.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}
	return &portfolio, nil
}

func (s *service) UpdatePortfolio(ctx context.Context, portfolioID uuid.UUID, userID string, name, description *string) error {
	portfolio, err := s.GetPortfolio(ctx, portfolioID, userID)
	if err != nil {
		return err
	}

	if name != nil && *name != portfolio.Name {
		exists, err := s.portfolioRepo.ExistsByName(ctx, userID, *name)
		if err != nil {
			return err
		}
		if exists {
			return ErrPortfolioNameTaken
		}
		portfolio.Name = *name
	}

	if description != nil {
		portfolio.Description = *description
	}

	affected, err := s.portfolioRepo.Update(ctx, portfolio)
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrPortfolioNotFound
	}
	return nil
}

func (s *service) DeletePortfolio(ctx context.Context, portfolioID uuid.UUID, userID string) error {
	if _, err := s.GetPortfolio(ctx, portfolioID, userID); err != nil {
		return err
	}

	if err := s.portfolioRepo.DeletePortfolio(ctx, portfolioID); err != nil {
		return err
	}
	s.log.Info().Str("portfolio_id", portfolioID.String()).Msg("Portfolio deleted")
	return nil
}

func (s *service) GetAllPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	return s.portfolioRepo.FindByUserID(ctx, userID)
}

func (s *service) CheckPortfolioOwnership(ctx context.Context, portfolioID uuid.UUID, userID string) (bool, error) {
	_, err := s.GetPortfolio(ctx, portfolioID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthorizedAccess), errors.Is(err, ErrPortfolioNotFound):
		return false, nil
	default:
		return false, err
	}
}
