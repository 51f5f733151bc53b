package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type Service interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactions(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, portfolioID, transactionID uuid.UUID) error
	GetTransactionTypes() []models.TransactionType
}

type AssetChecker interface {
	AssetExists(ctx context.Context, assetID uuid.UUID) (bool, error)
}

type service struct {
	transactionRepo TransactionRepository
	assets          AssetChecker
	now             func() time.Time
	log             zerolog.Logger
}

func NewTransactionService(repo TransactionRepository, assets AssetChecker, log zerolog.Logger) Service {
	return &service{
		transactionRepo: repo,
		assets:          assets,
		now:             time.Now,
		log:             log.With().Str("service", "transaction").Logger(),
	}
}

func (s *service) GetTransactionTypes() []models.TransactionType {
	return []models.TransactionType{models.TransactionBuy, models.TransactionSell}
}

// CreateTransaction validates the transaction and stores it. The caller is
// responsible for checking portfolio ownership.
func (s *service) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := Validate(transaction, s.now()); err != nil {
		return err
	}

	exists, err := s.assets.AssetExists(ctx, transaction.AssetID)
	if err != nil {
		return fmt.Errorf("failed to check asset: %w", err)
	}
	if !exists {
		return ErrAssetNotFound
	}

	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.CreatedAt = s.now()

	if err := s.transactionRepo.create(ctx, transaction); err != nil {
		return err
	}

	s.log.Info().
		Str("portfolio_id", transaction.PortfolioID.String()).
		Str("asset_id", transaction.AssetID.String()).
		Str("type", string(transaction.Type)).
		Msg("Transaction recorded")
	return nil
}

func (s *service) GetTransactions(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error) {
	return s.transactionRepo.getTransactionsByPortfolio(ctx, portfolioID)
}

func (s *service) DeleteTransaction(ctx context.Context, portfolioID, transactionID uuid.UUID) error {
	affected, err := s.transactionRepo.delete(ctx, portfolioID, transactionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
