package holding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/catalog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

var ErrNoExporter = errors.New("holdings export is not configured")

type Service interface {
	GetPortfolioHoldings(ctx context.Context, portfolioID uuid.UUID, userID string) (*Report, error)
	ExportPortfolioHoldings(ctx context.Context, portfolioID uuid.UUID, userID string) ([]byte, error)
}

type PortfolioService interface {
	GetPortfolio(ctx context.Context, portfolioID uuid.UUID, userID string) (*models.Portfolio, error)
}

type TransactionService interface {
	GetTransactions(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error)
}

type CatalogService interface {
	Snapshot(ctx context.Context, assetIDs []uuid.UUID) (*catalog.Snapshot, error)
}

type Exporter interface {
	HoldingsWorkbook(report *Report) ([]byte, error)
}

// Line is a holding as served to the dashboard, with its data-quality flags.
type Line struct {
	models.Holding
	Flags []Flag `json:"flags,omitempty"`
}

type Report struct {
	PortfolioID   uuid.UUID `json:"portfolio_id"`
	PortfolioName string    `json:"portfolio_name"`
	Currency      string    `json:"currency"`
	GeneratedAt   time.Time `json:"generated_at"`
	Holdings      []Line    `json:"holdings"`
	Summary       Summary   `json:"summary"`
}

type service struct {
	portfolioService   PortfolioService
	transactionService TransactionService
	catalogService     CatalogService
	exporter           Exporter
	now                func() time.Time
	log                zerolog.Logger
}

func NewHoldingService(
	portfolioService PortfolioService,
	transactionService TransactionService,
	catalogService CatalogService,
	exporter Exporter,
	log zerolog.Logger,
) Service {
	return &service{
		portfolioService:   portfolioService,
		transactionService: transactionService,
		catalogService:     catalogService,
		exporter:           exporter,
		now:                time.Now,
		log:                log.With().Str("service", "holding").Logger(),
	}
}

func (s *service) GetPortfolioHoldings(ctx context.Context, portfolioID uuid.UUID, userID string) (*Report, error) {
	portfolio, err := s.portfolioService.GetPortfolio(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionService.GetTransactions(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	portfolio.Transactions = transactions

	// Lookups are resolved up front so the aggregation itself stays pure.
	snapshot, err := s.catalogService.Snapshot(ctx, distinctAssetIDs(transactions))
	if err != nil {
		return nil, fmt.Errorf("failed to load asset catalog: %w", err)
	}

	holdings := ComputeHoldings(*portfolio, snapshot, snapshot)
	SortByValue(holdings)

	lines := make([]Line, 0, len(holdings))
	flagged := 0
	for _, h := range holdings {
		_, priceKnown := snapshot.Price(h.AssetID)
		_, metadataKnown := snapshot.Metadata(h.AssetID)
		flags := Inspect(h, priceKnown, metadataKnown)
		if len(flags) > 0 {
			flagged++
		}
		lines = append(lines, Line{Holding: h, Flags: flags})
	}

	s.log.Debug().
		Str("portfolio_id", portfolioID.String()).
		Int("transactions", len(transactions)).
		Int("holdings", len(holdings)).
		Int("flagged", flagged).
		Msg("Holdings computed")

	return &Report{
		PortfolioID:   portfolio.ID,
		PortfolioName: portfolio.Name,
		Currency:      portfolio.Currency,
		GeneratedAt:   s.now(),
		Holdings:      lines,
		Summary:       Summarize(holdings),
	}, nil
}

func (s *service) ExportPortfolioHoldings(ctx context.Context, portfolioID uuid.UUID, userID string) ([]byte, error) {
	if s.exporter == nil {
		return nil, ErrNoExporter
	}

	report, err := s.GetPortfolioHoldings(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.exporter.HoldingsWorkbook(report)
	if err != nil {
		return nil, fmt.Errorf("failed to build holdings workbook: %w", err)
	}
	return content, nil
}

func distinctAssetIDs(transactions []models.Transaction) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(transactions))
	ids := make([]uuid.UUID, 0, len(transactions))
	for _, t := range transactions {
		if _, ok := seen[t.AssetID]; ok {
			continue
		}
		seen[t.AssetID] = struct{}{}
		ids = append(ids, t.AssetID)
	}
	return ids
}
