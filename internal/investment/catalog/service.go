package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrEmptyQuoteFeed   = errors.New("quote feed returned no quotes")
	ErrInvalidAssetType = errors.New("invalid asset type")
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Service interface {
	ImportQuotes(ctx context.Context) (int, error)
	NeedsUpdate(ctx context.Context) (bool, error)
	Snapshot(ctx context.Context, assetIDs []uuid.UUID) (*Snapshot, error)
	GetAsset(ctx context.Context, assetID uuid.UUID) (*models.Asset, error)
	AssetExists(ctx context.Context, assetID uuid.UUID) (bool, error)
	SearchAssets(ctx context.Context, query string, assetType models.AssetType, exchange string, limit int) ([]models.Asset, error)
}

// QuoteSource is the upstream quote feed.
type QuoteSource interface {
	FetchQuotes(ctx context.Context) ([]models.Quote, error)
}

type service struct {
	repo   Repository
	source QuoteSource
	cache  QuoteCache
	maxAge time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewCatalogService(repo Repository, source QuoteSource, cache QuoteCache, maxAge time.Duration, log zerolog.Logger) Service {
	if cache == nil {
		cache = NoopQuoteCache{}
	}
	return &service{
		repo:   repo,
		source: source,
		cache:  cache,
		maxAge: maxAge,
		now:    time.Now,
		log:    log.With().Str("service", "catalog").Logger(),
	}
}

func (s *service) ImportQuotes(ctx context.Context) (int, error) {
	quotes, err := s.source.FetchQuotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	valid := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" || q.Exchange == "" {
			s.log.Warn().Str("symbol", q.Symbol).Msg("Skipping quote without symbol or exchange")
			continue
		}
		if !q.Type.IsValid() {
			q.Type = models.AssetTypeOther
		}
		q.Symbol = strings.ToUpper(q.Symbol)
		q.Exchange = strings.ToUpper(q.Exchange)
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return 0, ErrEmptyQuoteFeed
	}

	assets, err := s.repo.upsertAssets(ctx, valid)
	if err != nil {
		return 0, fmt.Errorf("failed to store quotes: %w", err)
	}

	if err := s.cache.SetAssets(ctx, assets); err != nil {
		s.log.Warn().Err(err).Msg("Quote cache update failed")
	}

	s.log.Info().Int("received", len(quotes)).Int("stored", len(assets)).Msg("Quotes imported")
	return len(assets), nil
}

func (s *service) NeedsUpdate(ctx context.Context) (bool, error) {
	lastUpdated, err := s.repo.getLastUpdatedAt(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// empty catalog
			return true, nil
		}
		return false, err
	}
	return s.now().Sub(lastUpdated) > s.maxAge, nil
}

// Snapshot reads assets through the quote cache. Only ids the cache misses hit the
// repository, and those are written back to the cache.
func (s *service) Snapshot(ctx context.Context, assetIDs []uuid.UUID) (*Snapshot, error) {
	cached, err := s.cache.GetAssets(ctx, assetIDs)
	if err != nil {
		s.log.Warn().Err(err).Msg("Quote cache unavailable, reading assets from the catalog")
		cached = nil
	}

	assets := make([]models.Asset, 0, len(assetIDs))
	missing := make([]uuid.UUID, 0, len(assetIDs))
	for _, id := range assetIDs {
		if asset, ok := cached[id]; ok {
			assets = append(assets, asset)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return NewSnapshot(assets), nil
	}

	stored, err := s.repo.getByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetAssets(ctx, stored); err != nil {
		s.log.Warn().Err(err).Msg("Quote cache backfill failed")
	}

	s.log.Debug().Int("cached", len(assets)).Int("loaded", len(stored)).Msg("Catalog snapshot built")
	return NewSnapshot(append(assets, stored...)), nil
}

func (s *service) GetAsset(ctx context.Context, assetID uuid.UUID) (*models.Asset, error) {
	asset, err := s.repo.getByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *service) AssetExists(ctx context.Context, assetID uuid.UUID) (bool, error) {
	_, err := s.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) SearchAssets(ctx context.Context, query string, assetType models.AssetType, exchange string, limit int) ([]models.Asset, error) {
	if assetType != "" && !assetType.IsValid() {
		return nil, ErrInvalidAssetType
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.repo.search(ctx, strings.TrimSpace(query), assetType, exchange, limit)
}
