package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type mockRepository struct {
	assets      map[uuid.UUID]models.Asset
	lastUpdated time.Time
	upserted    []models.Quote
	loadedIDs   [][]uuid.UUID
	shouldFail  bool
}

func newMockRepository(assets ...models.Asset) *mockRepository {
	m := &mockRepository{assets: make(map[uuid.UUID]models.Asset)}
	for _, a := range assets {
		m.assets[a.ID] = a
	}
	return m
}

func (m *mockRepository) upsertAssets(_ context.Context, quotes []models.Quote) ([]models.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("repository error")
	}
	m.upserted = append(m.upserted, quotes...)
	assets := make([]models.Asset, 0, len(quotes))
	for _, q := range quotes {
		a := models.Asset{
			ID:       uuid.New(),
			Ticker:   q.Symbol,
			Name:     q.Name,
			Type:     q.Type,
			Exchange: q.Exchange,
			Currency: q.Currency,
			Price:    q.Price,
		}
		m.assets[a.ID] = a
		assets = append(assets, a)
	}
	return assets, nil
}

func (m *mockRepository) getByID(_ context.Context, assetID uuid.UUID) (*models.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("repository error")
	}
	a, ok := m.assets[assetID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (m *mockRepository) getByIDs(_ context.Context, assetIDs []uuid.UUID) ([]models.Asset, error) {
	m.loadedIDs = append(m.loadedIDs, assetIDs)
	if m.shouldFail {
		return nil, errors.New("repository error")
	}
	var assets []models.Asset
	for _, id := range assetIDs {
		if a, ok := m.assets[id]; ok {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (m *mockRepository) search(_ context.Context, query string, assetType models.AssetType, _ string, limit int) ([]models.Asset, error) {
	assets := []models.Asset{}
	for _, a := range m.assets {
		if len(assets) == limit {
			break
		}
		if assetType != "" && a.Type != assetType {
			continue
		}
		if strings.Contains(strings.ToLower(a.Ticker+a.Name), strings.ToLower(query)) {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (m *mockRepository) getLastUpdatedAt(context.Context) (time.Time, error) {
	if m.lastUpdated.IsZero() {
		return time.Time{}, sql.ErrNoRows
	}
	return m.lastUpdated, nil
}

type mockQuoteCache struct {
	assets     map[uuid.UUID]models.Asset
	shouldFail bool
}

func newMockQuoteCache(assets ...models.Asset) *mockQuoteCache {
	m := &mockQuoteCache{assets: make(map[uuid.UUID]models.Asset)}
	for _, a := range assets {
		m.assets[a.ID] = a
	}
	return m
}

func (m *mockQuoteCache) SetAssets(_ context.Context, assets []models.Asset) error {
	if m.shouldFail {
		return errors.New("cache down")
	}
	if m.assets == nil {
		m.assets = make(map[uuid.UUID]models.Asset)
	}
	for _, a := range assets {
		m.assets[a.ID] = a
	}
	return nil
}

func (m *mockQuoteCache) GetAssets(_ context.Context, assetIDs []uuid.UUID) (map[uuid.UUID]models.Asset, error) {
	if m.shouldFail {
		return nil, errors.New("cache down")
	}
	out := make(map[uuid.UUID]models.Asset)
	for _, id := range assetIDs {
		if a, ok := m.assets[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

type mockQuoteSource struct {
	quotes []models.Quote
	err    error
}

func (m *mockQuoteSource) FetchQuotes(context.Context) ([]models.Quote, error) {
	return m.quotes, m.err
}
