package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/config"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

const quotesPath = "/quotes"

// Client reads the daily quote sheet published by the market data feed.
type Client struct {
	client *resty.Client
	log    zerolog.Logger
}

func NewClient(cfg config.MarketData, log zerolog.Logger) *Client {
	client := resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.Timeout).
		SetBaseURL(cfg.URL).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}
	return &Client{client: client, log: log.With().Str("component", "marketdata").Logger()}
}

type quoteDTO struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Exchange string  `json:"exchange"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

func (c *Client) FetchQuotes(ctx context.Context) ([]models.Quote, error) {
	c.log.Debug().Msg("Requesting quotes")

	resp, err := c.client.R().
		SetContext(ctx).
		Get(quotesPath)
	if err != nil {
		c.log.Error().Err(err).Msg("Error while dialing market data feed")
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("market data feed responded %s", resp.Status())
	}

	var dtos []quoteDTO
	if err := json.Unmarshal(resp.Body(), &dtos); err != nil {
		return nil, fmt.Errorf("can't unmarshal quotes: %w", err)
	}

	quotes := make([]models.Quote, 0, len(dtos))
	for _, dto := range dtos {
		quotes = append(quotes, models.Quote{
			Symbol:   strings.TrimSpace(dto.Symbol),
			Name:     strings.TrimSpace(dto.Name),
			Type:     NormalizeAssetType(dto.Type),
			Exchange: strings.TrimSpace(dto.Exchange),
			Currency: strings.ToUpper(strings.TrimSpace(dto.Currency)),
			Price:    dto.Price,
		})
	}

	c.log.Debug().Int("quotes", len(quotes)).Msg("Quotes received")
	return quotes, nil
}

// NormalizeAssetType maps the feed's security classes onto catalog asset types.
func NormalizeAssetType(raw string) models.AssetType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "stock", "equity", "share", "action":
		return models.AssetTypeStock
	case "bond", "obligation":
		return models.AssetTypeBond
	case "opcvm", "fund", "fcp", "sicav", "etf":
		return models.AssetTypeOPCVM
	case "index", "indice":
		return models.AssetTypeIndex
	default:
		return models.AssetTypeOther
	}
}
