package holding

import (
	"math"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// Placeholders used when the catalog does not know an asset.
const (
	UnknownTicker = "N/A"
	UnknownName   = "Inconnu"
)

// position accumulates the transactions of one asset.
type position struct {
	totalQuantity    float64
	totalBuyQuantity float64
	totalBuyCost     float64
}

func (p *position) apply(t models.Transaction) {
	switch t.Type {
	case models.TransactionBuy:
		p.totalQuantity += t.Quantity
		p.totalBuyQuantity += t.Quantity
		p.totalBuyCost += t.Quantity * t.Price
	case models.TransactionSell:
		// sells reduce the position but never revise the cost basis
		p.totalQuantity -= t.Quantity
	}
}

// ComputeHoldings folds the portfolio's transaction log into one Holding per traded asset.
//
// Every asset referenced by at least one transaction gets a Holding, including closed or
// oversold positions. Assets unknown to the lookups degrade to a zero price and placeholder
// metadata instead of failing. Each lookup is called at most once per asset. The function keeps
// no state between calls and performs no I/O, so it is safe to call concurrently.
//
// Holdings are returned in order of first appearance in the transaction log.
func ComputeHoldings(portfolio models.Portfolio, prices PriceLookup, metadata MetadataLookup) []models.Holding {
	positions := make(map[uuid.UUID]*position)
	order := make([]uuid.UUID, 0)

	for _, t := range portfolio.Transactions {
		p, ok := positions[t.AssetID]
		if !ok {
			p = &position{}
			positions[t.AssetID] = p
			order = append(order, t.AssetID)
		}
		p.apply(t)
	}

	holdings := make([]models.Holding, 0, len(order))
	for _, assetID := range order {
		holdings = append(holdings, valuate(assetID, positions[assetID], prices, metadata))
	}
	return holdings
}

func valuate(assetID uuid.UUID, p *position, prices PriceLookup, metadata MetadataLookup) models.Holding {
	meta := resolveMetadata(assetID, metadata)
	currentPrice := resolvePrice(assetID, prices)

	quantity := finite(p.totalQuantity)

	var averagePrice float64
	if p.totalBuyQuantity > 0 {
		averagePrice = finite(p.totalBuyCost / p.totalBuyQuantity)
	}

	currentValue := finite(quantity * currentPrice)
	costBasis := finite(averagePrice * quantity)
	gainLoss := finite(currentValue - costBasis)

	var gainLossPercent float64
	if costBasis != 0 {
		gainLossPercent = finite(gainLoss / costBasis * 100)
	}

	return models.Holding{
		AssetID:         assetID,
		Ticker:          meta.Ticker,
		Name:            meta.Name,
		Type:            meta.Type,
		Quantity:        quantity,
		AveragePrice:    averagePrice,
		CurrentPrice:    currentPrice,
		CurrentValue:    currentValue,
		GainLoss:        gainLoss,
		GainLossPercent: gainLossPercent,
	}
}

func resolvePrice(assetID uuid.UUID, prices PriceLookup) float64 {
	if prices == nil {
		return 0
	}
	price, ok := prices.Price(assetID)
	if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}

func resolveMetadata(assetID uuid.UUID, metadata MetadataLookup) models.AssetMetadata {
	if metadata != nil {
		if meta, ok := metadata.Metadata(assetID); ok {
			if meta.Type == "" {
				meta.Type = models.AssetTypeOther
			}
			return meta
		}
	}
	return models.AssetMetadata{
		Ticker: UnknownTicker,
		Name:   UnknownName,
		Type:   models.AssetTypeOther,
	}
}

// finite degrades overflowed or undefined results to 0 so holdings always encode.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
