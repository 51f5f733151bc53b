package models

import "github.com/google/uuid"

// Holding is the current position in one asset, derived from a portfolio's transactions.
// It is recomputed on every request and never stored.
type Holding struct {
	AssetID         uuid.UUID `json:"asset_id"`
	Ticker          string    `json:"ticker"`
	Name            string    `json:"name"`
	Type            AssetType `json:"type"`
	Quantity        float64   `json:"quantity"`
	AveragePrice    float64   `json:"average_price"`
	CurrentPrice    float64   `json:"current_price"`
	CurrentValue    float64   `json:"current_value"`
	GainLoss        float64   `json:"gain_loss"`
	GainLossPercent float64   `json:"gain_loss_percent"`
}

// CostBasis is the invested amount attributed to the remaining quantity.
func (h Holding) CostBasis() float64 {
	return h.AveragePrice * h.Quantity
}
