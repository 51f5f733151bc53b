package holding

import (
	"sort"

	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

type Allocation struct {
	Type   models.AssetType `json:"type"`
	Value  float64          `json:"value"`
	Weight float64          `json:"weight"`
}

// Summary holds portfolio-level totals derived from holdings.
type Summary struct {
	HoldingsCount        int          `json:"holdings_count"`
	TotalValue           float64      `json:"total_value"`
	TotalCost            float64      `json:"total_cost"`
	TotalGainLoss        float64      `json:"total_gain_loss"`
	TotalGainLossPercent float64      `json:"total_gain_loss_percent"`
	Allocation           []Allocation `json:"allocation"`
}

// Summarize totals holdings and splits the current value by asset type.
// Holdings worth nothing (closed or unpriced) get no allocation row.
// Weights are percentages of the total value; they are all 0 when the total is 0.
func Summarize(holdings []models.Holding) Summary {
	summary := Summary{HoldingsCount: len(holdings), Allocation: []Allocation{}}

	byType := make(map[models.AssetType]float64)
	for _, h := range holdings {
		summary.TotalValue += h.CurrentValue
		summary.TotalCost += h.CostBasis()
		summary.TotalGainLoss += h.GainLoss
		if h.CurrentValue != 0 {
			byType[h.Type] += h.CurrentValue
		}
	}

	summary.TotalValue = finite(summary.TotalValue)
	summary.TotalCost = finite(summary.TotalCost)
	summary.TotalGainLoss = finite(summary.TotalGainLoss)
	if summary.TotalCost != 0 {
		summary.TotalGainLossPercent = finite(summary.TotalGainLoss / summary.TotalCost * 100)
	}

	for assetType, value := range byType {
		a := Allocation{Type: assetType, Value: finite(value)}
		if summary.TotalValue != 0 {
			a.Weight = finite(a.Value / summary.TotalValue * 100)
		}
		summary.Allocation = append(summary.Allocation, a)
	}
	sort.Slice(summary.Allocation, func(i, j int) bool {
		if summary.Allocation[i].Value != summary.Allocation[j].Value {
			return summary.Allocation[i].Value > summary.Allocation[j].Value
		}
		return summary.Allocation[i].Type < summary.Allocation[j].Type
	})

	return summary
}

// SortByValue orders holdings for display: largest current value first, then by ticker.
func SortByValue(holdings []models.Holding) {
	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].CurrentValue != holdings[j].CurrentValue {
			return holdings[i].CurrentValue > holdings[j].CurrentValue
		}
		if holdings[i].Ticker != holdings[j].Ticker {
			return holdings[i].Ticker < holdings[j].Ticker
		}
		return holdings[i].AssetID.String() < holdings[j].AssetID.String()
	})
}
