package holding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	holdings := []models.Holding{
		{AssetID: snts, Ticker: "SNTS", Type: models.AssetTypeStock, Quantity: 20, AveragePrice: 150, CurrentValue: 3600, GainLoss: 600},
		{AssetID: orac, Ticker: "ORAC", Type: models.AssetTypeStock, Quantity: 1, AveragePrice: 400, CurrentValue: 400, GainLoss: 0},
		{AssetID: fcpx, Ticker: "FCPX", Type: models.AssetTypeOPCVM, Quantity: 10, AveragePrice: 110, CurrentValue: 1000, GainLoss: -100},
	}

	s := Summarize(holdings)

	assert.Equal(t, 3, s.HoldingsCount)
	assert.Equal(t, 5000.0, s.TotalValue)
	assert.Equal(t, 4500.0, s.TotalCost)
	assert.Equal(t, 500.0, s.TotalGainLoss)
	assert.InDelta(t, 11.111, s.TotalGainLossPercent, 0.001)

	require.Len(t, s.Allocation, 2)
	assert.Equal(t, Allocation{Type: models.AssetTypeStock, Value: 4000, Weight: 80}, s.Allocation[0])
	assert.Equal(t, Allocation{Type: models.AssetTypeOPCVM, Value: 1000, Weight: 20}, s.Allocation[1])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.HoldingsCount)
	assert.Zero(t, s.TotalGainLossPercent)
	assert.NotNil(t, s.Allocation)
	assert.Empty(t, s.Allocation)
}

func TestSummarize_ZeroValueHoldingsHaveNoAllocation(t *testing.T) {
	s := Summarize([]models.Holding{
		{AssetID: snts, Type: models.AssetTypeStock, Quantity: 10, AveragePrice: 100, CurrentValue: 1200, GainLoss: 200},
		{AssetID: fcpx, Type: models.AssetTypeOPCVM, Quantity: 0, AveragePrice: 50},
		{AssetID: uuid.New(), Type: models.AssetTypeBond, Quantity: 5, AveragePrice: 10, CurrentValue: 0, GainLoss: -50},
	})

	assert.Equal(t, 3, s.HoldingsCount)
	require.Len(t, s.Allocation, 1)
	assert.Equal(t, Allocation{Type: models.AssetTypeStock, Value: 1200, Weight: 100}, s.Allocation[0])
	assert.Equal(t, 150.0, s.TotalGainLoss)
}

func TestSummarize_ZeroTotalValue(t *testing.T) {
	s := Summarize([]models.Holding{{AssetID: uuid.New(), Type: models.AssetTypeOther, Quantity: 0}})

	assert.Empty(t, s.Allocation)
	assert.Zero(t, s.TotalGainLossPercent)
}

func TestSortByValue(t *testing.T) {
	holdings := []models.Holding{
		{AssetID: fcpx, Ticker: "FCPX", CurrentValue: 1000},
		{AssetID: orac, Ticker: "ORAC", CurrentValue: 3600},
		{AssetID: snts, Ticker: "SNTS", CurrentValue: 3600},
		{AssetID: uuid.New(), Ticker: "ABJC", CurrentValue: 0},
	}

	SortByValue(holdings)

	tickers := make([]string, len(holdings))
	for i, h := range holdings {
		tickers[i] = h.Ticker
	}
	assert.Equal(t, []string{"ORAC", "SNTS", "FCPX", "ABJC"}, tickers)
}
