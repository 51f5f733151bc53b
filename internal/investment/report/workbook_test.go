package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/holding"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *holding.Report {
	holdings := []models.Holding{
		{AssetID: uuid.New(), Ticker: "SNTS", Name: "Sonatel", Type: models.AssetTypeStock,
			Quantity: 3, AveragePrice: 100.0 / 3, CurrentPrice: 40, CurrentValue: 120, GainLoss: 20, GainLossPercent: 20},
		{AssetID: uuid.New(), Ticker: "N/A", Name: "Inconnu", Type: models.AssetTypeOther, Quantity: -1},
	}
	return &holding.Report{
		PortfolioID:   uuid.New(),
		PortfolioName: "BRVM",
		Currency:      "XOF",
		GeneratedAt:   time.Date(2024, time.June, 3, 18, 30, 0, 0, time.UTC),
		Holdings: []holding.Line{
			{Holding: holdings[0]},
			{Holding: holdings[1], Flags: []holding.Flag{holding.FlagOversold, holding.FlagUnknownAsset}},
		},
		Summary: holding.Summarize(holdings),
	}
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestHoldingsWorkbook_Positions(t *testing.T) {
	content, err := NewXLSXGenerator(zerolog.Nop()).HoldingsWorkbook(sampleReport())
	require.NoError(t, err)

	f := openWorkbook(t, content)
	assert.Equal(t, []string{PositionsSheet, SummarySheet}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	cell := func(axis string) string {
		v, err := f.GetCellValue(PositionsSheet, axis, raw)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Ticker", cell("A1"))
	assert.Equal(t, "SNTS", cell("A2"))
	assert.Equal(t, "stock", cell("C2"))
	assert.Equal(t, "33.33", cell("E2"))
	assert.Equal(t, "120", cell("G2"))
	assert.Equal(t, "", cell("J2"))
	assert.Equal(t, "N/A", cell("A3"))
	assert.Equal(t, "oversold, unknown_asset", cell("J3"))
}

func TestHoldingsWorkbook_Summary(t *testing.T) {
	content, err := NewXLSXGenerator(zerolog.Nop()).HoldingsWorkbook(sampleReport())
	require.NoError(t, err)

	f := openWorkbook(t, content)
	raw := excelize.Options{RawCellValue: true}

	name, _ := f.GetCellValue(SummarySheet, "B1", raw)
	assert.Equal(t, "BRVM", name)
	generated, _ := f.GetCellValue(SummarySheet, "B3", raw)
	assert.Equal(t, "2024-06-03 18:30", generated)
	total, _ := f.GetCellValue(SummarySheet, "B5", raw)
	assert.Equal(t, "120", total)
	firstType, _ := f.GetCellValue(SummarySheet, "A11", raw)
	assert.Equal(t, "stock", firstType)
}

func TestHoldingsWorkbook_NilReport(t *testing.T) {
	_, err := NewXLSXGenerator(zerolog.Nop()).HoldingsWorkbook(nil)
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 33.33, round(100.0/3))
	assert.Equal(t, 2.68, round(2.675000001))
	assert.Equal(t, -0.5, round(-0.499999))
	assert.Equal(t, 0.0, round(math.Inf(1)))
	assert.Equal(t, 0.0, round(math.NaN()))
}
