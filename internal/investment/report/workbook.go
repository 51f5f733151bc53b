// Package report renders computed holdings as spreadsheet exports.
package report

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/investment/holding"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	PositionsSheet = "Positions"
	SummarySheet   = "Synthese"

	// excelize built-in number format "#,##0.00"
	moneyNumFmt = 4
)

var positionsHeader = []interface{}{
	"Ticker", "Nom", "Type", "Quantite", "Prix moyen", "Cours", "Valeur", "Plus/moins-value", "Plus/moins-value %", "Alertes",
}

type XLSXGenerator struct {
	log zerolog.Logger
}

func NewXLSXGenerator(log zerolog.Logger) *XLSXGenerator {
	return &XLSXGenerator{log: log.With().Str("component", "report").Logger()}
}

// HoldingsWorkbook writes the report into a two-sheet workbook.
func (g *XLSXGenerator) HoldingsWorkbook(r *holding.Report) ([]byte, error) {
	if r == nil {
		return nil, errors.New("empty report")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			g.log.Error().Err(err).Msg("Error while closing workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", PositionsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := fillPositions(f, r, styles); err != nil {
		return nil, fmt.Errorf("positions sheet: %w", err)
	}
	if err := fillSummary(f, r, styles); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	g.log.Debug().Str("portfolio_id", r.PortfolioID.String()).Int("rows", len(r.Holdings)).Msg("Holdings workbook generated")
	return buf.Bytes(), nil
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return styles{}, err
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, money: money}, nil
}

func fillPositions(f *excelize.File, r *holding.Report, st styles) error {
	if err := f.SetSheetRow(PositionsSheet, "A1", &positionsHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(PositionsSheet, "A1", "J1", st.header); err != nil {
		return err
	}

	for i, line := range r.Holdings {
		row := []interface{}{
			line.Ticker,
			line.Name,
			string(line.Type),
			line.Quantity,
			round(line.AveragePrice),
			round(line.CurrentPrice),
			round(line.CurrentValue),
			round(line.GainLoss),
			round(line.GainLossPercent),
			joinFlags(line.Flags),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(PositionsSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(r.Holdings) > 0 {
		last := len(r.Holdings) + 1
		if err := f.SetCellStyle(PositionsSheet, "E2", fmt.Sprintf("I%d", last), st.money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(PositionsSheet, "A", "A", 12); err != nil {
		return err
	}
	return f.SetColWidth(PositionsSheet, "B", "B", 32)
}

func fillSummary(f *excelize.File, r *holding.Report, st styles) error {
	s := r.Summary
	rows := [][]interface{}{
		{"Portefeuille", r.PortfolioName},
		{"Devise", r.Currency},
		{"Genere le", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Lignes", s.HoldingsCount},
		{"Valeur totale", round(s.TotalValue)},
		{"Cout total", round(s.TotalCost)},
		{"Plus/moins-value", round(s.TotalGainLoss)},
		{"Plus/moins-value %", round(s.TotalGainLossPercent)},
	}
	for i := range rows {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "B5", "B8", st.money); err != nil {
		return err
	}

	start := len(rows) + 2
	header := []interface{}{"Type", "Valeur", "Poids %"}
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", start), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("A%d", start), fmt.Sprintf("C%d", start), st.header); err != nil {
		return err
	}

	for i, a := range s.Allocation {
		row := []interface{}{string(a.Type), round(a.Value), round(a.Weight)}
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", start+1+i), &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 22)
}

func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func joinFlags(flags []holding.Flag) string {
	parts := make([]string, len(flags))
	for i, flag := range flags {
		parts[i] = string(flag)
	}
	return strings.Join(parts, ", ")
}
