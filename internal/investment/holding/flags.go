package holding

import "github.com/sebuszqo/BourseDashboard/internal/investment/models"

// Flag marks a data-quality issue on a computed holding. Flags never block the computation.
type Flag string

const (
	FlagOversold     Flag = "oversold"
	FlagClosed       Flag = "closed"
	FlagNoBuys       Flag = "no_buys"
	FlagUnknownAsset Flag = "unknown_asset"
	FlagMissingPrice Flag = "missing_price"
)

func Inspect(h models.Holding, priceKnown, metadataKnown bool) []Flag {
	var flags []Flag
	switch {
	case h.Quantity < 0:
		flags = append(flags, FlagOversold)
	case h.Quantity == 0:
		flags = append(flags, FlagClosed)
	}
	if h.AveragePrice == 0 && h.Quantity != 0 {
		flags = append(flags, FlagNoBuys)
	}
	if !metadataKnown {
		flags = append(flags, FlagUnknownAsset)
	}
	if !priceKnown {
		flags = append(flags, FlagMissingPrice)
	}
	return flags
}
