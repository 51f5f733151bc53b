package transactions

import (
	"math"
	"time"

	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
)

// maxAmount bounds quantity and price so holdings derived from them stay finite.
const maxAmount = 1e12

// Validate checks a transaction before it is stored. Holdings are computed
// from whatever is stored, so this is the only place bad input is rejected.
func Validate(t *models.Transaction, now time.Time) error {
	errs := &ValidationErrors{}

	if !t.Type.IsValid() {
		errs.Add("transaction_type", "must be BUY or SELL")
	}
	if !isPositive(t.Quantity) {
		errs.Add("quantity", "must be greater than zero")
	} else if t.Quantity > maxAmount {
		errs.Add("quantity", "is too large")
	}
	if !isPositive(t.Price) {
		errs.Add("price", "must be greater than zero")
	} else if t.Price > maxAmount {
		errs.Add("price", "is too large")
	}
	if t.Date.IsZero() {
		errs.Add("transaction_date", "is required")
	} else if t.Date.After(now) {
		errs.Add("transaction_date", "cannot be in the future")
	}

	return errs.errOrNil()
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
