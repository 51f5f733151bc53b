package transactions

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BourseDashboard/internal/investment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC)

func validTransaction() *models.Transaction {
	return &models.Transaction{
		PortfolioID: uuid.New(),
		AssetID:     uuid.New(),
		Type:        models.TransactionBuy,
		Quantity:    10,
		Price:       25500,
		Date:        now.Add(-24 * time.Hour),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.Transaction)
		fields []string
	}{
		{name: "valid", modify: func(*models.Transaction) {}},
		{name: "sell is valid", modify: func(tx *models.Transaction) { tx.Type = models.TransactionSell }},
		{name: "unknown type", modify: func(tx *models.Transaction) { tx.Type = "DIVIDEND" }, fields: []string{"transaction_type"}},
		{name: "zero quantity", modify: func(tx *models.Transaction) { tx.Quantity = 0 }, fields: []string{"quantity"}},
		{name: "negative price", modify: func(tx *models.Transaction) { tx.Price = -1 }, fields: []string{"price"}},
		{name: "NaN price", modify: func(tx *models.Transaction) { tx.Price = math.NaN() }, fields: []string{"price"}},
		{name: "quantity too large", modify: func(tx *models.Transaction) { tx.Quantity = 1e200 }, fields: []string{"quantity"}},
		{name: "price too large", modify: func(tx *models.Transaction) { tx.Price = 1e200 }, fields: []string{"price"}},
		{name: "infinite quantity", modify: func(tx *models.Transaction) { tx.Quantity = math.Inf(1) }, fields: []string{"quantity"}},
		{name: "price at ceiling", modify: func(tx *models.Transaction) { tx.Price = maxAmount }},
		{name: "missing date", modify: func(tx *models.Transaction) { tx.Date = time.Time{} }, fields: []string{"transaction_date"}},
		{name: "future date", modify: func(tx *models.Transaction) { tx.Date = now.Add(time.Hour) }, fields: []string{"transaction_date"}},
		{
			name: "collects every failure",
			modify: func(tx *models.Transaction) {
				tx.Quantity = -3
				tx.Price = 0
			},
			fields: []string{"quantity", "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.modify(tx)

			err := Validate(tx, now)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs *ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs.Errors, len(tt.fields))
			for i, field := range tt.fields {
				var verr *ValidationError
				require.True(t, errors.As(verrs.Errors[i], &verr))
				assert.Equal(t, field, verr.Field)
			}
		})
	}
}
