package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/wb-sales-bot/internal/report"
	"github.com/Spok95/wb-sales-bot/internal/wb"
)

func TestSummarize(t *testing.T) {
	records := []wb.SalesRecord{
		{
			Quantity:          2,
			RetailPrice:       decimal.NewFromInt(100),
			CommissionPercent: decimal.RequireFromString("15.5"),
			PpvzSppPrc:        decimal.RequireFromString("3.2"),
			AcquiringPercent:  decimal.RequireFromString("1.1"),
			DeliveryRub:       decimal.RequireFromString("45.50"),
			StorageFee:        decimal.RequireFromString("2.30"),
		},
		{
			Quantity:          3,
			RetailPrice:       decimal.NewFromInt(50),
			CommissionPercent: decimal.RequireFromString("10.5"),
			PpvzSppPrc:        decimal.RequireFromString("1.8"),
			AcquiringPercent:  decimal.RequireFromString("0.9"),
			DeliveryRub:       decimal.RequireFromString("30.25"),
			StorageFee:        decimal.RequireFromString("1.70"),
		},
	}

	sum, err := report.Summarize("Магазин", records)
	require.NoError(t, err)

	require.Equal(t, "Магазин", sum.ShopName)
	require.Equal(t, 5, sum.TotalQty)
	require.Equal(t, "350", sum.TotalSales.String())
	require.Equal(t, "70", sum.AveragePrice.String())
	require.Equal(t, "26", sum.CommissionTotal.String())
	require.Equal(t, "5", sum.DiscountTotal.String())
	require.Equal(t, "2", sum.AcquiringTotal.String())
	require.Equal(t, "75.75", sum.LogisticsTotal.String())
	require.Equal(t, "4", sum.StorageTotal.String())
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := report.Summarize("Магазин", nil)
	require.ErrorIs(t, err, report.ErrNoSales)
}

func TestSummarizeZeroQuantity(t *testing.T) {
	records := []wb.SalesRecord{
		{Quantity: 0, RetailPrice: decimal.NewFromInt(100)},
	}
	_, err := report.Summarize("Магазин", records)
	require.ErrorIs(t, err, report.ErrNoSales)
}

// Цена с дробной частью: сумма не должна плыть, как было бы на float64.
func TestSummarizeDecimalExact(t *testing.T) {
	price := decimal.RequireFromString("0.1")
	records := make([]wb.SalesRecord, 10)
	for i := range records {
		records[i] = wb.SalesRecord{Quantity: 1, RetailPrice: price}
	}

	sum, err := report.Summarize("Магазин", records)
	require.NoError(t, err)
	require.Equal(t, "1", sum.TotalSales.String())
	require.Equal(t, "0.1", sum.AveragePrice.String())
}
