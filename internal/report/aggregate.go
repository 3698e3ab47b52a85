package report

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Spok95/wb-sales-bot/internal/wb"
)

// ErrNoSales — за период не продано ни одной единицы; среднюю цену
// посчитать нельзя.
var ErrNoSales = errors.New("no sales in period")

// Summary — свод по магазину за период. Никогда не персистится.
type Summary struct {
	ShopName        string
	TotalSales      decimal.Decimal
	TotalQty        int
	CommissionTotal decimal.Decimal
	DiscountTotal   decimal.Decimal
	AcquiringTotal  decimal.Decimal
	LogisticsTotal  decimal.Decimal
	StorageTotal    decimal.Decimal
	AveragePrice    decimal.Decimal
}

// Summarize сводит строки отчёта в итоговые суммы. Вся арифметика —
// на decimal.
func Summarize(shopName string, records []wb.SalesRecord) (Summary, error) {
	s := Summary{ShopName: shopName}
	for _, r := range records {
		qty := decimal.NewFromInt(int64(r.Quantity))
		s.TotalQty += r.Quantity
		s.TotalSales = s.TotalSales.Add(qty.Mul(r.RetailPrice))
		s.CommissionTotal = s.CommissionTotal.Add(r.CommissionPercent)
		s.DiscountTotal = s.DiscountTotal.Add(r.PpvzSppPrc)
		s.AcquiringTotal = s.AcquiringTotal.Add(r.AcquiringPercent)
		s.LogisticsTotal = s.LogisticsTotal.Add(r.DeliveryRub)
		s.StorageTotal = s.StorageTotal.Add(r.StorageFee)
	}
	if s.TotalQty == 0 {
		return Summary{}, ErrNoSales
	}
	s.AveragePrice = s.TotalSales.Div(decimal.NewFromInt(int64(s.TotalQty)))
	return s, nil
}
