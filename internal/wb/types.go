package wb

import "github.com/shopspring/decimal"

// SalesRecord — одна строка отчёта reportDetailByPeriod.
// Денежные поля декодируются в decimal: суммирование на двоичной
// плавающей точке накапливает ошибку округления.
type SalesRecord struct {
	RRDID             int64           `json:"rrd_id"`
	Quantity          int             `json:"quantity"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	PpvzSppPrc        decimal.Decimal `json:"ppvz_spp_prc"`
	AcquiringPercent  decimal.Decimal `json:"acquiring_percent"`
	DeliveryRub       decimal.Decimal `json:"delivery_rub"`
	StorageFee        decimal.Decimal `json:"storage_fee"`
}
