package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/wb-sales-bot/internal/wb"
)

// BuildWorkbook собирает xlsx с построчной детализацией отчёта и блоком
// итогов под ней.
func BuildWorkbook(sum Summary, p Period, records []wb.SalesRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title := fmt.Sprintf("Отчёт по магазину «%s» за %s", sum.ShopName, p)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheet, "A1", "G1"); err != nil {
		return nil, err
	}

	headers := []string{
		"Количество", "Розничная цена", "Комиссия WB", "Скидка WB",
		"Эквайринг", "Логистика, руб", "Хранение, руб",
	}
	rowIdx := 3
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	rowIdx++

	for _, r := range records {
		values := []any{
			r.Quantity,
			r.RetailPrice.InexactFloat64(),
			r.CommissionPercent.InexactFloat64(),
			r.PpvzSppPrc.InexactFloat64(),
			r.AcquiringPercent.InexactFloat64(),
			r.DeliveryRub.InexactFloat64(),
			r.StorageFee.InexactFloat64(),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		rowIdx++
	}

	rowIdx++
	totals := []struct {
		label string
		value string
	}{
		{"Общая сумма продаж", sum.TotalSales.StringFixed(2)},
		{"Количество проданных единиц", fmt.Sprintf("%d", sum.TotalQty)},
		{"Комиссия Wildberries", sum.CommissionTotal.StringFixed(2)},
		{"Скидки Wildberries", sum.DiscountTotal.StringFixed(2)},
		{"Комиссия эквайринга", sum.AcquiringTotal.StringFixed(2)},
		{"Стоимость логистики", sum.LogisticsTotal.StringFixed(2)},
		{"Стоимость хранения", sum.StorageTotal.StringFixed(2)},
		{"Средняя цена продажи", sum.AveragePrice.StringFixed(2)},
	}
	for _, t := range totals {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), t.label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), t.value)
		rowIdx++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
