package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/wb-sales-bot/internal/report"
	"github.com/Spok95/wb-sales-bot/internal/wb"
)

func TestBuildWorkbook(t *testing.T) {
	records := []wb.SalesRecord{
		{Quantity: 2, RetailPrice: decimal.NewFromInt(100)},
		{Quantity: 3, RetailPrice: decimal.NewFromInt(50)},
	}
	sum, err := report.Summarize("Магазин", records)
	require.NoError(t, err)

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	data, err := report.BuildWorkbook(sum, report.Period{From: day, To: day}, records)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	require.Contains(t, title, "Магазин")
	require.Contains(t, title, "2024-03-09")

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}
	require.Contains(t, flat, "Общая сумма продаж")
	require.Contains(t, flat, "350.00")
	require.Contains(t, flat, "Средняя цена продажи")
	require.Contains(t, flat, "70.00")
}
