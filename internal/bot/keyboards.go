package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/wb-sales-bot/internal/domain/shops"
	"github.com/Spok95/wb-sales-bot/internal/report"
)

func cancelKeyboard() *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"),
		),
	)
	return &kb
}

// shopChoiceKeyboard — по одной кнопке на магазин, в порядке добавления.
func shopChoiceKeyboard(items []shops.Shop) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for i, s := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Name, fmt.Sprintf("report_%d", i)),
		))
	}
	rows = append(rows, cancelKeyboard().InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// excelKeyboard предлагает выгрузить только что показанный период файлом.
func excelKeyboard(shopIndex int, p report.Period) *tgbotapi.InlineKeyboardMarkup {
	if shopIndex < 0 {
		return nil
	}
	data := fmt.Sprintf("xlsx:%d:%s:%s",
		shopIndex,
		p.From.Format(report.DateLayout),
		p.To.Format(report.DateLayout),
	)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Выгрузить в Excel", data),
		),
	)
	return &kb
}
