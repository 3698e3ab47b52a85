package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/wb-sales-bot/internal/dialog"
	"github.com/Spok95/wb-sales-bot/internal/infra/metrics"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	log      *slog.Logger
	router   *Router
	sessions *dialog.Store
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, router *Router, sessions *dialog.Store) *Bot {
	return &Bot{api: api, log: log, router: router, sessions: sessions}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			// Каждое обновление — в своей горутине: сетевые вызовы
			// в диалоге одного пользователя не задерживают остальных.
			// Внутри пользователя порядок держит замок сессии.
			go b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	ev, chatID, ok := eventFromUpdate(upd)
	if !ok {
		return
	}
	metrics.UpdatesTotal.WithLabelValues(ev.kind()).Inc()

	if upd.CallbackQuery != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(upd.CallbackQuery.ID, "")); err != nil {
			b.log.Error("answer callback failed", "err", err)
		}
	}

	b.sessions.Update(ev.UserID, func(sess dialog.Session) dialog.Session {
		next, replies := b.router.Route(ctx, ev, sess)
		for _, rep := range replies {
			b.send(chatID, rep)
		}
		return next
	})
}

func eventFromUpdate(upd tgbotapi.Update) (Event, int64, bool) {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		msg := upd.Message
		return Event{
			UserID:  msg.From.ID,
			Command: msg.Command(),
			Text:    msg.Text,
		}, msg.Chat.ID, true
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		cb := upd.CallbackQuery
		chatID := cb.From.ID
		if cb.Message != nil {
			chatID = cb.Message.Chat.ID
		}
		return Event{UserID: cb.From.ID, Callback: cb.Data}, chatID, true
	}
	return Event{}, 0, false
}

func (b *Bot) send(chatID int64, rep Reply) {
	if rep.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  rep.Document.Name,
			Bytes: rep.Document.Data,
		})
		doc.Caption = rep.Text
		if _, err := b.api.Send(doc); err != nil {
			b.log.Error("send document failed", "err", err)
		}
		return
	}

	m := tgbotapi.NewMessage(chatID, rep.Text)
	if rep.Keyboard != nil {
		m.ReplyMarkup = *rep.Keyboard
	}
	if _, err := b.api.Send(m); err != nil {
		b.log.Error("send failed", "err", err)
	}
}
