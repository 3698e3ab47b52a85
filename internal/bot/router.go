package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/wb-sales-bot/internal/dialog"
	"github.com/Spok95/wb-sales-bot/internal/domain/shops"
	"github.com/Spok95/wb-sales-bot/internal/infra/metrics"
	"github.com/Spok95/wb-sales-bot/internal/report"
	"github.com/Spok95/wb-sales-bot/internal/wb"
)

// Event — одно входящее событие чата, приведённое к общему виду.
type Event struct {
	UserID   int64
	Command  string // команда без слэша, пусто для обычного текста
	Text     string
	Callback string // данные inline-кнопки, пусто для сообщений
}

func (e Event) kind() string {
	switch {
	case e.Command != "":
		return "command"
	case e.Callback != "":
		return "callback"
	default:
		return "text"
	}
}

// Reply — ответ пользователю: текст и, опционально, клавиатура или документ.
type Reply struct {
	Text     string
	Keyboard *tgbotapi.InlineKeyboardMarkup
	Document *Document
}

type Document struct {
	Name string
	Data []byte
}

// ShopRegistry — операции реестра, нужные диалогам.
type ShopRegistry interface {
	Add(name, apiKey string) error
	Remove(name string) error
	List() []shops.Shop
	FindByName(name string) (shops.Shop, error)
}

// StatsAPI — внешние вызовы Wildberries.
type StatsAPI interface {
	ValidateKey(ctx context.Context, apiKey string) error
	FetchReport(ctx context.Context, apiKey string, from, to time.Time) ([]wb.SalesRecord, error)
}

// Router переводит событие и текущую сессию пользователя в следующую
// сессию и ответы. Сам состояния не хранит и обработчиков на лету не
// регистрирует: весь контекст диалога живёт в Session.
type Router struct {
	registry ShopRegistry
	api      StatsAPI
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewRouter(registry ShopRegistry, api StatsAPI, log *slog.Logger, loc *time.Location) *Router {
	return &Router{registry: registry, api: api, log: log, loc: loc, now: time.Now}
}

func (r *Router) Route(ctx context.Context, ev Event, sess dialog.Session) (dialog.Session, []Reply) {
	switch {
	case ev.Command != "":
		return r.routeCommand(ev, sess)
	case ev.Callback != "":
		return r.routeCallback(ctx, ev, sess)
	default:
		return r.routeText(ctx, ev, sess)
	}
}

// routeCommand: любая команда сбрасывает незавершённый сценарий —
// вложенных диалогов нет.
func (r *Router) routeCommand(ev Event, sess dialog.Session) (dialog.Session, []Reply) {
	sess = sess.Reset()

	switch ev.Command {
	case "start":
		return sess, []Reply{{Text: "Привет! Я бот для аналитики продаж на Wildberries. Используйте /help для просмотра доступных команд."}}

	case "help":
		return sess, []Reply{{Text: "/addshop - Добавить магазин\n" +
			"/delshop - Удалить магазин\n" +
			"/shops - Список магазинов\n" +
			"/report - Получить отчет о продажах\n" +
			"/cancel - Отменить текущее действие\n"}}

	case "addshop":
		sess.State = dialog.StateAwaitShopName
		sess.Flow = dialog.FlowAddShop
		return sess, []Reply{{Text: "Введите имя вашего магазина:", Keyboard: cancelKeyboard()}}

	case "delshop":
		if len(r.registry.List()) == 0 {
			return sess, []Reply{{Text: "Нет сохраненных магазинов."}}
		}
		sess.State = dialog.StateAwaitShopName
		sess.Flow = dialog.FlowDeleteShop
		return sess, []Reply{{Text: "Введите имя магазина для удаления:", Keyboard: cancelKeyboard()}}

	case "shops":
		items := r.registry.List()
		if len(items) == 0 {
			return sess, []Reply{{Text: "Нет сохраненных магазинов."}}
		}
		names := make([]string, 0, len(items))
		for _, s := range items {
			names = append(names, s.Name)
		}
		return sess, []Reply{{Text: "Список магазинов:\n" + strings.Join(names, "\n")}}

	case "report":
		items := r.registry.List()
		if len(items) == 0 {
			return sess, []Reply{{Text: "У вас нет добавленных магазинов."}}
		}
		sess.State = dialog.StateAwaitShopChoice
		return sess, []Reply{{Text: "Выберите магазин для отчета:", Keyboard: shopChoiceKeyboard(items)}}

	case "cancel":
		return sess, []Reply{{Text: "Действие отменено."}}

	default:
		return sess, []Reply{{Text: "Не знаю такую команду. Наберите /help"}}
	}
}

func (r *Router) routeText(ctx context.Context, ev Event, sess dialog.Session) (dialog.Session, []Reply) {
	text := strings.TrimSpace(ev.Text)

	switch sess.State {
	case dialog.StateAwaitShopName:
		if text == "" {
			return sess, []Reply{{Text: "Название не может быть пустым. Введите ещё раз.", Keyboard: cancelKeyboard()}}
		}
		if sess.Flow == dialog.FlowDeleteShop {
			return r.deleteShop(sess, text)
		}
		sess.State = dialog.StateAwaitAPIKey
		sess.Add.Name = text
		return sess, []Reply{{Text: "Введите API ключ:", Keyboard: cancelKeyboard()}}

	case dialog.StateAwaitAPIKey:
		return r.registerShop(ctx, sess, text)

	case dialog.StateAwaitPeriod:
		if p, ok := report.ResolveAlias(text, r.now().In(r.loc)); ok {
			data := sess.Report
			return sess.Reset(), r.runReport(ctx, data, p)
		}
		sess.State = dialog.StateAwaitCustomRange
		return sess, []Reply{{Text: "Введите даты начала и окончания периода (в формате: YYYY-MM-DD,YYYY-MM-DD)", Keyboard: cancelKeyboard()}}

	case dialog.StateAwaitCustomRange:
		p, err := report.ParseRange(text)
		if err != nil {
			return sess, []Reply{{Text: "Не удалось разобрать период. Введите две даты в формате YYYY-MM-DD,YYYY-MM-DD, начало не позже конца.", Keyboard: cancelKeyboard()}}
		}
		data := sess.Report
		return sess.Reset(), r.runReport(ctx, data, p)

	case dialog.StateAwaitShopChoice:
		return sess, []Reply{{Text: "Выберите магазин кнопкой выше или наберите /cancel."}}

	default:
		return sess, []Reply{{Text: "Не понимаю. Наберите /help"}}
	}
}

func (r *Router) routeCallback(ctx context.Context, ev Event, sess dialog.Session) (dialog.Session, []Reply) {
	switch {
	case ev.Callback == "nav:cancel":
		return sess.Reset(), []Reply{{Text: "Действие отменено."}}

	case strings.HasPrefix(ev.Callback, "report_"):
		idx, err := strconv.Atoi(strings.TrimPrefix(ev.Callback, "report_"))
		if err != nil {
			return sess.Reset(), []Reply{{Text: "Магазин не найден."}}
		}
		items := r.registry.List()
		if idx < 0 || idx >= len(items) {
			// Кнопка из устаревшей клавиатуры
			return sess.Reset(), []Reply{{Text: "Магазин не найден."}}
		}
		sess = sess.Reset()
		sess.State = dialog.StateAwaitPeriod
		sess.Report = dialog.ReportData{ShopName: items[idx].Name, APIKey: items[idx].APIKey}
		return sess, []Reply{{
			Text:     "Введите период для отчета (например, 'сегодня', 'вчера' или произвольный период)",
			Keyboard: cancelKeyboard(),
		}}

	case strings.HasPrefix(ev.Callback, "xlsx:"):
		return sess, r.exportExcel(ctx, ev.Callback)

	default:
		return sess, nil
	}
}

func (r *Router) deleteShop(sess dialog.Session, name string) (dialog.Session, []Reply) {
	if err := r.registry.Remove(name); err != nil {
		if errors.Is(err, shops.ErrNotFound) {
			return sess.Reset(), []Reply{{Text: "Магазин не найден."}}
		}
		r.log.Error("remove shop failed", "shop", name, "err", err)
		return sess.Reset(), []Reply{{Text: "Не удалось удалить магазин. Попробуйте позже."}}
	}
	return sess.Reset(), []Reply{{Text: fmt.Sprintf("Магазин '%s' успешно удален.", name)}}
}

func (r *Router) registerShop(ctx context.Context, sess dialog.Session, key string) (dialog.Session, []Reply) {
	if key == "" {
		return sess, []Reply{{Text: "Ключ не может быть пустым. Введите ещё раз.", Keyboard: cancelKeyboard()}}
	}

	if err := r.api.ValidateKey(ctx, key); err != nil {
		switch {
		case errors.Is(err, wb.ErrAuth):
			return sess.Reset(), []Reply{{Text: "Неверный ключ API. Попробуйте снова: /addshop"}}
		default:
			// Сетевой сбой: ключ не виноват, оставляем пользователя на
			// этом же шаге, чтобы он мог просто повторить отправку.
			r.log.Error("validate key failed", "err", err)
			return sess, []Reply{{Text: "Не удалось проверить ключ: проблемы с сетью. Отправьте ключ ещё раз чуть позже.", Keyboard: cancelKeyboard()}}
		}
	}

	name := sess.Add.Name
	if err := r.registry.Add(name, key); err != nil {
		if errors.Is(err, shops.ErrDuplicate) {
			return sess.Reset(), []Reply{{Text: fmt.Sprintf("Магазин с именем '%s' уже существует.", name)}}
		}
		r.log.Error("add shop failed", "shop", name, "err", err)
		return sess.Reset(), []Reply{{Text: "Не удалось сохранить магазин. Попробуйте позже."}}
	}
	return sess.Reset(), []Reply{{Text: fmt.Sprintf("Магазин '%s' успешно добавлен!", name)}}
}

func (r *Router) runReport(ctx context.Context, data dialog.ReportData, p report.Period) []Reply {
	start := time.Now()
	records, err := r.api.FetchReport(ctx, data.APIKey, p.From, p.To)
	if err != nil {
		return []Reply{r.reportFailure(data.ShopName, err)}
	}

	sum, err := report.Summarize(data.ShopName, records)
	if err != nil {
		if errors.Is(err, report.ErrNoSales) {
			metrics.ReportsTotal.WithLabelValues("no_sales").Inc()
			return []Reply{{Text: "За указанный период нет продаж."}}
		}
		metrics.ReportsTotal.WithLabelValues("data_error").Inc()
		r.log.Error("summarize failed", "shop", data.ShopName, "err", err)
		return []Reply{{Text: "Не удалось обработать данные отчета. Попробуйте позже."}}
	}

	metrics.ReportsTotal.WithLabelValues("ok").Inc()
	metrics.ReportDuration.Observe(time.Since(start).Seconds())

	return []Reply{{
		Text:     formatSummary(sum, p),
		Keyboard: excelKeyboard(r.shopIndex(data.ShopName), p),
	}}
}

func (r *Router) reportFailure(shopName string, err error) Reply {
	switch {
	case errors.Is(err, wb.ErrAuth):
		metrics.ReportsTotal.WithLabelValues("auth_error").Inc()
		return Reply{Text: "API не принял ключ магазина. Проверьте ключ: /delshop и /addshop."}
	case errors.Is(err, wb.ErrNetwork):
		metrics.ReportsTotal.WithLabelValues("network_error").Inc()
		return Reply{Text: "Не удалось получить данные. Попробуйте позже."}
	default:
		metrics.ReportsTotal.WithLabelValues("data_error").Inc()
		r.log.Error("fetch report failed", "shop", shopName, "err", err)
		return Reply{Text: "Не удалось получить данные. Попробуйте позже."}
	}
}

// exportExcel повторно выгружает период и отдаёт детализацию файлом.
// Payload: xlsx:<индекс магазина>:<дата с>:<дата по>.
func (r *Router) exportExcel(ctx context.Context, payload string) []Reply {
	parts := strings.Split(payload, ":")
	if len(parts) != 4 {
		return []Reply{{Text: "Не удалось выгрузить отчет."}}
	}
	idx, err := strconv.Atoi(parts[1])
	items := r.registry.List()
	if err != nil || idx < 0 || idx >= len(items) {
		return []Reply{{Text: "Магазин не найден."}}
	}
	from, errFrom := time.Parse(report.DateLayout, parts[2])
	to, errTo := time.Parse(report.DateLayout, parts[3])
	if errFrom != nil || errTo != nil {
		return []Reply{{Text: "Не удалось выгрузить отчет."}}
	}

	shop := items[idx]
	p := report.Period{From: from, To: to}
	records, err := r.api.FetchReport(ctx, shop.APIKey, p.From, p.To)
	if err != nil {
		return []Reply{r.reportFailure(shop.Name, err)}
	}
	sum, err := report.Summarize(shop.Name, records)
	if err != nil {
		return []Reply{{Text: "За указанный период нет продаж."}}
	}

	data, err := report.BuildWorkbook(sum, p, records)
	if err != nil {
		r.log.Error("build workbook failed", "shop", shop.Name, "err", err)
		return []Reply{{Text: "Не удалось сформировать файл отчета."}}
	}

	name := fmt.Sprintf("report_%s_%s.xlsx", p.From.Format("20060102"), p.To.Format("20060102"))
	return []Reply{{
		Text:     fmt.Sprintf("Отчет по магазину %s за %s", shop.Name, p),
		Document: &Document{Name: name, Data: data},
	}}
}

func (r *Router) shopIndex(name string) int {
	for i, s := range r.registry.List() {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func formatSummary(sum report.Summary, p report.Period) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Отчет по магазину %s за %s\n", sum.ShopName, p))
	sb.WriteString(fmt.Sprintf("Общая сумма продаж: %s\n", sum.TotalSales.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Комиссия Wildberries: %s\n", sum.CommissionTotal.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Скидки Wildberries: %s\n", sum.DiscountTotal.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Комиссия эквайринга: %s\n", sum.AcquiringTotal.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Стоимость логистики: %s\n", sum.LogisticsTotal.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Стоимость хранения: %s\n", sum.StorageTotal.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Количество проданных единиц: %d\n", sum.TotalQty))
	sb.WriteString(fmt.Sprintf("Средняя цена продажи: %s\n", sum.AveragePrice.StringFixed(2)))
	return sb.String()
}
