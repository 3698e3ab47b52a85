package dialog

type State string

const (
	StateIdle State = "idle"

	// Регистрация/удаление магазина
	StateAwaitShopName State = "await_shop_name" // ввод названия (добавление и удаление)
	StateAwaitAPIKey   State = "await_api_key"   // ввод API-ключа

	// Отчёт о продажах
	StateAwaitShopChoice  State = "await_shop_choice"  // выбор магазина кнопкой
	StateAwaitPeriod      State = "await_period"       // «сегодня»/«вчера»/произвольный
	StateAwaitCustomRange State = "await_custom_range" // явные даты периода
)

// Flow различает сценарии, которые делят состояние ввода названия.
type Flow string

const (
	FlowAddShop    Flow = "add_shop"
	FlowDeleteShop Flow = "delete_shop"
)

// AddShopData — данные, собранные сценарием добавления магазина.
type AddShopData struct {
	Name string
}

// ReportData — выбранный магазин для отчёта.
type ReportData struct {
	ShopName string
	APIKey   string
}

// Session — позиция одного пользователя в диалоге и накопленный ввод.
// Активен ровно один сценарий; терминальный переход возвращает нулевую
// сессию, чтобы данные одного сценария не протекали в следующий.
type Session struct {
	State  State
	Flow   Flow
	Add    AddShopData
	Report ReportData
}

// Reset возвращает сессию в Idle и сбрасывает накопленные поля.
func (s Session) Reset() Session {
	return Session{State: StateIdle}
}
