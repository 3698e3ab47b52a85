package shops

import "errors"

// Shop — зарегистрированный магазин продавца на Wildberries.
type Shop struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

var (
	ErrDuplicate = errors.New("shop already exists")
	ErrNotFound  = errors.New("shop not found")
)
