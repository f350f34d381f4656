package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Все кешируемые значения - структуры, поэтому интерфейс работает
// только с JSON-представлением.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
