package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы сторон варианта ответа.
// Сторона определяет, к какому полюсу шкалы пака (лево/право) тянет вариант.
const (
	OptionSideLeft    = "left"
	OptionSideRight   = "right"
	OptionSideNeither = "neither"
	OptionSideNew     = "new"
)

// Option представляет вариант ответа на вопрос.
// Порядок вариантов в массиве значим: OptionIndex в ответах
// ссылается на позицию в этом массиве.
type Option struct {
	LabelSecondPerson string `json:"label_second_person"`
	LabelThirdPerson  string `json:"label_third_person"`
	Side              string `json:"side"`
	Emoji             string `json:"emoji"`
}

// OptionArray - пользовательский тип для работы с JSONB
type OptionArray []Option

// Scan реализует интерфейс sql.Scanner для OptionArray
// Используется GORM для чтения JSONB данных из базы
func (o *OptionArray) Scan(value interface{}) error {
	if value == nil {
		*o = OptionArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = OptionArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для OptionArray
// Используется GORM для записи OptionArray в JSONB в базе
func (o OptionArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос пака.
// Формулировка хранится в двух лицах: "ты" (вопрос о себе)
// и "он/она" (вопрос о друге).
type Question struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	QuizID            uint        `gorm:"not null;index" json:"quiz_id"`
	LabelSecondPerson string      `gorm:"size:500;not null" json:"label_second_person"`
	LabelThirdPerson  string      `gorm:"size:500;not null" json:"label_third_person"`
	Options           OptionArray `gorm:"type:jsonb;not null" json:"options"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(optionIndex int) bool {
	return optionIndex >= 0 && optionIndex < len(q.Options)
}

// OptionSide возвращает сторону выбранного варианта.
// Для невалидного индекса возвращает OptionSideNeither.
func (q *Question) OptionSide(optionIndex int) string {
	if !q.IsValidOption(optionIndex) {
		return OptionSideNeither
	}
	return q.Options[optionIndex].Side
}
