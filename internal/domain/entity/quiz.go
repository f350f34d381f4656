package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ResultLabel описывает подпись итогового результата пака
// (какой "полюс" шкалы лево/право получился у отвечавшего)
type ResultLabel struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// ResultLabelArray - пользовательский тип для работы с JSONB
type ResultLabelArray []ResultLabel

// Scan реализует интерфейс sql.Scanner для ResultLabelArray
// Используется GORM для чтения JSONB данных из базы
func (a *ResultLabelArray) Scan(value interface{}) error {
	if value == nil {
		*a = ResultLabelArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = ResultLabelArray{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для ResultLabelArray
// Используется GORM для записи ResultLabelArray в JSONB в базе
func (a ResultLabelArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(a)
}

// Quiz представляет пак вопросов ("quiz pack")
type Quiz struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`
	Name                 string           `gorm:"size:100;not null" json:"name"`
	LeftLabel            string           `gorm:"size:100;not null" json:"left_label"`
	RightLabel           string           `gorm:"size:100;not null" json:"right_label"`
	SubtitleSecondPerson string           `gorm:"size:255;not null;default:''" json:"subtitle_second_person"`
	SubtitleThirdPerson  string           `gorm:"size:255;not null;default:''" json:"subtitle_third_person"`
	ResultLabels         ResultLabelArray `gorm:"type:jsonb;not null;default:'[]'" json:"result_labels"`
	Questions            []Question       `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
