package dto

import (
	"time"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// OptionResponse представляет вариант ответа в формате для клиента
type OptionResponse struct {
	LabelSecondPerson string `json:"label_second_person"`
	LabelThirdPerson  string `json:"label_third_person"`
	Side              string `json:"side"`
	Emoji             string `json:"emoji,omitempty"`
}

// QuestionResponse представляет вопрос пака в формате для клиента
type QuestionResponse struct {
	ID                uint             `json:"id"`
	QuizID            uint             `json:"quiz_id"`
	LabelSecondPerson string           `json:"label_second_person"`
	LabelThirdPerson  string           `json:"label_third_person"`
	Options           []OptionResponse `json:"options"`
}

// ResultLabelResponse представляет подпись итогового результата пака
type ResultLabelResponse struct {
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

// QuizResponse представляет пак в формате для клиента
type QuizResponse struct {
	ID                   uint                  `json:"id"`
	Name                 string                `json:"name"`
	LeftLabel            string                `json:"left_label"`
	RightLabel           string                `json:"right_label"`
	SubtitleSecondPerson string                `json:"subtitle_second_person"`
	SubtitleThirdPerson  string                `json:"subtitle_third_person"`
	ResultLabels         []ResultLabelResponse `json:"result_labels,omitempty"`
	QuestionCount        int                   `json:"question_count"`
	Questions            []QuestionResponse    `json:"questions,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	options := make([]OptionResponse, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, OptionResponse{
			LabelSecondPerson: opt.LabelSecondPerson,
			LabelThirdPerson:  opt.LabelThirdPerson,
			Side:              opt.Side,
			Emoji:             opt.Emoji,
		})
	}
	return QuestionResponse{
		ID:                q.ID,
		QuizID:            q.QuizID,
		LabelSecondPerson: q.LabelSecondPerson,
		LabelThirdPerson:  q.LabelThirdPerson,
		Options:           options,
	}
}

// NewQuizResponse создает DTO для пака
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	labels := make([]ResultLabelResponse, 0, len(quiz.ResultLabels))
	for _, l := range quiz.ResultLabels {
		labels = append(labels, ResultLabelResponse{Label: l.Label, Emoji: l.Emoji})
	}

	resp := &QuizResponse{
		ID:                   quiz.ID,
		Name:                 quiz.Name,
		LeftLabel:            quiz.LeftLabel,
		RightLabel:           quiz.RightLabel,
		SubtitleSecondPerson: quiz.SubtitleSecondPerson,
		SubtitleThirdPerson:  quiz.SubtitleThirdPerson,
		ResultLabels:         labels,
		QuestionCount:        len(quiz.Questions),
		CreatedAt:            quiz.CreatedAt,
	}
	if includeQuestions {
		resp.Questions = make([]QuestionResponse, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			resp.Questions = append(resp.Questions, NewQuestionResponse(&quiz.Questions[i]))
		}
	}
	return resp
}

// CreateOptionRequest - вариант ответа в запросе создания пака
type CreateOptionRequest struct {
	LabelSecondPerson string `json:"label_second_person" binding:"required"`
	LabelThirdPerson  string `json:"label_third_person" binding:"required"`
	Side              string `json:"side" binding:"required"`
	Emoji             string `json:"emoji"`
}

// CreateQuestionRequest - вопрос в запросе создания пака
type CreateQuestionRequest struct {
	LabelSecondPerson string                `json:"label_second_person" binding:"required"`
	LabelThirdPerson  string                `json:"label_third_person" binding:"required"`
	Options           []CreateOptionRequest `json:"options" binding:"required,min=2"`
}

// ResultLabelRequest - подпись результата в запросе создания пака
type ResultLabelRequest struct {
	Label string `json:"label" binding:"required"`
	Emoji string `json:"emoji"`
}

// CreateQuizRequest - запрос создания пака с вопросами
type CreateQuizRequest struct {
	Name                 string                  `json:"name" binding:"required"`
	LeftLabel            string                  `json:"left_label"`
	RightLabel           string                  `json:"right_label"`
	SubtitleSecondPerson string                  `json:"subtitle_second_person"`
	SubtitleThirdPerson  string                  `json:"subtitle_third_person"`
	ResultLabels         []ResultLabelRequest    `json:"result_labels"`
	Questions            []CreateQuestionRequest `json:"questions" binding:"required,min=1"`
}

// UpdateQuizRequest - запрос частичного обновления метаданных пака.
// Отсутствующие поля не меняются.
type UpdateQuizRequest struct {
	Name                 *string               `json:"name"`
	LeftLabel            *string               `json:"left_label"`
	RightLabel           *string               `json:"right_label"`
	SubtitleSecondPerson *string               `json:"subtitle_second_person"`
	SubtitleThirdPerson  *string               `json:"subtitle_third_person"`
	ResultLabels         *[]ResultLabelRequest `json:"result_labels"`
}

// ToEntities преобразует запрос в сущности пака и вопросов
func (r *CreateQuizRequest) ToEntities() (*entity.Quiz, []entity.Question) {
	labels := make(entity.ResultLabelArray, 0, len(r.ResultLabels))
	for _, l := range r.ResultLabels {
		labels = append(labels, entity.ResultLabel{Label: l.Label, Emoji: l.Emoji})
	}
	quiz := &entity.Quiz{
		Name:                 r.Name,
		LeftLabel:            r.LeftLabel,
		RightLabel:           r.RightLabel,
		SubtitleSecondPerson: r.SubtitleSecondPerson,
		SubtitleThirdPerson:  r.SubtitleThirdPerson,
		ResultLabels:         labels,
	}

	questions := make([]entity.Question, 0, len(r.Questions))
	for _, q := range r.Questions {
		options := make(entity.OptionArray, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, entity.Option{
				LabelSecondPerson: opt.LabelSecondPerson,
				LabelThirdPerson:  opt.LabelThirdPerson,
				Side:              opt.Side,
				Emoji:             opt.Emoji,
			})
		}
		questions = append(questions, entity.Question{
			LabelSecondPerson: q.LabelSecondPerson,
			LabelThirdPerson:  q.LabelThirdPerson,
			Options:           options,
		})
	}
	return quiz, questions
}
