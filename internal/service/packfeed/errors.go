package packfeed

import "fmt"

// UnknownQuizError возникает, когда вопрос ссылается на пак,
// которого нет в переданном каталоге.
type UnknownQuizError struct {
	QuizID uint
}

func (e *UnknownQuizError) Error() string {
	return fmt.Sprintf("quiz %d is referenced by answers but missing from catalog", e.QuizID)
}

// UnknownQuestionError возникает, когда ответ ссылается на вопрос,
// которого нет в переданном каталоге. Молча считать такой пак
// "тривиально завершённым" нельзя, поэтому это ошибка, а не пропуск.
type UnknownQuestionError struct {
	QuestionID uint
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %d is referenced by answers but missing from catalog", e.QuestionID)
}
