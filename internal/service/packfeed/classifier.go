// Package packfeed содержит чистую логику классификации завершённости паков:
// по сырым записям ответов выводится, какие паки пользователь прошёл о себе
// и о друзьях, и когда результаты разблокированы.
//
// Все функции пакета детерминированы и не имеют побочных эффектов: лента
// пересчитывается с нуля по полному текущему снимку данных при каждом вызове.
// quizID ответа всегда выводится через QuestionID -> Question.QuizID;
// денормализованным полям на записях ответов доверять нельзя.
package packfeed

import (
	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// Snapshot - полный снимок данных, по которому строится лента.
// Каталог (Quizzes, Questions) должен быть полным: ответ, ссылающийся
// на неизвестный вопрос или пак, считается ошибкой данных.
type Snapshot struct {
	Quizzes       []entity.Quiz
	Questions     []entity.Question
	SelfAnswers   []entity.SelfAnswer
	FriendAnswers []entity.FriendAnswer
}

// QuizItem - элемент ленты: пак плюс участники его прохождения
type QuizItem struct {
	Quiz      *entity.Quiz `json:"quiz"`
	FriendIDs []uint       `json:"friend_ids"`
	SelfID    uint         `json:"self_id"`
}

// FeedLists - результат классификации для одного пользователя
type FeedLists struct {
	// YourQuizzes - паки, которые пользователь прошёл о себе И которые
	// о нём прошёл хотя бы один друг. Пак без ответивших друзей
	// в список не попадает.
	YourQuizzes []QuizItem `json:"your_quizzes"`

	// TheirQuizzes - паки, которые пользователь прошёл о друге.
	// Попадают в список независимо от того, прошёл ли друг
	// свой пак о себе.
	TheirQuizzes []QuizItem `json:"their_quizzes"`
}

// SelfCompletion - завершённый пак о себе: составной ключ (пак, пользователь)
type SelfCompletion struct {
	QuizID uint
	UserID uint
}

// PairCompletion - завершённый пак о друге:
// составной ключ (пак, субъект, отвечавший)
type PairCompletion struct {
	QuizID   uint
	SelfID   uint
	FriendID uint
}

// questionIndex - индекс каталога вопросов
type questionIndex struct {
	quizIDByQuestion map[uint]uint
	questionCount    map[uint]int
}

// newQuestionIndex строит индекс каталога вопросов
func newQuestionIndex(questions []entity.Question) *questionIndex {
	ix := &questionIndex{
		quizIDByQuestion: make(map[uint]uint, len(questions)),
		questionCount:    make(map[uint]int),
	}
	for _, q := range questions {
		ix.quizIDByQuestion[q.ID] = q.QuizID
		ix.questionCount[q.QuizID]++
	}
	return ix
}

// resolveQuizID выводит пак по вопросу ответа.
// Неизвестный вопрос - ошибка данных: молча вернуть ноль нельзя,
// иначе пак с "потерянными" вопросами выглядел бы тривиально завершённым.
func (ix *questionIndex) resolveQuizID(questionID uint) (uint, error) {
	quizID, ok := ix.quizIDByQuestion[questionID]
	if !ok {
		return 0, &UnknownQuestionError{QuestionID: questionID}
	}
	return quizID, nil
}

// required возвращает порог завершённости пака (количество его вопросов).
// Пак без единого вопроса в каталоге неизвестен вызывающему коду.
func (ix *questionIndex) required(quizID uint) (int, error) {
	n := ix.questionCount[quizID]
	if n == 0 {
		return 0, &UnknownQuizError{QuizID: quizID}
	}
	return n, nil
}

// CompletedSelfPacks возвращает завершённые паки о себе по всем пользователям.
//
// Пак о себе считается завершённым, когда количество ответов пользователя
// на вопросы именно этого пака не меньше количества вопросов пака.
// Счётчики разных пользователей и разных паков никогда не смешиваются.
func CompletedSelfPacks(questions []entity.Question, answers []entity.SelfAnswer) ([]SelfCompletion, error) {
	ix := newQuestionIndex(questions)

	keys := make([]SelfCompletion, 0, len(answers))
	for _, a := range answers {
		quizID, err := ix.resolveQuizID(a.QuestionID)
		if err != nil {
			return nil, err
		}
		keys = append(keys, SelfCompletion{QuizID: quizID, UserID: a.UserID})
	}

	// Размер группы по точному ключу не меньше количества вопросов пака
	completed := make([]SelfCompletion, 0)
	for _, group := range Collect(keys, func(k SelfCompletion) SelfCompletion { return k }) {
		if len(group) >= ix.questionCount[group[0].QuizID] {
			completed = append(completed, group[0])
		}
	}
	return completed, nil
}

// CompletedFriendPacks возвращает завершённые паки о друзьях по всем парам.
// Симметрично CompletedSelfPacks, но по точной тройке (пак, субъект, отвечавший).
func CompletedFriendPacks(questions []entity.Question, answers []entity.FriendAnswer) ([]PairCompletion, error) {
	ix := newQuestionIndex(questions)

	keys := make([]PairCompletion, 0, len(answers))
	for _, a := range answers {
		quizID, err := ix.resolveQuizID(a.QuestionID)
		if err != nil {
			return nil, err
		}
		keys = append(keys, PairCompletion{QuizID: quizID, SelfID: a.SelfID, FriendID: a.FriendID})
	}

	completed := make([]PairCompletion, 0)
	for _, group := range Collect(keys, func(k PairCompletion) PairCompletion { return k }) {
		if len(group) >= ix.questionCount[group[0].QuizID] {
			completed = append(completed, group[0])
		}
	}
	return completed, nil
}

// BuildFeed классифицирует снимок данных для пользователя userID
func BuildFeed(snap Snapshot, userID uint) (*FeedLists, error) {
	quizByID := make(map[uint]*entity.Quiz, len(snap.Quizzes))
	for i := range snap.Quizzes {
		quizByID[snap.Quizzes[i].ID] = &snap.Quizzes[i]
	}

	completedSelf, err := CompletedSelfPacks(snap.Questions, snap.SelfAnswers)
	if err != nil {
		return nil, err
	}
	completedPairs, err := CompletedFriendPacks(snap.Questions, snap.FriendAnswers)
	if err != nil {
		return nil, err
	}

	// Друзья, завершившие пак о пользователе, сгруппированные по паку
	friendsByQuiz := make(map[uint][]uint)
	for _, p := range completedPairs {
		if p.SelfID == userID {
			friendsByQuiz[p.QuizID] = append(friendsByQuiz[p.QuizID], p.FriendID)
		}
	}

	feed := &FeedLists{
		YourQuizzes:  make([]QuizItem, 0),
		TheirQuizzes: make([]QuizItem, 0),
	}

	// Паки пользователя о себе: в ленту попадают только те,
	// о которых ответил хотя бы один друг
	for _, k := range completedSelf {
		if k.UserID != userID {
			continue
		}
		friendIDs := friendsByQuiz[k.QuizID]
		if len(friendIDs) == 0 {
			continue
		}
		quiz, ok := quizByID[k.QuizID]
		if !ok {
			return nil, &UnknownQuizError{QuizID: k.QuizID}
		}
		feed.YourQuizzes = append(feed.YourQuizzes, QuizItem{
			Quiz:      quiz,
			FriendIDs: friendIDs,
			SelfID:    userID,
		})
	}

	// Паки пользователя о друзьях: попадают в ленту всегда,
	// взаимность субъекта не требуется
	for _, p := range completedPairs {
		if p.FriendID != userID {
			continue
		}
		quiz, ok := quizByID[p.QuizID]
		if !ok {
			return nil, &UnknownQuizError{QuizID: p.QuizID}
		}
		feed.TheirQuizzes = append(feed.TheirQuizzes, QuizItem{
			Quiz:      quiz,
			FriendIDs: []uint{userID},
			SelfID:    p.SelfID,
		})
	}

	return feed, nil
}
