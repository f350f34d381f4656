package packfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// testCatalog возвращает каталог для тестов:
// пак 1 с вопросами 1, 2 и пак 2 с вопросом 3.
func testCatalog() ([]entity.Quiz, []entity.Question) {
	quizzes := []entity.Quiz{
		{ID: 1, Name: "Сборы в дорогу"},
		{ID: 2, Name: "Утро или вечер"},
	}
	questions := []entity.Question{
		{ID: 1, QuizID: 1},
		{ID: 2, QuizID: 1},
		{ID: 3, QuizID: 2},
	}
	return quizzes, questions
}

func TestBuildFeed_SelfCompleteWithoutFriends(t *testing.T) {
	// Arrange: пользователь 5 ответил на оба вопроса пака 1 о себе,
	// ответов друзей нет
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1, OptionIndex: 0},
			{ID: 2, UserID: 5, QuestionID: 2, OptionIndex: 1},
		},
	}

	// Act
	feed, err := BuildFeed(snap, 5)

	// Assert: пак о себе без ответивших друзей в ленту не попадает
	require.NoError(t, err)
	assert.Empty(t, feed.YourQuizzes, "Пак без ответивших друзей не должен попадать в YourQuizzes")
	assert.Empty(t, feed.TheirQuizzes)
}

func TestBuildFeed_FriendCompletesReciprocal(t *testing.T) {
	// Arrange: пользователь 5 прошёл пак 1 о себе,
	// пользователь 9 прошёл пак 1 о пользователе 5
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 5, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
		},
	}

	// Act: лента для субъекта
	feedFor5, err := BuildFeed(snap, 5)
	require.NoError(t, err)

	// Assert
	require.Len(t, feedFor5.YourQuizzes, 1)
	assert.Equal(t, uint(1), feedFor5.YourQuizzes[0].Quiz.ID)
	assert.Equal(t, []uint{9}, feedFor5.YourQuizzes[0].FriendIDs)
	assert.Equal(t, uint(5), feedFor5.YourQuizzes[0].SelfID)
	assert.Empty(t, feedFor5.TheirQuizzes, "Пользователь 5 не отвечал о друзьях")

	// Act: лента для отвечавшего друга
	feedFor9, err := BuildFeed(snap, 9)
	require.NoError(t, err)

	// Assert
	assert.Empty(t, feedFor9.YourQuizzes)
	require.Len(t, feedFor9.TheirQuizzes, 1)
	assert.Equal(t, uint(1), feedFor9.TheirQuizzes[0].Quiz.ID)
	assert.Equal(t, []uint{9}, feedFor9.TheirQuizzes[0].FriendIDs)
	assert.Equal(t, uint(5), feedFor9.TheirQuizzes[0].SelfID)
}

func TestBuildFeed_PartialFriendAnswersNotCompleted(t *testing.T) {
	// Arrange: пользователь 9 ответил только на 1 из 2 вопросов пака 1
	// о пользователе 5
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 5, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
		},
	}

	// Act & Assert: незавершённый пак друга не разблокирует ленту
	feedFor5, err := BuildFeed(snap, 5)
	require.NoError(t, err)
	assert.Empty(t, feedFor5.YourQuizzes)

	feedFor9, err := BuildFeed(snap, 9)
	require.NoError(t, err)
	assert.Empty(t, feedFor9.TheirQuizzes)
}

func TestBuildFeed_TheirQuizzesWithoutReciprocation(t *testing.T) {
	// Arrange: пользователь 9 прошёл пак 2 о пользователе 5,
	// но пользователь 5 пак 2 о себе не проходил
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 3},
		},
	}

	// Act
	feedFor9, err := BuildFeed(snap, 9)

	// Assert: TheirQuizzes не требует взаимности субъекта
	require.NoError(t, err)
	require.Len(t, feedFor9.TheirQuizzes, 1)
	assert.Equal(t, uint(2), feedFor9.TheirQuizzes[0].Quiz.ID)
	assert.Equal(t, uint(5), feedFor9.TheirQuizzes[0].SelfID)
}

func TestBuildFeed_CountsNeverPooledAcrossUsers(t *testing.T) {
	// Arrange: два пользователя ответили по одному вопросу пака 1.
	// В сумме ответов хватило бы на пак, но счётчики
	// разных пользователей не складываются.
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 7, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
		},
	}

	// Act
	feedFor5, err := BuildFeed(snap, 5)

	// Assert: пак 1 о себе у пользователя 5 не завершён (1 из 2)
	require.NoError(t, err)
	assert.Empty(t, feedFor5.YourQuizzes, "Счётчики разных пользователей не должны объединяться")
}

func TestBuildFeed_MultipleFriends(t *testing.T) {
	// Arrange: пак 1 о пользователе 5 прошли двое друзей
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 5, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
			{ID: 3, FriendID: 11, SelfID: 5, QuestionID: 1},
			{ID: 4, FriendID: 11, SelfID: 5, QuestionID: 2},
		},
	}

	// Act
	feedFor5, err := BuildFeed(snap, 5)

	// Assert: оба друга в FriendIDs в порядке первого появления
	require.NoError(t, err)
	require.Len(t, feedFor5.YourQuizzes, 1)
	assert.Equal(t, []uint{9, 11}, feedFor5.YourQuizzes[0].FriendIDs)
}

func TestBuildFeed_Idempotent(t *testing.T) {
	// Arrange
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 5, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
		},
	}

	// Act: повторный запуск на неизменном снимке
	first, err := BuildFeed(snap, 5)
	require.NoError(t, err)
	second, err := BuildFeed(snap, 5)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second, "Повторный расчёт на одном снимке должен давать идентичный результат")
}

func TestBuildFeed_CompletionMonotone(t *testing.T) {
	// Arrange: завершённый пак
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 1},
			{ID: 2, UserID: 5, QuestionID: 2},
		},
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
		},
	}
	before, err := BuildFeed(snap, 5)
	require.NoError(t, err)
	require.Len(t, before.YourQuizzes, 1)

	// Act: дополнительный ответ той же тройки (напр. после пересоздания вопроса)
	snap.FriendAnswers = append(snap.FriendAnswers, entity.FriendAnswer{
		ID: 3, FriendID: 9, SelfID: 5, QuestionID: 2,
	})
	after, err := BuildFeed(snap, 5)

	// Assert: достигнутая завершённость не теряется
	require.NoError(t, err)
	assert.Len(t, after.YourQuizzes, 1, "Добавление ответов не должно отменять завершённость")
}

func TestBuildFeed_UnknownQuestionRejected(t *testing.T) {
	// Arrange: ответ ссылается на вопрос, которого нет в каталоге
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		SelfAnswers: []entity.SelfAnswer{
			{ID: 1, UserID: 5, QuestionID: 777},
		},
	}

	// Act
	feed, err := BuildFeed(snap, 5)

	// Assert: ошибка данных, а не тривиально завершённый пак
	require.Error(t, err)
	assert.Nil(t, feed)
	var unknownQuestion *UnknownQuestionError
	require.ErrorAs(t, err, &unknownQuestion)
	assert.Equal(t, uint(777), unknownQuestion.QuestionID)
}

func TestBuildFeed_UnknownQuizRejected(t *testing.T) {
	// Arrange: вопрос 9 принадлежит паку 99, которого нет в каталоге паков
	_, questions := testCatalog()
	questions = append(questions, entity.Question{ID: 9, QuizID: 99})
	snap := Snapshot{
		Quizzes:   []entity.Quiz{{ID: 1, Name: "Сборы в дорогу"}},
		Questions: questions,
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 9},
		},
	}

	// Act
	feed, err := BuildFeed(snap, 9)

	// Assert
	require.Error(t, err)
	assert.Nil(t, feed)
	var unknownQuiz *UnknownQuizError
	require.ErrorAs(t, err, &unknownQuiz)
	assert.Equal(t, uint(99), unknownQuiz.QuizID)
}

func TestBuildFeed_TheirQuizzesExactlyOncePerSubject(t *testing.T) {
	// Arrange: пользователь 9 прошёл пак 1 о двух разных друзьях
	quizzes, questions := testCatalog()
	snap := Snapshot{
		Quizzes:   quizzes,
		Questions: questions,
		FriendAnswers: []entity.FriendAnswer{
			{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
			{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
			{ID: 3, FriendID: 9, SelfID: 7, QuestionID: 1},
			{ID: 4, FriendID: 9, SelfID: 7, QuestionID: 2},
		},
	}

	// Act
	feedFor9, err := BuildFeed(snap, 9)

	// Assert: по одному элементу на каждого субъекта
	require.NoError(t, err)
	require.Len(t, feedFor9.TheirQuizzes, 2)
	assert.Equal(t, uint(5), feedFor9.TheirQuizzes[0].SelfID)
	assert.Equal(t, uint(7), feedFor9.TheirQuizzes[1].SelfID)
}
