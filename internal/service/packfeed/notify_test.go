package packfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

func TestFriendsAwaitingResults_FriendAlreadyDone(t *testing.T) {
	// Arrange: пользователь 5 закончил пак 1 о себе;
	// пользователь 9 уже прошёл пак 1 о нём, пользователь 11 - только наполовину
	_, questions := testCatalog()
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
		{ID: 2, FriendID: 9, SelfID: 5, QuestionID: 2},
		{ID: 3, FriendID: 11, SelfID: 5, QuestionID: 1},
	}

	// Act
	friendIDs, err := FriendsAwaitingResults(1, 5, questions, friendAnswers)

	// Assert: уведомление только по завершившему другу
	require.NoError(t, err)
	assert.Equal(t, []uint{9}, friendIDs)
}

func TestFriendsAwaitingResults_IgnoresOtherSubjects(t *testing.T) {
	// Arrange: пользователь 9 прошёл пак 1, но о другом пользователе
	_, questions := testCatalog()
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 7, QuestionID: 1},
		{ID: 2, FriendID: 9, SelfID: 7, QuestionID: 2},
	}

	// Act
	friendIDs, err := FriendsAwaitingResults(1, 5, questions, friendAnswers)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, friendIDs, "Ответы о другом субъекте не должны учитываться")
}

func TestFriendsAwaitingResults_UnknownQuiz(t *testing.T) {
	_, questions := testCatalog()

	friendIDs, err := FriendsAwaitingResults(99, 5, questions, nil)

	require.Error(t, err)
	assert.Nil(t, friendIDs)
	var unknownQuiz *UnknownQuizError
	assert.ErrorAs(t, err, &unknownQuiz)
}

func TestReadyAfterFriendAnswer_CompletingAnswerFires(t *testing.T) {
	// Arrange: пак 2 из одного вопроса, пользователь 5 прошёл его о себе,
	// пользователь 9 только что записал единственный требуемый ответ
	_, questions := testCatalog()
	selfAnswers := []entity.SelfAnswer{
		{ID: 1, UserID: 5, QuestionID: 3},
	}
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 3},
	}

	// Act
	ready, err := ReadyAfterFriendAnswer(2, 5, 9, questions, selfAnswers, friendAnswers, nil)

	// Assert: событие выведено ровно для этой тройки
	require.NoError(t, err)
	require.NotNil(t, ready)
	assert.Equal(t, uint(2), ready.QuizID)
	assert.Equal(t, uint(5), ready.SelfID)
	assert.Equal(t, uint(9), ready.FriendID)
}

func TestReadyAfterFriendAnswer_DuplicateSuppressed(t *testing.T) {
	// Arrange: то же состояние, но уведомление для тройки уже существует
	// (повторная доставка события от другого клиента)
	_, questions := testCatalog()
	selfAnswers := []entity.SelfAnswer{
		{ID: 1, UserID: 5, QuestionID: 3},
	}
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 3},
	}
	existing := []entity.ResultNotification{
		{ID: 1, QuizID: 2, SelfID: 5, FriendID: 9},
	}

	// Act
	ready, err := ReadyAfterFriendAnswer(2, 5, 9, questions, selfAnswers, friendAnswers, existing)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, ready, "Повторная подача не должна выводить событие")
}

func TestReadyAfterFriendAnswer_SubjectNotDone(t *testing.T) {
	// Arrange: друг завершил пак, но субъект пак о себе не проходил
	_, questions := testCatalog()
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 3},
	}

	// Act
	ready, err := ReadyAfterFriendAnswer(2, 5, 9, questions, nil, friendAnswers, nil)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, ready, "Без завершённого пака субъекта событие не выводится")
}

func TestReadyAfterFriendAnswer_FriendNotDone(t *testing.T) {
	// Arrange: пак 1 из двух вопросов, записан только первый ответ друга
	_, questions := testCatalog()
	selfAnswers := []entity.SelfAnswer{
		{ID: 1, UserID: 5, QuestionID: 1},
		{ID: 2, UserID: 5, QuestionID: 2},
	}
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 1},
	}

	// Act
	ready, err := ReadyAfterFriendAnswer(1, 5, 9, questions, selfAnswers, friendAnswers, nil)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, ready)
}

func TestReadyAfterFriendAnswer_UnknownQuestionRejected(t *testing.T) {
	// Arrange: среди ответов друга есть ссылка на несуществующий вопрос
	_, questions := testCatalog()
	friendAnswers := []entity.FriendAnswer{
		{ID: 1, FriendID: 9, SelfID: 5, QuestionID: 777},
	}

	// Act
	ready, err := ReadyAfterFriendAnswer(2, 5, 9, questions, nil, friendAnswers, nil)

	// Assert
	require.Error(t, err)
	assert.Nil(t, ready)
	var unknownQuestion *UnknownQuestionError
	assert.ErrorAs(t, err, &unknownQuestion)
}
