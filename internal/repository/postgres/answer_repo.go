package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpack-api/internal/pkg/errors"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolationCode = "23505"

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// SaveSelfAnswer сохраняет ответ пользователя о себе.
// Повторный ответ на тот же вопрос возвращает ErrConflict.
func (r *AnswerRepo) SaveSelfAnswer(answer *entity.SelfAnswer) error {
	if err := r.db.Create(answer).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// SaveFriendAnswer сохраняет ответ пользователя о друге.
// Повторный ответ на тот же вопрос о том же друге возвращает ErrConflict.
func (r *AnswerRepo) SaveFriendAnswer(answer *entity.FriendAnswer) error {
	if err := r.db.Create(answer).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// GetSelfAnswersByUser возвращает все ответы пользователя о себе
func (r *AnswerRepo) GetSelfAnswersByUser(userID uint) ([]entity.SelfAnswer, error) {
	var answers []entity.SelfAnswer
	err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&answers).Error
	return answers, err
}

// GetFriendAnswersBySubject возвращает все ответы друзей о пользователе selfID
func (r *AnswerRepo) GetFriendAnswersBySubject(selfID uint) ([]entity.FriendAnswer, error) {
	var answers []entity.FriendAnswer
	err := r.db.Where("self_id = ?", selfID).Order("created_at").Find(&answers).Error
	return answers, err
}

// GetFriendAnswersByFriend возвращает все ответы пользователя friendID о его друзьях
func (r *AnswerRepo) GetFriendAnswersByFriend(friendID uint) ([]entity.FriendAnswer, error) {
	var answers []entity.FriendAnswer
	err := r.db.Where("friend_id = ?", friendID).Order("created_at").Find(&answers).Error
	return answers, err
}

// GetFriendAnswersForPair возвращает ответы friendID о selfID
func (r *AnswerRepo) GetFriendAnswersForPair(selfID, friendID uint) ([]entity.FriendAnswer, error) {
	var answers []entity.FriendAnswer
	err := r.db.Where("self_id = ? AND friend_id = ?", selfID, friendID).
		Order("created_at").
		Find(&answers).Error
	return answers, err
}

// GetAllSelfAnswers возвращает все ответы о себе (для отчётов)
func (r *AnswerRepo) GetAllSelfAnswers() ([]entity.SelfAnswer, error) {
	var answers []entity.SelfAnswer
	err := r.db.Order("created_at").Find(&answers).Error
	return answers, err
}

// GetAllFriendAnswers возвращает все ответы о друзьях (для отчётов)
func (r *AnswerRepo) GetAllFriendAnswers() ([]entity.FriendAnswer, error) {
	var answers []entity.FriendAnswer
	err := r.db.Order("created_at").Find(&answers).Error
	return answers, err
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
