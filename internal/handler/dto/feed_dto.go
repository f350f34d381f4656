package dto

import (
	"github.com/yourusername/quizpack-api/internal/service/packfeed"
)

// FeedItemResponse - элемент ленты: пак и участники его прохождения
type FeedItemResponse struct {
	Quiz      *QuizResponse   `json:"quiz"`
	SelfID    uint            `json:"self_id"`
	FriendIDs []uint          `json:"friend_ids"`
	Friends   []*UserResponse `json:"friends,omitempty"`
}

// FeedResponse - полная лента пользователя
type FeedResponse struct {
	YourQuizzes  []FeedItemResponse `json:"your_quizzes"`
	TheirQuizzes []FeedItemResponse `json:"their_quizzes"`
}

// SubmitSelfAnswerRequest - запрос записи ответа о себе
type SubmitSelfAnswerRequest struct {
	QuestionID  uint `json:"question_id" binding:"required"`
	OptionIndex *int `json:"option_index" binding:"required"`
}

// SubmitFriendAnswerRequest - запрос записи ответа о друге
type SubmitFriendAnswerRequest struct {
	SelfID      uint `json:"self_id" binding:"required"`
	QuestionID  uint `json:"question_id" binding:"required"`
	OptionIndex *int `json:"option_index" binding:"required"`
}

// NewFeedItemResponse создает DTO элемента ленты
func NewFeedItemResponse(item *packfeed.QuizItem) FeedItemResponse {
	return FeedItemResponse{
		Quiz:      NewQuizResponse(item.Quiz, false),
		SelfID:    item.SelfID,
		FriendIDs: item.FriendIDs,
	}
}

// NewFeedResponse создает DTO ленты
func NewFeedResponse(feed *packfeed.FeedLists) *FeedResponse {
	resp := &FeedResponse{
		YourQuizzes:  make([]FeedItemResponse, 0, len(feed.YourQuizzes)),
		TheirQuizzes: make([]FeedItemResponse, 0, len(feed.TheirQuizzes)),
	}
	for i := range feed.YourQuizzes {
		resp.YourQuizzes = append(resp.YourQuizzes, NewFeedItemResponse(&feed.YourQuizzes[i]))
	}
	for i := range feed.TheirQuizzes {
		resp.TheirQuizzes = append(resp.TheirQuizzes, NewFeedItemResponse(&feed.TheirQuizzes[i]))
	}
	return resp
}
