package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizpack-api/internal/handler/dto"
	"github.com/yourusername/quizpack-api/internal/service"
)

// FeedHandler обрабатывает запросы ленты паков
type FeedHandler struct {
	feedService *service.FeedService
	userService *service.UserService
}

// NewFeedHandler создает новый обработчик ленты
func NewFeedHandler(feedService *service.FeedService, userService *service.UserService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		userService: userService,
	}
}

// GetFeed возвращает ленту текущего пользователя:
// yourQuizzes - паки о себе с ответившими друзьями,
// theirQuizzes - паки, пройденные о друзьях.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := currentUserID(c)

	feed, err := h.feedService.GetFeed(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := dto.NewFeedResponse(feed)
	h.enrichFriends(resp)

	c.JSON(http.StatusOK, resp)
}

// enrichFriends дополняет элементы ленты профилями участников.
// Ошибка обогащения не роняет выдачу: клиент получит ленту с одними ID.
func (h *FeedHandler) enrichFriends(resp *dto.FeedResponse) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	collect := func(items []dto.FeedItemResponse) {
		for _, item := range items {
			for _, id := range item.FriendIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			if !seen[item.SelfID] {
				seen[item.SelfID] = true
				ids = append(ids, item.SelfID)
			}
		}
	}
	collect(resp.YourQuizzes)
	collect(resp.TheirQuizzes)

	if len(ids) == 0 {
		return
	}

	users, err := h.userService.GetByIDs(ids)
	if err != nil {
		log.Printf("[FeedHandler] Ошибка обогащения ленты профилями: %v", err)
		return
	}

	byID := make(map[uint]*dto.UserResponse, len(users))
	for i := range users {
		u := dto.NewUserResponse(&users[i])
		u.Email = ""
		byID[users[i].ID] = u
	}

	fill := func(items []dto.FeedItemResponse) {
		for i := range items {
			friends := make([]*dto.UserResponse, 0, len(items[i].FriendIDs))
			for _, id := range items[i].FriendIDs {
				if u, ok := byID[id]; ok {
					friends = append(friends, u)
				}
			}
			items[i].Friends = friends
		}
	}
	fill(resp.YourQuizzes)
	fill(resp.TheirQuizzes)
}
