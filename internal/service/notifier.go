package service

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/quizpack-api/internal/domain/entity"
)

// Notifier доставляет пользователю уведомление о разблокированных
// результатах пака вне WebSocket-канала (email, push).
type Notifier interface {
	// ResultsReady уведомляет user о том, что вторая сторона пары (friend)
	// завершила свою часть пака quiz и результаты разблокированы.
	ResultsReady(user *entity.User, quiz *entity.Quiz, friend *entity.User) error
}

// ResendNotifier отправляет email-уведомления через Resend API
type ResendNotifier struct {
	client *resend.Client
	from   string
}

// NewResendNotifier создает email-нотификатор
func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// ResultsReady отправляет письмо "результаты готовы"
func (n *ResendNotifier) ResultsReady(user *entity.User, quiz *entity.Quiz, friend *entity.User) error {
	if user.Email == "" {
		return nil
	}

	friendName := friend.Name
	if friendName == "" {
		friendName = friend.Username
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{user.Email},
		Subject: fmt.Sprintf("Результаты пака «%s» готовы", quiz.Name),
		Html: fmt.Sprintf(
			"<p>Вы с %s прошли пак «%s».</p><p>Открой приложение, чтобы сравнить ответы.</p>",
			friendName, quiz.Name,
		),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("ошибка отправки email через Resend: %w", err)
	}
	log.Printf("[ResendNotifier] Письмо отправлено: user=%d quiz=%d id=%s", user.ID, quiz.ID, sent.Id)
	return nil
}

// NoopNotifier используется, когда email-уведомления отключены конфигурацией
type NoopNotifier struct{}

// ResultsReady ничего не делает
func (NoopNotifier) ResultsReady(user *entity.User, quiz *entity.Quiz, friend *entity.User) error {
	return nil
}
