package notificator

import (
	"runtime/debug"

	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/pkg/logger"
)

// Notificator pushes purchase notices to the operator. It is optional:
// without a configured Telegram bot every call is a logged no-op, and a
// failed delivery never fails the request that triggered it.
type Notificator struct {
	logger *logger.Logger

	telegram *TelegramNotificator
	chatID   string
}

func NewNotificator(logger *logger.Logger, telegram *TelegramNotificator, chatID string) models.NotificationService {
	return &Notificator{logger: logger, telegram: telegram, chatID: chatID}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

func (n *Notificator) SendPurchaseNotification(notification *models.Notification) {
	if n.telegram == nil || n.chatID == "" {
		n.logger.Debug("Telegram notifications disabled, skipping purchase notice for token ", notification.Token)
		return
	}

	message := notification.String()
	n.safeCall(func() { n.telegram.SendNotification(n.chatID, message) }, "telegramNotification")
}
