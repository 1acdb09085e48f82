package notify

import (
	"log/slog"

	"github.com/davron-dev/murojaat-bot/internal/infra/metrics"
)

// Sender — минимальный транспорт доставки текста в чат.
type Sender interface {
	SendText(chatID int64, text string) error
}

type Notifier struct {
	sender   Sender
	log      *slog.Logger
	adminIDs []int64
}

func New(sender Sender, log *slog.Logger, adminIDs []int64) *Notifier {
	return &Notifier{sender: sender, log: log, adminIDs: adminIDs}
}

// Admins рассылает сообщение по списку админов. Каждая доставка независима:
// отказ одного получателя логируется и не мешает остальным.
func (n *Notifier) Admins(text string) {
	for _, id := range n.adminIDs {
		if err := n.sender.SendText(id, text); err != nil {
			metrics.NotifyFailed.Inc()
			n.log.Error("admin notify failed", "admin_id", id, "err", err)
		}
	}
}

// User уведомляет отправителя обращения. Отказ не фатален.
func (n *Notifier) User(userID int64, text string) {
	if err := n.sender.SendText(userID, text); err != nil {
		metrics.NotifyFailed.Inc()
		n.log.Error("user notify failed", "user_id", userID, "err", err)
	}
}
