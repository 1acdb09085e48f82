package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/davron-dev/murojaat-bot/internal/dialog"
)

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	sess := b.sessions.Get(msg.Chat.ID)

	// Кнопки нижней панели разбираем раньше шагов формы, иначе
	// «Назад»/«Отмена» ушли бы в черновик как обычный текст.
	switch msg.Text {
	case btnNewAppeal:
		b.startAppeal(ctx, msg)
		return
	case btnAdminPanel:
		b.showAdminPanel(ctx, msg)
		return
	case btnCancel:
		b.cancelForm(ctx, msg)
		return
	case btnBack:
		if dialog.IsFormState(sess.State) {
			b.backStep(ctx, msg, sess)
		}
		return
	case btnNext:
		if sess.State == dialog.StateMedia {
			b.finishMedia(ctx, msg, sess)
		}
		return
	}

	switch sess.State {
	case dialog.StatePhone:
		b.handlePhone(ctx, msg, sess)
	case dialog.StateFullName, dialog.StateAddress, dialog.StateDomkom, dialog.StateText:
		b.handleFormText(ctx, msg, sess)
	case dialog.StateMedia:
		b.handleMedia(ctx, msg, sess)
	case dialog.StateAwaitUserID:
		b.handleAddAdmin(ctx, msg, sess)
	case dialog.StateAwaitComment:
		b.handleComment(ctx, msg, sess, msg.Text)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		if err := b.users.Upsert(ctx, msg.From.ID); err != nil {
			b.log.Error("upsert user failed", "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring."))
			return
		}
		admin, _ := b.users.IsAdmin(ctx, msg.From.ID)
		if admin {
			m := tgbotapi.NewMessage(chatID, "Salom admin! Harakatni tanlang.")
			m.ReplyMarkup = mainAdminKeyboard()
			b.send(m)
			return
		}
		m := tgbotapi.NewMessage(chatID, "Xush kelibsiz! Murojaat yarating.")
		m.ReplyMarkup = mainUserKeyboard()
		b.send(m)

	case "admin":
		b.showAdminPanel(ctx, msg)

	case "export":
		b.handleExportCommand(ctx, msg)

	case "skip":
		// /skip внутри ожидания комментария — обработать без комментария
		sess := b.sessions.Get(chatID)
		if sess.State == dialog.StateAwaitComment {
			b.handleComment(ctx, msg, sess, "")
		}

	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Buyruqlar:\n/start — boshlash\n/admin — admin panel\n/help — yordam"))

	default:
		b.send(tgbotapi.NewMessage(chatID, "Bunday buyruq yo'q. /help ni bosing."))
	}
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		_ = b.answerCallback(cb, "Xabar topilmadi.", false)
		return
	}

	data := cb.Data
	switch {
	case data == "form:confirm":
		b.confirmAppeal(ctx, cb)
	case data == "form:edit":
		b.editAppeal(ctx, cb)
	case data == "form:cancel":
		b.inlineCancel(ctx, cb)
	default:
		b.onAdminCallback(ctx, cb)
	}
}
