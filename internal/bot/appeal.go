package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/davron-dev/murojaat-bot/internal/dialog"
	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/infra/metrics"
)

// previewTextLimit — сколько символов текста показываем в предпросмотре.
const previewTextLimit = 100

func (b *Bot) startAppeal(ctx context.Context, msg *tgbotapi.Message) {
	// админы обращений не подают
	if admin, _ := b.users.IsAdmin(ctx, msg.From.ID); admin {
		return
	}
	b.sessions.Set(dialog.Session{ChatID: msg.Chat.ID, State: dialog.StatePhone})
	b.promptStep(msg.Chat.ID, dialog.StatePhone)
}

// promptStep отправляет приглашение для шага. Используется и при движении
// вперёд, и при возврате кнопкой «Назад».
func (b *Bot) promptStep(chatID int64, step dialog.State) {
	switch step {
	case dialog.StatePhone:
		m := tgbotapi.NewMessage(chatID,
			"📱 1-qadam: Telefon raqamingizni yuboring\n\nQuyidagi tugmani bosing 👇")
		m.ReplyMarkup = phoneKeyboard()
		b.send(m)
	case dialog.StateFullName:
		m := tgbotapi.NewMessage(chatID, "2-qadam: F.I.O. kiriting.")
		m.ReplyMarkup = backCancelKeyboard()
		b.send(m)
	case dialog.StateAddress:
		m := tgbotapi.NewMessage(chatID, "3-qadam: Yashash manzilini kiriting.")
		m.ReplyMarkup = backCancelKeyboard()
		b.send(m)
	case dialog.StateDomkom:
		m := tgbotapi.NewMessage(chatID, "4-qadam: Uy MFI/OFI kompaniyasini kiriting.")
		m.ReplyMarkup = backCancelKeyboard()
		b.send(m)
	case dialog.StateText:
		m := tgbotapi.NewMessage(chatID, "5-qadam: Murojaatingizni tasvirlab bering.")
		m.ReplyMarkup = backCancelKeyboard()
		b.send(m)
	case dialog.StateMedia:
		m := tgbotapi.NewMessage(chatID,
			"📸 6-qadam: Rasm/video qo'shing (ixtiyoriy)\n\nFayllarni yuboring yoki Keyingi tugmasini bosing")
		m.ReplyMarkup = mediaKeyboard()
		b.send(m)
	}
}

func (b *Bot) handlePhone(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	if msg.Contact == nil {
		b.promptStep(msg.Chat.ID, dialog.StatePhone)
		return
	}

	phone, ok := appeals.NormalizePhone(msg.Contact.PhoneNumber)
	if !ok {
		m := tgbotapi.NewMessage(msg.Chat.ID, "❌ Noto'g'ri raqam. Qayta urinib ko'ring.")
		m.ReplyMarkup = phoneKeyboard()
		b.send(m)
		return
	}

	sess.Draft.Phone = phone
	sess.State = dialog.StateFullName
	b.sessions.Set(sess)

	m := tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("✅ Raqam: %s\n\n2-qadam: F.I.O. kiriting.", phone))
	m.ReplyMarkup = backCancelKeyboard()
	b.send(m)
}

func (b *Bot) handleFormText(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		m := tgbotapi.NewMessage(msg.Chat.ID, "❌ Matn bo'sh bo'lmasligi kerak. Qayta kiriting.")
		m.ReplyMarkup = backCancelKeyboard()
		b.send(m)
		return
	}

	switch sess.State {
	case dialog.StateFullName:
		sess.Draft.FullName = text
	case dialog.StateAddress:
		sess.Draft.Address = text
	case dialog.StateDomkom:
		sess.Draft.Domkom = text
	case dialog.StateText:
		sess.Draft.Text = text
	}

	next, _ := dialog.Next(sess.State)
	sess.State = next
	b.sessions.Set(sess)
	b.promptStep(msg.Chat.ID, next)
}

func (b *Bot) handleMedia(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	var fileID string
	var fileType appeals.FileType

	switch {
	case len(msg.Photo) > 0:
		fileID = msg.Photo[len(msg.Photo)-1].FileID
		fileType = appeals.FilePhoto
	case msg.Video != nil:
		fileID = msg.Video.FileID
		fileType = appeals.FileVideo
	default:
		m := tgbotapi.NewMessage(msg.Chat.ID, "Fayllarni yuboring yoki Keyingi tugmasini bosing.")
		m.ReplyMarkup = mediaKeyboard()
		b.send(m)
		return
	}

	path, err := b.downloadMedia(fileID)
	if err != nil {
		b.log.Error("media download failed", "err", err)
		m := tgbotapi.NewMessage(msg.Chat.ID, "❌ Faylni yuklab bo'lmadi. Qayta urinib ko'ring.")
		m.ReplyMarkup = mediaKeyboard()
		b.send(m)
		return
	}

	sess.Draft.Media = append(sess.Draft.Media, dialog.MediaRef{Path: path, Type: fileType})
	b.sessions.Set(sess)

	m := tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("✅ Fayl #%d qo'shildi!\nYana yoki Keyingi tugmasini bosing", len(sess.Draft.Media)))
	m.ReplyMarkup = mediaKeyboard()
	b.send(m)
}

func (b *Bot) finishMedia(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	sess.State = dialog.StatePreview
	b.sessions.Set(sess)

	m := tgbotapi.NewMessage(msg.Chat.ID, renderPreview(sess.Draft))
	m.ReplyMarkup = previewKeyboard()
	b.send(m)
}

func renderPreview(d dialog.Draft) string {
	text := d.Text
	if r := []rune(text); len(r) > previewTextLimit {
		text = string(r[:previewTextLimit])
	}
	return fmt.Sprintf(
		"🌟 MUROJAATNI TEKSHIRING 🌟\n\n"+
			"📱 Telefon: %s\n"+
			"👤 F.I.O.: %s\n"+
			"🏠 Manzil: %s\n"+
			"🏢 Uy MFI/OFI: %s\n"+
			"📝 Matn: %s...\n"+
			"📸 Fayllar: %d\n\n"+
			"Yuborish?",
		d.Phone, d.FullName, d.Address, d.Domkom, text, len(d.Media),
	)
}

// backStep — ровно один шаг назад; значение шага, на который вернулись,
// сбрасывается и вводится заново.
func (b *Bot) backStep(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	prev, ok := dialog.Prev(sess.State)
	if !ok {
		return
	}
	sess.State = prev
	sess.Draft.ClearStep(prev)
	b.sessions.Set(sess)
	b.promptStep(msg.Chat.ID, prev)
}

func (b *Bot) cancelForm(ctx context.Context, msg *tgbotapi.Message) {
	b.sessions.Reset(msg.Chat.ID)
	m := tgbotapi.NewMessage(msg.Chat.ID, "✖️ Yaratish bekor qilindi.")
	m.ReplyMarkup = b.mainKeyboardFor(ctx, msg.From.ID)
	b.send(m)
}

func (b *Bot) mainKeyboardFor(ctx context.Context, telegramID int64) tgbotapi.ReplyKeyboardMarkup {
	if admin, _ := b.users.IsAdmin(ctx, telegramID); admin {
		return mainAdminKeyboard()
	}
	return mainUserKeyboard()
}

func (b *Bot) confirmAppeal(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := b.sessions.Get(chatID)
	if sess.State != dialog.StatePreview {
		_ = b.answerCallback(cb, "Forma allaqachon yuborilgan.", false)
		return
	}

	draft := appeals.Draft{
		UserID:   cb.From.ID,
		Phone:    sess.Draft.Phone,
		FullName: sess.Draft.FullName,
		Address:  sess.Draft.Address,
		Domkom:   sess.Draft.Domkom,
		Text:     sess.Draft.Text,
	}

	appealID, err := b.appeals.Create(ctx, draft)
	if err != nil {
		b.log.Error("create appeal failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Saqlab bo'lmadi. Keyinroq urinib ko'ring."))
		_ = b.answerCallback(cb, "Xatolik", false)
		return
	}
	for _, mref := range sess.Draft.Media {
		if err := b.appeals.AddMedia(ctx, appealID, mref.Path, mref.Type); err != nil {
			b.log.Error("add media failed", "appeal_id", appealID, "err", err)
		}
	}

	// повторное подтверждение по той же кнопке невозможно
	b.sessions.Reset(chatID)
	metrics.AppealsCreated.Inc()

	b.editTextAndClear(chatID, cb.Message.MessageID, "✅ Tasdiqlandi.")

	m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"🎉 MUROJAAT YUBORILDI!\n\n"+
			"Kuzatish uchun raqam: №%d\n"+
			"Saqlab qoling! Biz siz bilan bog'lanamiz.", appealID))
	m.ReplyMarkup = b.mainKeyboardFor(ctx, cb.From.ID)
	b.send(m)

	b.notify.Admins(fmt.Sprintf("🆕 Новое обращение №%d от %s", appealID, draft.FullName))
	_ = b.answerCallback(cb, "", false)
}

// editAppeal — «Tahrirlash» из предпросмотра: форма начинается заново
// с пустым черновиком.
func (b *Bot) editAppeal(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	b.sessions.Set(dialog.Session{ChatID: chatID, State: dialog.StatePhone})
	b.send(tgbotapi.NewMessage(chatID, "✏️ Boshidan tahrirlaymiz:"))
	b.promptStep(chatID, dialog.StatePhone)
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) inlineCancel(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	b.sessions.Reset(chatID)
	b.editTextAndClear(chatID, cb.Message.MessageID, "✖️ Bekor qilindi.")
	m := tgbotapi.NewMessage(chatID, "Bosh menyu:")
	m.ReplyMarkup = b.mainKeyboardFor(ctx, cb.From.ID)
	b.send(m)
	_ = b.answerCallback(cb, "", false)
}
