package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/davron-dev/murojaat-bot/internal/apperr"
	"github.com/davron-dev/murojaat-bot/internal/dialog"
	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/domain/users"
	"github.com/davron-dev/murojaat-bot/internal/export"
	"github.com/davron-dev/murojaat-bot/internal/infra/metrics"
)

const msgNoAccess = "❌ Sizda ruxsat yo'q."

// requireAdmin сводит проверку роли к одной ошибке: не-админ получает
// apperr.ErrForbidden, сбой хранилища считается отказом.
func (b *Bot) requireAdmin(ctx context.Context, telegramID int64) error {
	admin, err := b.users.IsAdmin(ctx, telegramID)
	if err != nil {
		b.log.Error("admin check failed", "err", err)
		return err
	}
	if !admin {
		return apperr.ErrForbidden
	}
	return nil
}

func (b *Bot) showAdminPanel(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.requireAdmin(ctx, msg.From.ID); err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, msgNoAccess))
		return
	}

	n, err := b.appeals.CountUnprocessed(ctx)
	if err != nil {
		b.log.Error("count unprocessed failed", "err", err)
	}
	m := tgbotapi.NewMessage(msg.Chat.ID, adminPanelText(n))
	m.ReplyMarkup = adminMenuKeyboard()
	b.send(m)
}

func adminPanelText(unprocessed int64) string {
	return fmt.Sprintf("👑 Admin panel\n\nIshlanmagan murojaatlar: %d", unprocessed)
}

func (b *Bot) onAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if err := b.requireAdmin(ctx, cb.From.ID); err != nil {
		_ = b.answerCallback(cb, msgNoAccess, true)
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	parts := strings.Split(cb.Data, ":")

	switch {
	case cb.Data == "adm:menu":
		n, err := b.appeals.CountUnprocessed(ctx)
		if err != nil {
			b.log.Error("count unprocessed failed", "err", err)
		}
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, adminPanelText(n), adminMenuKeyboard()))
		_ = b.answerCallback(cb, "", false)

	case len(parts) == 4 && parts[1] == "list":
		status := appeals.StatusUnprocessed
		if parts[2] == "pr" {
			status = appeals.StatusProcessed
		}
		page, err := strconv.Atoi(parts[3])
		if err != nil || page < 1 {
			page = 1
		}
		b.showAppealsList(ctx, chatID, &msgID, status, page)
		sess := b.sessions.Get(chatID)
		sess.ListStatus = status
		sess.ListPage = page
		b.sessions.Set(sess)
		_ = b.answerCallback(cb, "", false)

	case cb.Data == "adm:back_to_list":
		sess := b.sessions.Get(chatID)
		status, page := sess.ListStatus, sess.ListPage
		if !status.Valid() {
			status, page = appeals.StatusUnprocessed, 1
		}
		b.showAppealsList(ctx, chatID, nil, status, page)
		_ = b.answerCallback(cb, "", false)

	case len(parts) == 3 && parts[1] == "view":
		id, _ := strconv.ParseInt(parts[2], 10, 64)
		b.showAppealCard(ctx, cb, id)

	case len(parts) == 3 && parts[1] == "process":
		id, _ := strconv.ParseInt(parts[2], 10, 64)
		b.processAppeal(ctx, cb, id)

	case len(parts) == 3 && parts[1] == "comment":
		id, _ := strconv.ParseInt(parts[2], 10, 64)
		sess := b.sessions.Get(chatID)
		sess.State = dialog.StateAwaitComment
		sess.CommentAppealID = id
		b.sessions.Set(sess)
		b.send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("💬 №%d murojaat uchun izoh yozing (o'tkazib yuborish: /skip):", id)))
		_ = b.answerCallback(cb, "", false)

	case cb.Data == "adm:manage":
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
			"👥 Adminlarni boshqarish", adminManageKeyboard()))
		_ = b.answerCallback(cb, "", false)

	case cb.Data == "adm:add":
		sess := b.sessions.Get(chatID)
		sess.State = dialog.StateAwaitUserID
		b.sessions.Set(sess)
		b.send(tgbotapi.NewMessage(chatID, "Yangi admin Telegram ID sini yuboring:"))
		_ = b.answerCallback(cb, "", false)

	case cb.Data == "adm:roles":
		b.showRoles(ctx, chatID)
		_ = b.answerCallback(cb, "", false)

	case cb.Data == "adm:export":
		_ = b.answerCallback(cb, "Tayyorlanmoqda...", false)
		b.sendExport(ctx, chatID)

	default:
		_ = b.answerCallback(cb, "Noma'lum buyruq.", false)
	}
}

// showAppealsList рисует страницу списка. editMsgID != nil — редактируем
// существующее сообщение, иначе шлём новое.
func (b *Bot) showAppealsList(ctx context.Context, chatID int64, editMsgID *int, status appeals.Status, page int) {
	items, err := b.appeals.ListByStatus(ctx, status, page, appeals.PerPage)
	if err != nil {
		b.log.Error("list appeals failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Ro'yxatni olib bo'lmadi."))
		return
	}
	pages, err := b.appeals.CountPages(ctx, status, appeals.PerPage)
	if err != nil {
		b.log.Error("count pages failed", "err", err)
	}

	title := "📥 Ishlanmagan murojaatlar"
	if status == appeals.StatusProcessed {
		title = "📤 Ishlangan murojaatlar"
	}
	text := fmt.Sprintf("%s (%d/%d-sahifa)", title, page, pages)
	if len(items) == 0 {
		text = title + "\n\nHozircha murojaatlar yo'q."
	}

	kb := appealsListKeyboard(items, status, page, pages)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) showAppealCard(ctx context.Context, cb *tgbotapi.CallbackQuery, id int64) {
	chatID := cb.Message.Chat.ID

	a, media, err := b.appeals.GetWithMedia(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = b.answerCallback(cb, "Murojaat topilmadi.", true)
			return
		}
		b.log.Error("get appeal failed", "id", id, "err", err)
		_ = b.answerCallback(cb, "Xatolik", true)
		return
	}

	// вложения отдельными сообщениями, затем карточка с действиями
	for _, md := range media {
		switch md.FileType {
		case appeals.FilePhoto:
			b.send(tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(md.FilePath)))
		case appeals.FileVideo:
			b.send(tgbotapi.NewVideo(chatID, tgbotapi.FilePath(md.FilePath)))
		}
	}

	m := tgbotapi.NewMessage(chatID, appealCard(a, len(media)))
	m.ReplyMarkup = appealActionsKeyboard(a.ID, a.Status == appeals.StatusUnprocessed)
	b.send(m)
	_ = b.answerCallback(cb, "", false)
}

func appealCard(a *appeals.Appeal, mediaCount int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📄 Murojaat №%d\n\n", a.ID)
	fmt.Fprintf(&sb, "📱 Telefon: %s\n", a.Phone)
	fmt.Fprintf(&sb, "👤 F.I.O.: %s\n", a.FullName)
	fmt.Fprintf(&sb, "🏠 Manzil: %s\n", a.Address)
	fmt.Fprintf(&sb, "🏢 Uy MFI/OFI: %s\n", a.Domkom)
	fmt.Fprintf(&sb, "📝 Matn: %s\n\n", a.Text)
	fmt.Fprintf(&sb, "🕓 Sana: %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Status: %s\n", export.StatusLabel(a.Status))
	if a.Comment != "" {
		fmt.Fprintf(&sb, "Izoh: %s\n", a.Comment)
	}
	fmt.Fprintf(&sb, "📸 Fayllar: %d", mediaCount)
	return sb.String()
}

func (b *Bot) processAppeal(ctx context.Context, cb *tgbotapi.CallbackQuery, id int64) {
	chatID := cb.Message.Chat.ID

	a, _, err := b.appeals.GetWithMedia(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = b.answerCallback(cb, "Murojaat topilmadi.", true)
			return
		}
		b.log.Error("get appeal failed", "id", id, "err", err)
		_ = b.answerCallback(cb, "Xatolik", true)
		return
	}

	if err := b.appeals.MarkProcessed(ctx, id, ""); err != nil {
		b.log.Error("mark processed failed", "id", id, "err", err)
		_ = b.answerCallback(cb, "Xatolik", true)
		return
	}
	metrics.AppealsProcessed.Inc()

	b.notify.User(a.UserID, fmt.Sprintf("✅ Sizning №%d murojaatingiz ko'rib chiqildi.", id))
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Murojaat №%d ishlandi.", id)))
	_ = b.answerCallback(cb, "Ishlandi", false)
}

func (b *Bot) handleAddAdmin(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session) {
	// роль могла смениться, пока бот ждал ввод
	if err := b.requireAdmin(ctx, msg.From.ID); err != nil {
		b.sessions.Reset(msg.Chat.ID)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, msgNoAccess))
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Noto'g'ri ID formati. Raqam yuboring."))
		return
	}

	if err := b.users.SetRole(ctx, id, users.RoleAdmin); err != nil {
		b.log.Error("set role failed", "target", id, "err", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Saqlab bo'lmadi. Keyinroq urinib ko'ring."))
		return
	}

	sess.State = dialog.StateIdle
	b.sessions.Set(sess)

	b.notify.User(id, "👑 Sizga admin huquqlari berildi.")
	b.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("✅ Foydalanuvchi %d admin qilindi.", id)))
}

// handleComment закрывает обращение с комментарием админа.
// Пустой comment (после /skip) сохранённый ранее комментарий не трогает.
func (b *Bot) handleComment(ctx context.Context, msg *tgbotapi.Message, sess dialog.Session, comment string) {
	if err := b.requireAdmin(ctx, msg.From.ID); err != nil {
		b.sessions.Reset(msg.Chat.ID)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, msgNoAccess))
		return
	}

	id := sess.CommentAppealID
	a, _, err := b.appeals.GetWithMedia(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			b.sessions.Reset(msg.Chat.ID)
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Murojaat topilmadi."))
			return
		}
		b.log.Error("get appeal failed", "id", id, "err", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Xatolik yuz berdi."))
		return
	}

	comment = strings.TrimSpace(comment)
	if err := b.appeals.MarkProcessed(ctx, id, comment); err != nil {
		b.log.Error("mark processed failed", "id", id, "err", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Saqlab bo'lmadi."))
		return
	}
	metrics.AppealsProcessed.Inc()

	sess.State = dialog.StateIdle
	sess.CommentAppealID = 0
	b.sessions.Set(sess)

	text := fmt.Sprintf("✅ Sizning №%d murojaatingiz ko'rib chiqildi.", id)
	if comment != "" {
		text += "\nIzoh: " + comment
	}
	b.notify.User(a.UserID, text)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("✅ Murojaat №%d ishlandi.", id)))
}

func (b *Bot) showRoles(ctx context.Context, chatID int64) {
	all, err := b.users.List(ctx)
	if err != nil {
		b.log.Error("list users failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Ro'yxatni olib bo'lmadi."))
		return
	}

	var admins, regular []int64
	for _, u := range all {
		if u.Role == users.RoleAdmin {
			admins = append(admins, u.TelegramID)
		} else {
			regular = append(regular, u.TelegramID)
		}
	}

	var sb strings.Builder
	sb.WriteString("👑 Adminlar:\n")
	for _, id := range admins {
		fmt.Fprintf(&sb, "  %d\n", id)
	}
	sb.WriteString("\n👤 Foydalanuvchilar:\n")
	for i, id := range regular {
		if i == 10 {
			fmt.Fprintf(&sb, "  ... va yana %d foydalanuvchi\n", len(regular)-10)
			break
		}
		fmt.Fprintf(&sb, "  %d\n", id)
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

func (b *Bot) handleExportCommand(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.requireAdmin(ctx, msg.From.ID); err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, msgNoAccess))
		return
	}
	b.sendExport(ctx, msg.Chat.ID)
}

func (b *Bot) sendExport(ctx context.Context, chatID int64) {
	rows, err := b.appeals.ListAllWithMedia(ctx)
	if err != nil {
		b.log.Error("export: list appeals failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Eksportni tayyorlab bo'lmadi."))
		return
	}
	as, err := b.appeals.GetStats(ctx)
	if err != nil {
		b.log.Error("export: appeal stats failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Eksportni tayyorlab bo'lmadi."))
		return
	}
	us, err := b.users.GetStats(ctx)
	if err != nil {
		b.log.Error("export: user stats failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Eksportni tayyorlab bo'lmadi."))
		return
	}

	f, err := export.Workbook(rows, us, as)
	if err != nil {
		b.log.Error("export: build workbook failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Eksportni tayyorlab bo'lmadi."))
		return
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		b.log.Error("export: write workbook failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "❌ Eksportni tayyorlab bo'lmadi."))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  export.Filename(time.Now()),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("📊 Statistika\nJami murojaatlar: %d", as.Total)
	b.send(doc)
}
