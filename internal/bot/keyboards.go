package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
)

// Тексты кнопок нижней панели. По ним же роутятся сообщения.
const (
	btnNewAppeal  = "📝 Murojaat yaratish"
	btnAdminPanel = "👑 Admin panel"
	btnBack       = "🔙 Orqaga"
	btnCancel     = "❌ Bekor qilish"
	btnNext       = "Keyingi"
	btnSharePhone = "📱 Raqamni yuborish"
)

func mainUserKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnNewAppeal)},
		},
	}
}

func mainAdminKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnNewAppeal)},
			{tgbotapi.NewKeyboardButton(btnAdminPanel)},
		},
	}
}

// phoneKeyboard — одна кнопка с request_contact, исчезает после нажатия.
func phoneKeyboard() tgbotapi.ReplyKeyboardMarkup {
	btn := tgbotapi.NewKeyboardButtonContact(btnSharePhone)
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Keyboard:        [][]tgbotapi.KeyboardButton{{btn}},
	}
}

func backCancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnBack), tgbotapi.NewKeyboardButton(btnCancel)},
		},
	}
}

func mediaKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{
				tgbotapi.NewKeyboardButton(btnNext),
				tgbotapi.NewKeyboardButton(btnBack),
				tgbotapi.NewKeyboardButton(btnCancel),
			},
		},
	}
}

func previewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Tasdiqlash", "form:confirm"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Tahrirlash", "form:edit"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Bekor qilish", "form:cancel"),
		),
	)
}

func adminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📥 Ishlanmagan", "adm:list:un:1"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📤 Ishlangan", "adm:list:pr:1"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Adminlarni boshqarish", "adm:manage"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Eksport", "adm:export"),
		),
	)
}

func adminManageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Admin qo'shish", "adm:add"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Adminlar ro'yxati", "adm:roles"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Orqaga", "adm:menu"),
		),
	)
}

func appealsListKeyboard(items []appeals.Appeal, status appeals.Status, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	tag := "un"
	if status == appeals.StatusProcessed {
		tag = "pr"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, a := range items {
		label := fmt.Sprintf("№%d - %s", a.ID, a.CreatedAt.Format(time.DateOnly))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("adm:view:%d", a.ID)),
		))
	}
	if page > 1 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Oldingi", fmt.Sprintf("adm:list:%s:%d", tag, page-1)),
		))
	}
	if page < totalPages {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Keyingi", fmt.Sprintf("adm:list:%s:%d", tag, page+1)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Menyuga", "adm:menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func appealActionsKeyboard(appealID int64, unprocessed bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if unprocessed {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Ishlash", fmt.Sprintf("adm:process:%d", appealID)),
		))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Izoh qo'shish", fmt.Sprintf("adm:comment:%d", appealID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Ro'yxatga", "adm:back_to_list"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
