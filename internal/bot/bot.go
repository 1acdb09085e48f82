package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/davron-dev/murojaat-bot/internal/dialog"
	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/domain/users"
)

// TelegramAPI — срез методов *tgbotapi.BotAPI, которым пользуется бот.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// UserStore — операции над пользователями и ролями.
type UserStore interface {
	Upsert(ctx context.Context, telegramID int64) error
	SetRole(ctx context.Context, telegramID int64, role users.Role) error
	List(ctx context.Context) ([]users.User, error)
	IsAdmin(ctx context.Context, telegramID int64) (bool, error)
	GetStats(ctx context.Context) (users.Stats, error)
}

// AppealStore — операции над обращениями и вложениями.
type AppealStore interface {
	Create(ctx context.Context, d appeals.Draft) (int64, error)
	AddMedia(ctx context.Context, appealID int64, path string, fileType appeals.FileType) error
	ListByStatus(ctx context.Context, status appeals.Status, page, perPage int) ([]appeals.Appeal, error)
	CountPages(ctx context.Context, status appeals.Status, perPage int) (int, error)
	GetWithMedia(ctx context.Context, id int64) (*appeals.Appeal, []appeals.Media, error)
	MarkProcessed(ctx context.Context, id int64, comment string) error
	CountUnprocessed(ctx context.Context) (int64, error)
	ListAllWithMedia(ctx context.Context) ([]appeals.ExportRow, error)
	GetStats(ctx context.Context) (appeals.Stats, error)
}

// Notify — фан-аут уведомлений; отказы доставки не всплывают сюда.
type Notify interface {
	Admins(text string)
	User(userID int64, text string)
}

type Bot struct {
	api      TelegramAPI
	log      *slog.Logger
	users    UserStore
	appeals  AppealStore
	sessions *dialog.Store
	notify   Notify
	mediaDir string
}

func New(api TelegramAPI, log *slog.Logger,
	userStore UserStore, appealStore AppealStore,
	sessions *dialog.Store, notify Notify, mediaDir string) *Bot {

	return &Bot{
		api: api, log: log, users: userStore, appeals: appealStore,
		sessions: sessions, notify: notify, mediaDir: mediaDir,
	}
}

// SetNotify навешивает уведомитель после конструктора: бот одновременно
// и транспорт доставки (notify.Sender), и потребитель уведомлений.
func (b *Bot) SetNotify(n Notify) { b.notify = n }

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd.Message)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd.CallbackQuery)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// SendText реализует notify.Sender: доставка простого текста в чат.
func (b *Bot) SendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// downloadMedia скачивает файл по FileID из Telegram в media-каталог
// и возвращает путь сохранённой копии.
func (b *Bot) downloadMedia(fileID string) (string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("get file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(url)
	path := filepath.Join(b.mediaDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return path, nil
}
