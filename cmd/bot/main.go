package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/subosito/gotenv"

	"github.com/davron-dev/murojaat-bot/internal/bot"
	"github.com/davron-dev/murojaat-bot/internal/config"
	"github.com/davron-dev/murojaat-bot/internal/dialog"
	"github.com/davron-dev/murojaat-bot/internal/domain/appeals"
	"github.com/davron-dev/murojaat-bot/internal/domain/users"
	"github.com/davron-dev/murojaat-bot/internal/infra/db"
	httpx "github.com/davron-dev/murojaat-bot/internal/infra/http"
	"github.com/davron-dev/murojaat-bot/internal/infra/logger"
	"github.com/davron-dev/murojaat-bot/internal/notify"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	if err := os.MkdirAll(cfg.Media.Dir, 0o755); err != nil {
		log.Error("media dir failed", "dir", cfg.Media.Dir, "err", err)
		return
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("authorized", "bot", api.Self.UserName)

	userRepo := users.NewRepo(pool)
	appealRepo := appeals.NewRepo(pool)
	sessions := dialog.NewStore()

	// кольцо: бот — транспорт уведомлений, уведомитель — зависимость бота
	b := bot.New(api, log, userRepo, appealRepo, sessions, nil, cfg.Media.Dir)
	ntf := notify.New(b, log, cfg.Telegram.AdminIDs)
	b.SetNotify(ntf)

	// стартовые админы из конфига
	for _, id := range cfg.Telegram.AdminIDs {
		if err := userRepo.SetRole(ctx, id, users.RoleAdmin); err != nil {
			log.Error("seed admin failed", "id", id, "err", err)
		}
	}

	go func() {
		if err := b.Run(ctx, cfg.Telegram.Timeout); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
