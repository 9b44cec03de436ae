package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/ravel57/grosze-bot/internal/bot"
	"github.com/ravel57/grosze-bot/internal/config"
	"github.com/ravel57/grosze-bot/internal/db"
	"github.com/ravel57/grosze-bot/internal/dialog"
	"github.com/ravel57/grosze-bot/internal/repo"
	"github.com/ravel57/grosze-bot/migrations"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (long polling)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("bot init: %w", err)
	}

	engine := dialog.New(repo.NewUsers(pool), repo.NewContacts(pool), repo.NewTransfers(pool), log)
	h := bot.NewHandler(api, engine, log)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	log.Info("bot started", "username", api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown")
			return nil
		case upd := <-updates:
			// Updates for different users run in parallel; the engine
			// serializes per user.
			go h.HandleUpdate(ctx, upd)
		}
	}
}
