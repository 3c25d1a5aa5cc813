package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/funildigital/prelander/internal/catalog"
	"github.com/funildigital/prelander/internal/config"
	"github.com/funildigital/prelander/internal/http_api"
	"github.com/funildigital/prelander/internal/ledger"
	"github.com/funildigital/prelander/internal/notificator"
	"github.com/funildigital/prelander/internal/repository"
	"github.com/funildigital/prelander/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "prelander",
		Usage: "Prelander is a landing page and one-time token redirect service",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "HTTP listening port"},
			&cli.StringFlag{Name: "database", Aliases: []string{"d"}, Usage: "Path to the SQLite token database"},
			&cli.StringFlag{Name: "public", Aliases: []string{"s"}, Usage: "Path to the public assets directory"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
			&cli.StringFlag{Name: "telegram-bot-token", Aliases: []string{"t"}, Usage: "Telegram bot token for purchase notifications"},
			&cli.StringFlag{Name: "telegram-chat-id", Aliases: []string{"c"}, Usage: "Telegram chat to receive purchase notifications"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	// Override with flags if set
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("database") {
		cfg.DatabasePath = c.String("database")
	}
	if c.IsSet("public") {
		cfg.PublicDir = c.String("public")
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}
	if c.IsSet("telegram-bot-token") {
		cfg.TelegramBotToken = c.String("telegram-bot-token")
	}
	if c.IsSet("telegram-chat-id") {
		cfg.TelegramChatID = c.String("telegram-chat-id")
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := repository.NewSQLiteDB(cfg.DatabasePath, log)
	if err != nil {
		return fmt.Errorf("failed to open token database: %v", err)
	}
	defer db.Close()

	// Initialize catalog and token ledger
	modelCatalog := catalog.New(cfg.PublicDir, log)
	tokenLedger := ledger.NewLedger(db, log)

	// Initialize notificator; Telegram delivery is optional
	var telegram *notificator.TelegramNotificator
	if cfg.TelegramBotToken != "" {
		telegram, err = notificator.NewTelegramNotificator(log, cfg.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram notificator: %v", err)
		}
	}
	notif := notificator.NewNotificator(log, telegram, cfg.TelegramChatID)

	// Initialize API server
	apiServer := http_api.NewHTTPServer(tokenLedger, modelCatalog, notif, cfg, log)

	go apiServer.Start()

	// Wait for an interrupt and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return apiServer.Shutdown()
}
