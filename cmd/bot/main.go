package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"adcheck-bot/bot"
	"adcheck-bot/config"
	"adcheck-bot/gemini"
	"adcheck-bot/handlers"
	"adcheck-bot/journal"
	"adcheck-bot/logging"
	"adcheck-bot/repository"
	"adcheck-bot/service"
	"adcheck-bot/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/bot/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	security, err := logging.NewSecurity(cfg.LogsDir)
	if err != nil {
		log.Fatal("Failed to initialize security logger:", err)
	}
	defer security.Sync()

	// Load the precedent corpus and its embedding matrix into memory
	repo, err := repository.NewPrecedentRepository(cfg.RAGDataPath, cfg.CorpusEmbeddingsPath)
	if err != nil {
		log.Fatal("Failed to load precedent corpus:", err)
	}
	log.Printf("Precedent corpus loaded: %d cases, %d-dimensional embeddings", repo.Count(), repo.Dimensions())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.PrimaryGenerativeModel, cfg.FallbackGenerativeModel, cfg.EmbeddingModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}
	defer geminiClient.Close()

	store, err := storage.NewStorage(storage.Config{
		Type:      storage.Type(cfg.StorageType),
		LocalPath: cfg.StorageLocalPath,
		S3Bucket:  cfg.S3Bucket,
		S3Region:  cfg.S3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	archive, err := storage.NewArchive(store, filepath.Join(cfg.LogsDir, "file_counter.txt"))
	if err != nil {
		log.Fatal("Failed to initialize creative archive:", err)
	}

	usage, err := journal.Open(cfg.JournalPath, logger)
	if err != nil {
		log.Fatal("Failed to open usage journal:", err)
	}
	defer usage.Close()

	prompts, err := service.LoadPrompts(cfg.Prompt1Path, cfg.Prompt2Path)
	if err != nil {
		log.Fatal("Failed to load prompts:", err)
	}

	analyzer := service.NewAnalyzer(
		service.WithPrecedents(repo),
		service.WithGemini(geminiClient),
		service.WithPrompts(prompts),
		service.WithTopN(cfg.RAGTopN),
		service.WithJournal(usage),
		service.WithArchive(archive),
		service.WithLogger(logger),
	)

	// Ops HTTP API runs alongside the bot
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, repo, cfg)
	r := handlers.Router(analyzeHandler)
	go func() {
		addr := ":" + strconv.Itoa(cfg.Port)
		log.Printf("HTTP API starting on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatal("Failed to start HTTP API:", err)
		}
	}()

	b, err := bot.New(cfg.TelegramBotToken, analyzer,
		bot.WithJournal(usage),
		bot.WithLogger(logger),
		bot.WithSecurityLogger(security),
		bot.WithAdmin(cfg.AdminUserID),
		bot.WithChannelURL(cfg.TelegramChannelURL),
	)
	if err != nil {
		log.Fatal("Failed to initialize Telegram bot:", err)
	}

	log.Println("Bot started, polling for updates")
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("Bot stopped:", err)
	}
	log.Println("Bot stopped")
}
