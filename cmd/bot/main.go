package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"python-tutor-bot/internal/application/usecases"
	sessiondomain "python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/infrastructure/filesystem"
	"python-tutor-bot/internal/infrastructure/localization"
	"python-tutor-bot/internal/infrastructure/persistence"
	"python-tutor-bot/internal/infrastructure/sandbox"
	"python-tutor-bot/internal/infrastructure/telegram"
	"python-tutor-bot/internal/interfaces/telegram/handlers"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	dbPath := envOr("DB_PATH", "tutor.db")
	curriculumPath := envOr("CURRICULUM_PATH", "curriculum.json")

	// Initialize database
	db, err := persistence.NewSQLiteDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := persistence.NewUserRepository(db)
	curriculumRepo := persistence.NewCurriculumRepository(db)

	// Load and seed the curriculum
	curriculumLoader := filesystem.NewCurriculumLoader()
	lessons, quizzes, err := curriculumLoader.LoadFromFile(curriculumPath)
	if err != nil {
		log.Fatalf("Failed to load curriculum: %v", err)
	}

	if err := curriculumRepo.SaveBatch(context.Background(), lessons, quizzes); err != nil {
		log.Fatalf("Failed to seed curriculum: %v", err)
	}
	log.Printf("Seeded %d lessons (%d quizzes)", len(lessons), len(quizzes))

	// Sandbox executor
	sandboxConfig := sandbox.DefaultConfig()
	sandboxConfig.PythonBin = envOr("PYTHON_BIN", sandboxConfig.PythonBin)
	if secs := envInt("SANDBOX_TIMEOUT_SECONDS", 0); secs > 0 {
		sandboxConfig.Timeout = time.Duration(secs) * time.Second
		sandboxConfig.MaxCPUSeconds = secs
	}
	if budget := envInt("SANDBOX_MAX_OUTPUT_BYTES", 0); budget > 0 {
		sandboxConfig.MaxOutputBytes = budget
	}
	executor := sandbox.NewExecutor(sandboxConfig)

	// Initialize use cases
	texts := localization.NewService()
	sessions := sessiondomain.NewStore()
	userUseCase := usecases.NewUserUseCase(userRepo)
	tutorUseCase := usecases.NewTutorUseCase(userUseCase, userRepo, curriculumRepo,
		sessions, texts, executor, sandboxConfig.Timeout)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(botToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := bot.SetupCommands(); err != nil {
		log.Printf("Warning: Failed to setup bot commands: %v", err)
		log.Printf("The bot will still work, but commands won't show in Telegram's menu")
	}

	// Initialize handler and reminder service
	handler := handlers.NewBotHandler(bot, tutorUseCase, texts)
	reminderUseCase := usecases.NewReminderUseCase(bot, userRepo, curriculumRepo, texts)

	log.Printf("Starting Python Tutor Bot...")

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go reminderUseCase.StartReminderService(ctx)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Println("Shutting down...")
		cancel()
	}()

	if err := handler.Start(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
