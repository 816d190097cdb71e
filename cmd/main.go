package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"gramalert/backend/internal/api/handler"
	"gramalert/backend/internal/feedhub"
	"gramalert/backend/internal/grievance"
	"gramalert/backend/internal/models"
	"gramalert/backend/internal/storage"
	"gramalert/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "gramalertdb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Grievance{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting GramAlert Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	// 2. Feed hub, lifecycle service, escalation sweeper. The storage
	// service doubles as the production Notifier: it publishes snapshots on
	// Redis, and every hub (this process or another) picks them up there.
	hub := feedhub.NewManagerService()
	grievanceSvc := grievance.NewService(s, s)
	sweeper := grievance.NewSweeper(s, s)
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			sweeper.Interval = d
		} else {
			log.Printf("Warning: invalid SWEEP_INTERVAL %q, using default", v)
		}
	}

	// 3. Background goroutines
	go hub.Run()
	hub.StartPubSubListener(s)
	go sweeper.Run(context.Background())

	// Optional escalation alerts to the authority's Telegram chat.
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("AUTHORITY_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatal("AUTHORITY_CHAT_ID must be a chat ID when TELEGRAM_BOT_TOKEN is set")
		}
		bot, err := telegram.NewAlertBot(token, chatID, hub)
		if err != nil {
			log.Fatalf("Failed to start Telegram alert bot: %v", err)
		}
		hub.RegisterCh <- bot
		bot.Run()
	}

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(hub, grievanceSvc, s)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)

	grievances := r.Group("/grievances", h.AuthRequired())
	grievances.GET("", h.GetAllGrievances)
	grievances.GET("/my-requests", h.GetMyGrievances)
	grievances.POST("", h.CreateGrievance)
	grievances.PUT("/:id", h.UpdateMyGrievance)
	grievances.PATCH("/:id", h.AdminRequired(), h.UpdateGrievanceStatus)

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
