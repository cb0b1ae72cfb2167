package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/campuscalm/campuscalm-backend/internal/config"
	"github.com/campuscalm/campuscalm-backend/internal/database"
	"github.com/campuscalm/campuscalm-backend/internal/handlers"
	"github.com/campuscalm/campuscalm-backend/internal/middleware"
	"github.com/campuscalm/campuscalm-backend/internal/routes"
	"github.com/campuscalm/campuscalm-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (profiles, journals, exams, notifications)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions, rate limiting, insights cache)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (chat history)
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := services.EnsureChatIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB chat indexes: %v", err)
	} else {
		log.Println("✅ MongoDB chat indexes ensured")
	}

	// Chat completion client; without a key every reply is a canned fallback
	if err := services.InitChatResponder(cfg); err != nil {
		log.Printf("⚠️  WARNING: chat responder not initialized: %v", err)
		log.Println("   Chat will serve canned fallback replies only. Set AI_API_KEY to enable the companion.")
	} else {
		log.Printf("✅ Chat responder initialized (model: %s)", cfg.AIModel)
	}

	// Cloudinary for avatar uploads (optional)
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Avatar uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Avatar uploads will not be available")
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// The completion call costs money upstream; always keep its limiter on
	r.Use(middleware.ChatRateLimit)

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/profile")
	log.Println("  PUT  /api/profile")
	log.Println("  POST /api/profile/avatar")
	log.Println("  POST /api/journals")
	log.Println("  GET  /api/journals")
	log.Println("  DELETE /api/journals")
	log.Println("  POST /api/exams")
	log.Println("  GET  /api/exams")
	log.Println("  PUT  /api/exams")
	log.Println("  PUT  /api/exams/score")
	log.Println("  DELETE /api/exams")
	log.Println("  GET  /api/points")
	log.Println("  POST /api/activities")
	log.Println("  GET  /api/moods")
	log.Println("  GET  /api/insights/moods")
	log.Println("  POST /api/chat")
	log.Println("  GET  /api/chat/history")
	log.Println("  GET  /api/notifications")
	log.Println("  PUT  /api/notifications/read")

	log.Printf("🚀 CampusCalm backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
