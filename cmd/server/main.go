package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"quizmaster/internal/attempt"
	"quizmaster/internal/auth"
	"quizmaster/internal/catalog"
	"quizmaster/internal/models"
	"quizmaster/internal/stats"
	"quizmaster/pkg/cache"
	"quizmaster/pkg/config"
	"quizmaster/pkg/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(&database.Config{
		Driver:     cfg.DBDriver,
		SQLitePath: cfg.SQLitePath,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Chapter{},
		&models.Quiz{},
		&models.Question{},
		&models.Score{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Attempt-start timestamps live in Redis with a TTL
	attemptStarts := cache.NewRedisAttemptStore(cfg.RedisAddr)

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	attemptRepo := attempt.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// Initialize services
	authService := auth.NewService(authRepo, cfg.JWTSecret)
	catalogService := catalog.NewService(catalogRepo)
	attemptService := attempt.NewService(attemptRepo, attemptStarts)
	statsService := stats.NewService(statsRepo)

	// First-boot admin bootstrap
	if err := authService.EnsureAdmin(); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	attemptHandler := attempt.NewHandler(attemptService)
	statsHandler := stats.NewHandler(statsService)

	// Setup router
	router := mux.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Auth routes - no gate
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("GET")

	// Admin routes
	adminAPI := router.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(auth.RequireAdmin(cfg.JWTSecret))
	adminAPI.HandleFunc("/dashboard", statsHandler.AdminDashboard).Methods("GET")
	adminAPI.HandleFunc("/subjects", catalogHandler.ListSubjects).Methods("GET")
	adminAPI.HandleFunc("/subjects", catalogHandler.CreateSubject).Methods("POST", "OPTIONS")
	adminAPI.HandleFunc("/subjects/{subjectID}", catalogHandler.DeleteSubject).Methods("DELETE")
	adminAPI.HandleFunc("/subjects/{subjectID}/chapters", catalogHandler.ListChapters).Methods("GET")
	adminAPI.HandleFunc("/chapters", catalogHandler.CreateChapter).Methods("POST", "OPTIONS")
	adminAPI.HandleFunc("/chapters/{chapterID}", catalogHandler.DeleteChapter).Methods("DELETE")
	adminAPI.HandleFunc("/chapters/{chapterID}/quizzes", catalogHandler.ListQuizzes).Methods("GET")
	adminAPI.HandleFunc("/chapters/{chapterID}/quizzes", catalogHandler.CreateQuiz).Methods("POST", "OPTIONS")
	adminAPI.HandleFunc("/quizzes/{quizID}", catalogHandler.DeleteQuiz).Methods("DELETE")
	adminAPI.HandleFunc("/users", catalogHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/users/{userID}", catalogHandler.DeleteUser).Methods("DELETE")
	adminAPI.HandleFunc("/search", catalogHandler.Search).Methods("GET")

	// Authenticated user routes
	userAPI := router.PathPrefix("/api").Subrouter()
	userAPI.Use(auth.RequireUser(cfg.JWTSecret))
	userAPI.HandleFunc("/user/dashboard", statsHandler.UserDashboard).Methods("GET")
	userAPI.HandleFunc("/profile", authHandler.Profile).Methods("GET")
	userAPI.HandleFunc("/subjects", catalogHandler.ListSubjects).Methods("GET")
	userAPI.HandleFunc("/subjects/{subjectID}/chapters", catalogHandler.ListChapters).Methods("GET")
	userAPI.HandleFunc("/chapters/{chapterID}/quizzes", catalogHandler.ListQuizzes).Methods("GET")
	userAPI.HandleFunc("/quiz/{quizID}/start", attemptHandler.Start).Methods("POST", "OPTIONS")
	userAPI.HandleFunc("/quiz/{quizID}/submit", attemptHandler.Submit).Methods("POST", "OPTIONS")
	userAPI.HandleFunc("/results", attemptHandler.History).Methods("GET")
	userAPI.HandleFunc("/results/{scoreID}", attemptHandler.Result).Methods("GET")

	// Setup server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
