package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "campus-community-backend/internal/api/http"
	"campus-community-backend/internal/config"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/repository/postgres"
	"campus-community-backend/internal/security"
	"campus-community-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Community Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddr)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.CircleRepository, emailSvc)
	circleSvc := service.NewCircleService(store.CircleRepository, store.CircleMemberRepository, store.UserRepository)
	boardSvc := service.NewBoardService(store.BoardRepository, store.CircleRepository, store.UserRepository)
	postSvc := service.NewPostService(
		store.PostRepository,
		store.BoardRepository,
		store.CircleRepository,
		store.CircleMemberRepository,
		store.UserRepository,
		store.CommentRepository,
		store.FormRepository,
	)
	commentSvc := service.NewCommentService(
		store.CommentRepository,
		store.PostRepository,
		store.BoardRepository,
		store.CircleRepository,
		store.CircleMemberRepository,
		store.UserRepository,
	)
	childCommentSvc := service.NewChildCommentService(
		store.ChildCommentRepository,
		store.CommentRepository,
		store.PostRepository,
		store.BoardRepository,
		store.CircleRepository,
		store.CircleMemberRepository,
		store.UserRepository,
	)
	formSvc := service.NewFormService(
		store.FormRepository,
		store.CircleRepository,
		store.UserRepository,
		store.CouncilFeeRepository,
		service.NewReplyExporter(),
	)
	lockerSvc := service.NewLockerService(store.LockerRepository)

	// Set up HTTP server
	server := httpapi.NewServer(
		authSvc,
		userSvc,
		circleSvc,
		boardSvc,
		postSvc,
		commentSvc,
		childCommentSvc,
		formSvc,
		lockerSvc,
		tokenManager,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server.Router()); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
