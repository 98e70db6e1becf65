package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weight-circle-backend/internal/config"
	"weight-circle-backend/internal/handlers"
	"weight-circle-backend/internal/middleware"
	"weight-circle-backend/internal/repository"
	"weight-circle-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	if err := repository.RunMigrations(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// Initialize services
	profileService := services.NewProfileService(profileRepo, cfg.JWT.Secret)
	groupService := services.NewGroupService(groupRepo)
	wsHub := services.NewWSHub(groupRepo)
	weightService := services.NewWeightService(weightRepo, groupRepo, profileRepo, wsHub)
	progressService := services.NewProgressService(groupRepo, weightRepo, profileRepo, groupService)
	messageService := services.NewMessageService(messageRepo, groupService, wsHub)

	avatarService, err := services.NewAvatarService(
		profileRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create avatar service")
	}

	// Delivery channels are optional; the reminder run skips what is not
	// configured.
	var pushService *services.PushService
	if cfg.APNS.CertPath != "" {
		pushService, err = services.NewPushService(cfg.APNS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create push service")
		}
	} else {
		log.Warn().Msg("APNS not configured, reminder pushes disabled")
	}

	var emailService *services.EmailService
	if cfg.Email.APIKey != "" {
		emailService = services.NewEmailService(cfg.Email.APIKey, cfg.Email.From)
	} else {
		log.Warn().Msg("Email not configured, reminder emails disabled")
	}

	reminderService := services.NewReminderService(
		reminderRepo, profileRepo, groupRepo, pushService, emailService, wsHub,
	)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, avatarService)
	weightHandler := handlers.NewWeightHandler(weightService)
	groupHandler := handlers.NewGroupHandler(groupService, wsHub)
	progressHandler := handlers.NewProgressHandler(progressService, reminderService)
	messageHandler := handlers.NewMessageHandler(messageService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, profileService, groupService, messageService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/profiles", profileHandler.CreateProfile)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(profileService))

			r.Get("/profiles/me", profileHandler.GetMe)
			r.Patch("/profiles/me", profileHandler.UpdateMe)
			r.Post("/profiles/me/avatar", profileHandler.UploadAvatar)

			r.Post("/weights", weightHandler.CreateEntry)
			r.Get("/weights", weightHandler.ListEntries)
			r.Get("/weights/health", weightHandler.HealthMetrics)

			r.Post("/groups", groupHandler.CreateGroup)
			r.Post("/groups/join", groupHandler.JoinGroup)
			r.Get("/groups", groupHandler.ListGroups)
			r.Get("/groups/{group_id}", groupHandler.GetGroup)
			r.Delete("/groups/{group_id}/members/me", groupHandler.LeaveGroup)
			r.Post("/groups/{group_id}/teams", groupHandler.CreateTeam)
			r.Get("/groups/{group_id}/teams", groupHandler.ListTeams)

			r.Get("/groups/{group_id}/progress", progressHandler.MemberProgress)
			r.Get("/groups/{group_id}/teams/progress", progressHandler.TeamProgress)
			r.Get("/groups/{group_id}/settlement", progressHandler.Settlement)

			r.Get("/groups/{group_id}/messages", messageHandler.ListMessages)
			r.Post("/groups/{group_id}/messages", messageHandler.PostMessage)

			r.Post("/admin/reminders/run", progressHandler.RunReminders)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
