package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/config"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/access"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/application"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/billing"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/dashboard"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/locker"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/member"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/membership"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/message"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/domain/staff"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/middleware"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/database"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/device"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/imaging"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/jwt"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/logger"
	pkgresponse "github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/response"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/sms"
	"github.com/PramodChhetri/Yeti-Kawasoti-sub000/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting gym API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	var deviceClient *device.Client
	if cfg.DeviceBaseURL != "" {
		deviceClient = device.NewClient(cfg.DeviceBaseURL, cfg.DeviceAPIKey,
			time.Duration(cfg.DeviceTimeoutSeconds)*time.Second)
	}

	var smsClient *sms.Client
	if cfg.SMSBaseURL != "" {
		smsClient = sms.NewClient(sms.Config{
			BaseURL:  cfg.SMSBaseURL,
			Token:    cfg.SMSToken,
			SenderID: cfg.SMSSenderID,
		})
	}

	var photoStorage *storage.S3Storage
	if cfg.S3AccessKeyID != "" {
		photoStorage, err = storage.NewS3Storage(storage.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3BucketName,
			PublicURL:       cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create photo storage")
		}
	}
	photoProcessor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	memberRepo := member.NewRepository(db)
	packageRepo := membership.NewRepository(db)
	lockerRepo := locker.NewRepository(db)
	billingRepo := billing.NewRepository(db)
	applicationRepo := application.NewRepository(db)
	staffRepo := staff.NewRepository(db)
	messageRepo := message.NewRepository(db)
	accessRepo := access.NewRepository(db)

	// ---------- WebSocket hub ----------
	checkinHub := access.NewHub(redisClient)
	go checkinHub.Run()
	defer checkinHub.Shutdown()

	// ---------- Services ----------
	coordinator := billing.NewCoordinator(billingRepo, memberRepo, packageRepo, lockerRepo,
		deviceClient, smsClient, cfg.GymName)
	memberService := member.NewService(memberRepo, deviceClient, photoStorage, photoProcessor)
	workflow := application.NewWorkflow(applicationRepo, coordinator)
	staffService := staff.NewService(staffRepo, jwtService)
	messageService := message.NewService(messageRepo, smsClient)
	accessService := access.NewService(accessRepo, checkinHub)
	dashboardService := dashboard.NewService(db, redisClient)

	// ---------- Handlers ----------
	memberHandler := member.NewHandler(memberService)
	packageHandler := membership.NewHandler(packageRepo)
	lockerHandler := locker.NewHandler(lockerRepo)
	billingHandler := billing.NewHandler(coordinator)
	applicationHandler := application.NewHandler(workflow)
	staffHandler := staff.NewHandler(staffService)
	messageHandler := message.NewHandler(messageService)
	accessHandler := access.NewHandler(accessService, checkinHub, cfg.DeviceAPIKey)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/staff", staffHandler.Routes(authMiddleware))
		r.Mount("/members", memberHandler.Routes(authMiddleware))
		r.Mount("/packages", packageHandler.Routes(authMiddleware))
		r.Mount("/lockers", lockerHandler.Routes(authMiddleware))
		r.Mount("/billing", billingHandler.Routes(authMiddleware))
		r.Mount("/applications", applicationHandler.Routes(authMiddleware))
		r.Mount("/messages", messageHandler.Routes(authMiddleware))
		r.Mount("/access", accessHandler.Routes(authMiddleware))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
