package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"frictlistAPI/config"
	"frictlistAPI/handlers"
	"frictlistAPI/internal/auth"
	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/logger"
	"frictlistAPI/internal/push"
	"frictlistAPI/internal/store/postgres"
	"frictlistAPI/internal/types/user"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

var (
	cfg            config.Config
	dbPool         *pgxpool.Pool
	tokenService   *auth.TokenService
	dispatcher     *services.PushDispatcher
	userService    *services.UserService
	mateService    *services.MateService
	frictService   *services.FrictService
	feedService    *services.FeedService
	shareService   *services.ShareService
)

func init() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("No .env file found")
	}

	cfg = config.Load()
	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSize,
		MaxBackups: cfg.LogBackups,
		MaxAgeDays: cfg.LogMaxAge,
	})

	if cfg.JWTSecret == "" {
		logger.Fatalf("JWT_SECRET environment variable is not set")
	}
	tokenService = auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to parse database URL: %v", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatalf("Failed to create connection pool: %v", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	logger.Infof("Successfully connected to Postgres")

	users := postgres.NewUsers(dbPool)
	mates := postgres.NewMates(dbPool)
	requests := postgres.NewRequests(dbPool)
	fricts := postgres.NewFricts(dbPool)
	shares := postgres.NewShares(dbPool)
	guard := identity.NewGuard(postgres.New(dbPool))

	dispatcher = services.NewPushDispatcher(users, mates, requests, fricts)

	if cfg.APNSCertFile != "" && cfg.APNSKeyFile != "" {
		apnsSender, err := push.NewAPNSSender(cfg.APNSGateway, cfg.APNSCertFile, cfg.APNSKeyFile)
		if err != nil {
			logger.Warnf("Could not initialize APNS: %v", err)
		} else {
			dispatcher.SetProvider(user.PlatformIOS, apnsSender)
			logger.Infof("APNS push provider initialized successfully")
		}
	}

	fcmSender, err := push.NewFCMSender(cfg.FCMCredentialsFile)
	if err != nil {
		logger.Warnf("Could not initialize FCM: %v", err)
	} else {
		dispatcher.SetProvider(user.PlatformAndroid, fcmSender)
		logger.Infof("FCM push provider initialized successfully")
	}

	userService = services.NewUserService(users)
	mateService = services.NewMateService(guard, mates, requests, dispatcher)
	frictService = services.NewFrictService(guard, fricts, dispatcher)
	feedService = services.NewFeedService(guard, users, mates, requests, fricts)
	shareService = services.NewShareService(guard, shares)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		logger.Infof("Closing database connection pool...")
		dbPool.Close()
		logger.Sync()
	}()

	authHandler := handlers.NewAuthHandler(userService, tokenService)
	userHandler := handlers.NewUserHandler(userService)
	mateHandler := handlers.NewMateHandler(mateService)
	frictHandler := handlers.NewFrictHandler(frictService)
	feedHandler := handlers.NewFeedHandler(feedService)
	shareHandler := handlers.NewShareHandler(shareService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "frictlist-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods("POST")
	api.HandleFunc("/auth/signin", authHandler.SignIn).Methods("POST")
	api.HandleFunc("/android-app-list", shareHandler.JoinAndroidList).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(tokenService))

	protected.HandleFunc("/users/me", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/users/device-token", userHandler.UpdateDeviceToken).Methods("PUT")
	protected.HandleFunc("/users/search", userHandler.SearchMates).Methods("GET")

	protected.HandleFunc("/mates", mateHandler.AddMate).Methods("POST")
	protected.HandleFunc("/mates/{id}", mateHandler.UpdateMate).Methods("PUT")
	protected.HandleFunc("/mates/{id}", mateHandler.RemoveMate).Methods("DELETE")

	protected.HandleFunc("/requests", mateHandler.SendRequest).Methods("POST")
	protected.HandleFunc("/requests/{id}", mateHandler.RespondRequest).Methods("PUT")

	protected.HandleFunc("/fricts", frictHandler.AddFrict).Methods("POST")
	protected.HandleFunc("/fricts/{id}", frictHandler.UpdateFrict).Methods("PUT")
	protected.HandleFunc("/fricts/{id}", frictHandler.RemoveFrict).Methods("DELETE")

	protected.HandleFunc("/frictlist", feedHandler.GetFrictlist).Methods("GET")
	protected.HandleFunc("/notifications", feedHandler.GetNotifications).Methods("GET")

	protected.HandleFunc("/shares", shareHandler.AddShare).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	logger.Infof("Got signal: %v", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}

	dispatcher.Stop()

	logger.Infof("Server shutdown complete")
}
