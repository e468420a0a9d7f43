package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecogai/pollution-backend/internal/adapters/cache"
	"github.com/ecogai/pollution-backend/internal/adapters/database"
	"github.com/ecogai/pollution-backend/internal/adapters/events"
	"github.com/ecogai/pollution-backend/internal/adapters/media"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/advice"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/geolocation"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/identity"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/speech"
	"github.com/ecogai/pollution-backend/internal/api/handlers"
	"github.com/ecogai/pollution-backend/internal/api/middleware"
	"github.com/ecogai/pollution-backend/internal/api/routes"
	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/infrastructure/clients/awsx"
	redisclient "github.com/ecogai/pollution-backend/internal/infrastructure/clients/redis"
	"github.com/ecogai/pollution-backend/internal/infrastructure/notifications"
	"github.com/ecogai/pollution-backend/internal/infrastructure/observability"
	"github.com/ecogai/pollution-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; local runs go without a collector.
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	awsCfg, err := awsx.Load(ctx, cfg.AWS)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load AWS configuration")
	}
	clients := awsx.NewClients(awsCfg, cfg.AWS)
	logger.Info().Str("region", cfg.AWS.Region).Msg("AWS clients initialized")

	// Redis is optional; without it caching and the alert pipeline are off.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, continuing without cache and event bus")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("redis initialized")
	}

	// Repositories
	userRepo := database.NewUserAdapter(clients.Dynamo, cfg.Tables.Users)
	reportRepo := database.NewReportAdapter(clients.Dynamo, cfg.Tables.Reports)
	alertRepo := database.NewAlertAdapter(clients.Dynamo, cfg.Tables.Alerts)
	verificationRepo := database.NewVerificationAdapter(clients.Dynamo, cfg.Tables.Verifications)

	// Providers
	mediaStore := media.NewS3Store(clients.S3, cfg.Media.Bucket, "")

	var geoProvider providers.GeolocationProvider
	if cfg.Location.Provider == "aws" {
		geoProvider = geolocation.NewAWSGeolocationProvider(clients.Location, cacheProvider, cfg.Location.PlaceIndex, cfg.Location.RouteCalculator)
		logger.Info().Str("placeIndex", cfg.Location.PlaceIndex).Msg("using AWS Location Service")
	} else {
		geoProvider = geolocation.NewMockGeolocationProvider()
		logger.Info().Msg("using mock geolocation provider")
	}

	var identityProvider providers.IdentityProvider
	if cfg.Cognito.UserPoolID != "" && cfg.Cognito.ClientID != "" {
		identityProvider = identity.NewCognitoAdapter(clients.Cognito, cfg.Cognito.UserPoolID, cfg.Cognito.ClientID)
	} else {
		identityProvider = identity.NewMockAdapter()
		logger.Warn().Msg("cognito not configured, using in-memory identity provider")
	}

	adviceProvider := advice.NewBedrockAdapter(clients.Bedrock, cfg.Bedrock.ModelID)
	speechProvider := speech.NewPollyAdapter(clients.Polly, mediaStore)

	var otpSender providers.OTPSender
	if cfg.SNS.OTPTopicARN != "" {
		otpSender = notifications.NewSNSSender(clients.SNS, cfg.SNS.OTPTopicARN)
	} else {
		otpSender = notifications.NoopSender{}
		logger.Warn().Msg("sns topic not configured, verification codes are only logged")
	}

	// Services
	authService := services.NewAuthService(identityProvider, userRepo, verificationRepo, otpSender)
	profileService := services.NewProfileService(userRepo)
	reportService := services.NewReportService(reportRepo, mediaStore, eventBus, metrics)
	adviceService := services.NewAdviceService(userRepo, reportRepo, geoProvider, adviceProvider, metrics)
	voiceService := services.NewVoiceService(cfg.Agora.AppID, cfg.Agora.Certificate, reportService, adviceService, geoProvider, speechProvider)
	mediaService := services.NewMediaService(mediaStore)

	alertService := services.NewAlertService(eventBus, adviceService, reportRepo, alertRepo, speechProvider, metrics)
	if eventBus != nil {
		if err := alertService.Start(); err != nil {
			logger.Warn().Err(err).Msg("failed to start alert service")
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	reportHandler := handlers.NewReportHandler(reportService)
	locationHandler := handlers.NewLocationHandler(geoProvider)
	adviceHandler := handlers.NewAdviceHandler(adviceService)
	voiceHandler := handlers.NewVoiceHandler(voiceService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	alertHandler := handlers.NewAlertHandler(alertService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		authHandler,
		profileHandler,
		reportHandler,
		locationHandler,
		adviceHandler,
		voiceHandler,
		mediaHandler,
		alertHandler,
		cacheMiddleware,
		metrics,
		cfg.Server.AllowedOrigins,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	alertService.Stop()
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing event bus")
		}
	}
}
