package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"devconnect/adapters/event"
	"devconnect/adapters/github"
	httpAdapter "devconnect/adapters/http"
	"devconnect/adapters/media_storage"
	"devconnect/adapters/persistence"
	authUC "devconnect/internal/application/usecase/auth"
	postUC "devconnect/internal/application/usecase/post"
	profileUC "devconnect/internal/application/usecase/profile"
	"devconnect/internal/config"
	"devconnect/pkg/auth"
	"devconnect/pkg/logger"
	"devconnect/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := github.NewClient(cfg)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		appLogger.Fatal("cannot init uploader", err)
	}

	// Use cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	currentUserUseCase := authUC.NewCurrentUserUseCase(userRepo)
	uploadAvatarUseCase := authUC.NewUploadAvatarUseCase(userRepo, uploader)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, appLogger)
	githubReposUseCase := profileUC.NewGithubReposUseCase(githubClient, redisClient, cfg.Github.CacheTTL, appLogger)
	postUseCase := postUC.NewPostUseCase(postRepo, userRepo, kafkaClient, appLogger)

	// HTTP handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, currentUserUseCase, uploadAvatarUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, githubReposUseCase)
	postHandler := httpAdapter.NewPostHandler(postUseCase)

	router := httpAdapter.NewRouter(authHandler, profileHandler, postHandler, jwtSvc, appLogger)

	appLogger.Info("server starting", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
