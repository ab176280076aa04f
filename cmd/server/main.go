package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/clickerrealm/community-api/docs" // swagger docs

	"github.com/clickerrealm/community-api/internal/api"
	"github.com/clickerrealm/community-api/internal/core/service"
	"github.com/clickerrealm/community-api/internal/infrastructure/config"
	mongodb "github.com/clickerrealm/community-api/internal/infrastructure/db/mongo"
	redisdb "github.com/clickerrealm/community-api/internal/infrastructure/db/redis"
	"github.com/clickerrealm/community-api/internal/infrastructure/genai"
	"github.com/clickerrealm/community-api/internal/infrastructure/queue"
	"github.com/clickerrealm/community-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Clicker Realm Community API
// @version 1.0
// @description Invite-gated community hub for a Roblox clicker game: accounts, roles, boards, and AI-assisted content.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	keyRepo := mongodb.NewKeyRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		keyRepo.EnsureIndexes,
		postRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	sessionStore := redisdb.NewSessionStore(rdb, cfg.TokenTTL)
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	dispatcher := queue.NewAuditDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, keyRepo, sessionStore, loginLimiter, dispatcher, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
	}, log)
	keyService := service.NewKeyService(keyRepo, dispatcher, log)
	postService := service.NewPostService(postRepo, dispatcher, log)

	genClient := genai.New(cfg.GenAI.APIKey, cfg.GenAI.Timeout, genai.WithModel(cfg.GenAI.Model))
	generatorService := service.NewGeneratorService(genClient, log)

	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin creation failed")
	}

	e := api.NewRouter(api.Deps{
		AuthService:      authService,
		KeyService:       keyService,
		PostService:      postService,
		GeneratorService: generatorService,
		AuditRepo:        auditRepo,
		Mongo:            db,
		Redis:            rdb,
		Log:              log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
