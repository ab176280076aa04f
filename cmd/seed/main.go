package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
	"github.com/clickerrealm/community-api/internal/core/service"
	"github.com/clickerrealm/community-api/internal/infrastructure/config"
	mongodb "github.com/clickerrealm/community-api/internal/infrastructure/db/mongo"
	redisdb "github.com/clickerrealm/community-api/internal/infrastructure/db/redis"
	"github.com/clickerrealm/community-api/internal/infrastructure/genai"
	"github.com/clickerrealm/community-api/internal/infrastructure/queue"
	"github.com/clickerrealm/community-api/pkg/logger"
)

// Seeds a fresh environment: bootstrap admin, a batch of registration keys
// to hand out, and one starter post per category. Safe to re-run; existing
// records are left alone.
func main() {
	keyCount := flag.Int("keys", 5, "number of registration keys to issue")
	skipPosts := flag.Bool("skip-posts", false, "do not create starter posts")
	flag.Parse()

	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer mongoClient.Disconnect(context.Background())

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	keyRepo := mongodb.NewKeyRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		keyRepo.EnsureIndexes,
		postRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	authService := service.NewAuthService(
		userRepo, keyRepo,
		redisdb.NewSessionStore(rdb, cfg.TokenTTL),
		redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
		queue.NopRecorder{},
		service.AuthConfig{
			JWTSecret:     cfg.JWTSecret,
			TokenTTL:      cfg.TokenTTL,
			AdminUsername: cfg.Admin.Username,
			AdminPassword: cfg.Admin.Password,
		},
		log,
	)
	keyService := service.NewKeyService(keyRepo, queue.NopRecorder{}, log)
	postService := service.NewPostService(postRepo, queue.NopRecorder{}, log)
	generatorService := service.NewGeneratorService(
		genai.New(cfg.GenAI.APIKey, cfg.GenAI.Timeout, genai.WithModel(cfg.GenAI.Model)),
		log,
	)

	if err := authService.EnsureBootstrapAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin creation failed")
	}

	admin, err := userRepo.FindByUsername(ctx, cfg.Admin.Username)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin lookup failed")
	}
	log.Info().Str("username", admin.Username).Msg("bootstrap admin ready")

	for i := 0; i < *keyCount; i++ {
		key, err := keyService.Issue(ctx, admin)
		if err != nil {
			log.Fatal().Err(err).Msg("key issue failed")
		}
		log.Info().Str("key", key.Value).Msg("registration key issued")
	}

	if !*skipPosts {
		seedPosts(ctx, log, postService, generatorService, admin)
	}

	log.Info().Msg("seed completed")
}

// seedPosts creates one starter post per category. The announcement is fixed
// copy; the script and model posts come from the generator, which falls back
// to placeholder content when no API key is configured.
func seedPosts(
	ctx context.Context,
	log zerolog.Logger,
	posts ports.PostService,
	generator ports.GeneratorService,
	admin *domain.User,
) {
	inputs := []ports.CreatePostInput{{
		Title:    "Welcome to the community hub",
		Content:  "Grab a registration key from an admin, say hi, and show us your realm.",
		Category: domain.CategoryAnnouncement,
	}}

	for _, category := range []domain.PostCategory{domain.CategoryScript, domain.CategoryModel} {
		draft, err := generator.SuggestPost(ctx, category)
		if err != nil {
			log.Warn().Err(err).Str("category", string(category)).Msg("draft generation failed, skipping")
			continue
		}
		inputs = append(inputs, ports.CreatePostInput{
			Title:    draft.Title,
			Content:  draft.Content,
			Category: category,
		})
	}

	for _, input := range inputs {
		post, err := posts.Create(ctx, admin, input)
		if err != nil {
			log.Warn().Err(err).Str("title", input.Title).Msg("starter post creation failed")
			continue
		}
		log.Info().Str("id", post.ID).Str("category", string(post.Category)).Msg("starter post created")
	}
}
