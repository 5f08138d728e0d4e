package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"rag-bot/internal/blob"
	"rag-bot/internal/cache"
	"rag-bot/internal/config"
	"rag-bot/internal/embeddings"
	"rag-bot/internal/localdocs"
	"rag-bot/internal/logger"
)

// Deps bundles common runtime dependencies for the service binaries.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Blob     blob.Store
	Embedder embeddings.Embedder
	Cache    cache.Cache
	Docs     *localdocs.Folder
}

// Build loads env, config, and shared components.
func Build(ctx context.Context) (Deps, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Deps{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	bs, err := buildBlob(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	embedder, err := buildEmbedder(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return Deps{
		Config:   cfg,
		Log:      log,
		Blob:     bs,
		Embedder: embedder,
		Cache:    c,
		Docs:     localdocs.New(cfg.DocsDir),
	}, nil
}

func buildBlob(ctx context.Context, cfg config.Config, log *slog.Logger) (blob.Store, error) {
	switch cfg.BlobProvider {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME is required when BLOB_PROVIDER=s3")
		}
		st, err := blob.NewS3(ctx, blob.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.AWSRegion,
			Endpoint:     cfg.S3Endpoint,
			UsePathStyle: cfg.S3UsePathStyle,
			MaxKeys:      int32(cfg.S3ListMaxKeys),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 store: %w", err)
		}
		log.Info("using S3 blob store", "bucket", cfg.S3Bucket, "region", cfg.AWSRegion)
		return st, nil
	default:
		return nil, fmt.Errorf("invalid BLOB_PROVIDER: %s (valid option: s3)", cfg.BlobProvider)
	}
}

func buildEmbedder(cfg config.Config, log *slog.Logger) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=openai")
		}
		embedder, err := embeddings.NewOpenAIEmbedder(cfg.OpenAIKey, openai.EmbeddingModel(cfg.EmbeddingModel), cfg.EmbeddingDim)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI embedder: %w", err)
		}
		log.Info("using OpenAI embedder", "model", cfg.EmbeddingModel)
		return embedder, nil
	case "stub":
		log.Info("using stub embedder", "dim", cfg.EmbeddingDim)
		return embeddings.StubEmbedder{Dim: cfg.EmbeddingDim}, nil
	default:
		return nil, fmt.Errorf("invalid EMBEDDING_PROVIDER: %s (valid options: openai, stub)", cfg.EmbeddingProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
		log.Info("using Redis embedding cache", "addr", cfg.RedisAddr)
		return c, nil
	case "noop":
		return cache.NewNoOpCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}
