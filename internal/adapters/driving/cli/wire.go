package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/config/file"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/embedding/cached"
	ollamaembed "github.com/talenta-labs/matcha-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/talenta-labs/matcha-cli/internal/adapters/driven/embedding/openai"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/index"
	ollamallm "github.com/talenta-labs/matcha-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/talenta-labs/matcha-cli/internal/adapters/driven/llm/openai"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/storage/memory"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/storage/sqlite"
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
	"github.com/talenta-labs/matcha-cli/internal/core/services"
	"github.com/talenta-labs/matcha-cli/internal/logger"
)

// DefaultEmbeddingDims is the vector size for the default OpenAI model.
const DefaultEmbeddingDims = 1536

// errNoEmbeddingProvider guides first-time users towards configuration.
var errNoEmbeddingProvider = fmt.Errorf(
	"no embedding provider configured: set embedding.api_key in ~/.matcha/config.toml or export OPENAI_API_KEY: %w",
	domain.ErrEmbeddingUnavailable)

// Dependencies is the wired service graph handed to the commands.
type Dependencies struct {
	Ingest    *services.IngestService
	Recommend *services.RecommendService
	Config    driven.ConfigStore
	Store     driven.DocumentStore
	Index     driven.VectorIndex
}

// wireServices builds the full dependency graph from the config file:
// provider adapters, store, index, cache and the core services. The
// index is rebuilt from the store so searches see every persisted
// document immediately.
func wireServices(ctx context.Context, configDir string) (*Dependencies, error) {
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	completion := buildCompletion(cfg)

	store, err := sqlite.NewStore(cfg.GetString(file.KeyStorageDataDir))
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	cache := memory.NewEmbeddingCache()
	cachedEmbedder := cached.NewEmbeddingService(embedder, cache)

	idx, err := buildIndex(ctx, cfg, store, embedder.Dimensions(), cache)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}

	ranker := services.NewRanker(cfg.GetFloat(file.KeyRecommendThreshold))

	return &Dependencies{
		Ingest:    services.NewIngestService(store, idx, cachedEmbedder, cache),
		Recommend: services.NewRecommendService(store, idx, cachedEmbedder, completion, ranker),
		Config:    cfg,
		Store:     store,
		Index:     idx,
	}, nil
}

// buildEmbedder selects the embedding provider from config. OpenAI is
// the default when an API key is available; Ollama requires opting in.
func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString(file.KeyEmbeddingProvider)

	switch provider {
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:           cfg.GetString(file.KeyEmbeddingBaseURL),
			Model:             cfg.GetString(file.KeyEmbeddingModel),
			Dimensions:        cfg.GetInt(file.KeyEmbeddingDims),
			RequestsPerSecond: cfg.GetFloat(file.KeyEmbeddingRPS),
		}), nil

	case "openai", "":
		apiKey := cfg.GetString(file.KeyEmbeddingAPIKey)
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, errNoEmbeddingProvider
		}
		dims := cfg.GetInt(file.KeyEmbeddingDims)
		if dims == 0 {
			dims = DefaultEmbeddingDims
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.GetString(file.KeyEmbeddingBaseURL),
			Model:             cfg.GetString(file.KeyEmbeddingModel),
			Dimensions:        dims,
			RequestsPerSecond: cfg.GetFloat(file.KeyEmbeddingRPS),
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// buildCompletion selects the completion provider. A nil return is fine:
// recommendations degrade to ranked results without explanations.
func buildCompletion(cfg driven.ConfigStore) driven.CompletionService {
	provider := cfg.GetString(file.KeyCompletionProvider)

	switch provider {
	case "ollama":
		return ollamallm.NewCompletionService(ollamallm.Config{
			BaseURL:           cfg.GetString(file.KeyCompletionBaseURL),
			Model:             cfg.GetString(file.KeyCompletionModel),
			RequestsPerSecond: cfg.GetFloat(file.KeyCompletionRPS),
		})

	case "openai", "":
		apiKey := cfg.GetString(file.KeyCompletionAPIKey)
		if apiKey == "" {
			apiKey = cfg.GetString(file.KeyEmbeddingAPIKey)
		}
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			logger.Debug("no completion API key, explanations disabled")
			return nil
		}
		svc, err := openaillm.NewCompletionService(openaillm.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.GetString(file.KeyCompletionBaseURL),
			Model:             cfg.GetString(file.KeyCompletionModel),
			RequestsPerSecond: cfg.GetFloat(file.KeyCompletionRPS),
		})
		if err != nil {
			logger.Warn("completion provider unavailable: %v", err)
			return nil
		}
		return svc

	default:
		logger.Warn("unknown completion provider %q, explanations disabled", provider)
		return nil
	}
}

// buildIndex creates the vector index and repopulates it from the store.
// The embedding cache is warmed at the same time so re-ingesting any
// persisted document skips the provider.
func buildIndex(
	ctx context.Context,
	cfg driven.ConfigStore,
	store driven.DocumentStore,
	dimensions int,
	cache driven.EmbeddingCache,
) (driven.VectorIndex, error) {
	ivfCfg := index.DefaultIVFConfig(dimensions)
	if lists := cfg.GetInt(file.KeyIndexLists); lists > 0 {
		ivfCfg.Lists = lists
	}
	if probes := cfg.GetInt(file.KeyIndexProbes); probes > 0 {
		ivfCfg.Probes = probes
	}
	if threshold := cfg.GetInt(file.KeyIndexTrainThreshold); threshold > 0 {
		ivfCfg.TrainThreshold = threshold
	}
	idx := index.NewIVFIndex(ivfCfg)

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuilding index: %w", err)
	}
	for i := range docs {
		if err := idx.Add(ctx, docs[i].ID, docs[i].Embedding); err != nil {
			return nil, fmt.Errorf("indexing document %s: %w", docs[i].ID, err)
		}
		cache.Put(docs[i].ContentHash, docs[i].Embedding)
	}
	logger.Debug("index rebuilt with %d documents", len(docs))

	return idx, nil
}
