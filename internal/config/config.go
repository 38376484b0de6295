// Package config loads hawker settings from an optional YAML file with
// an environment overlay for connection details.
//
// API keys are never read from the file. The OpenAI client reads
// OPENAI_API_KEY, the embedder reads EMBEDDING_API_KEY (falling back to
// OPENAI_API_KEY), and the store reads MILVUS_API_KEY, all at
// construction time.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "hawker.yaml"

// LLMConfig configures the chat completion model.
type LLMConfig struct {
	Model string `yaml:"model"`
}

// EmbeddingConfig configures the model backing dense retrieval.
type EmbeddingConfig struct {
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// MilvusConfig contains connection and index settings for the product store.
type MilvusConfig struct {
	Address        string  `yaml:"address"`
	Collection     string  `yaml:"collection"`
	M              int     `yaml:"m"`
	EfConstruction int     `yaml:"ef_construction"`
	Ef             int     `yaml:"ef"`
	DropRatio      float64 `yaml:"drop_ratio"`
}

// IngestConfig controls review aggregation and summarization.
type IngestConfig struct {
	Products          int `yaml:"products"`
	ReviewsPerProduct int `yaml:"reviews_per_product"`
	BatchSize         int `yaml:"batch_size"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
	MaxTokens         int `yaml:"max_tokens"`
}

// ChatConfig controls retrieval-augmented answering.
type ChatConfig struct {
	TopK         int     `yaml:"topk"`
	Temperature  float64 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"`
	HistoryTurns int     `yaml:"history_turns"`
}

// Config is the root configuration structure.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Milvus    MilvusConfig    `yaml:"milvus"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Chat      ChatConfig      `yaml:"chat"`
}

// Load reads a config from the given path. A missing file is not an
// error: defaults are returned so the CLI runs with no config at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault loads ./hawker.yaml if present, defaults otherwise.
func LoadDefault() (*Config, error) {
	return Load(DefaultPath)
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = 1536
	}
	if cfg.Milvus.Address == "" {
		cfg.Milvus.Address = "localhost:19530"
	}
	if cfg.Milvus.Collection == "" {
		cfg.Milvus.Collection = "hawker_products"
	}
	if cfg.Milvus.M == 0 {
		cfg.Milvus.M = 16
	}
	if cfg.Milvus.EfConstruction == 0 {
		cfg.Milvus.EfConstruction = 256
	}
	if cfg.Milvus.Ef == 0 {
		cfg.Milvus.Ef = 64
	}
	if cfg.Milvus.DropRatio == 0 {
		cfg.Milvus.DropRatio = 0.2
	}
	if cfg.Ingest.Products == 0 {
		cfg.Ingest.Products = 50
	}
	if cfg.Ingest.ReviewsPerProduct == 0 {
		cfg.Ingest.ReviewsPerProduct = 20
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 100
	}
	if cfg.Ingest.MaxTokens == 0 {
		cfg.Ingest.MaxTokens = 1000
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = 3
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.7
	}
	if cfg.Chat.HistoryTurns == 0 {
		cfg.Chat.HistoryTurns = 12
	}
}

// applyEnv overlays connection settings from the environment, matching
// the variables the store reads.
func applyEnv(cfg *Config) {
	if addr := os.Getenv("MILVUS_ADDRESS"); addr != "" {
		cfg.Milvus.Address = addr
	}
	if coll := os.Getenv("MILVUS_COLLECTION"); coll != "" {
		cfg.Milvus.Collection = coll
	}
}
