package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hawker-labs/hawker/internal/config"
	"github.com/hawker-labs/hawker/internal/llm"
	"github.com/hawker-labs/hawker/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hawker",
	Short: "Hawker - Review-grounded product sales assistant",
	Long: `Hawker turns a raw Amazon review dump into a product catalog you can talk to.

It aggregates reviews per product, distills each product into a structured
record with an LLM, indexes the records into Milvus for hybrid semantic and
keyword retrieval, and answers shopping questions grounded in what reviewers
actually wrote.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file (default: ./hawker.yaml)")
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadDefault()
}

// newLLMClient builds the chat completion client from config and
// OPENAI_API_KEY.
func newLLMClient(cfg *config.Config) (*llm.OpenAIClient, error) {
	return llm.NewOpenAIClient(llm.Config{Model: cfg.LLM.Model})
}

// newStore connects to the product store, creating the collection and
// its indexes on first use.
func newStore(ctx context.Context, cfg *config.Config) (*store.MilvusStore, error) {
	embedder, err := store.NewOpenAIEmbedder(store.EmbeddingConfig{
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return store.NewMilvusStore(ctx, store.MilvusConfig{
		Address:        cfg.Milvus.Address,
		APIKey:         os.Getenv("MILVUS_API_KEY"),
		CollectionName: cfg.Milvus.Collection,
		Dimension:      cfg.Embedding.Dimension,
		M:              cfg.Milvus.M,
		EfConstruction: cfg.Milvus.EfConstruction,
		Ef:             cfg.Milvus.Ef,
		DropRatio:      cfg.Milvus.DropRatio,
	}, embedder)
}
