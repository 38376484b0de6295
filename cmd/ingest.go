package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hawker-labs/hawker/internal/pipeline"
	"github.com/hawker-labs/hawker/internal/review"
	"github.com/hawker-labs/hawker/internal/summary"
)

var (
	productLimit   int
	reviewsPerItem int
	batchSize      int
	recreate       bool
	exportFile     string
	requestsPerMin int
	ingestVerbose  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [reviews.csv]",
	Short: "Summarize a review dump and index it for retrieval",
	Long: `Ingest an Amazon review CSV into the product store.

This command:
1. Groups reviews by product, keeping the first N distinct products
2. Distills each product's most recent reviews into a structured record (OpenAI)
3. Indexes the records into the vector store in batches (Milvus)

Products whose summarization fails are logged and skipped; the rest of the
batch continues. An indexing failure aborts the remaining batches.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for summarization and embeddings
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Examples:
  hawker ingest reviews.csv
  hawker ingest reviews.csv --products 10 --rpm 30
  hawker ingest reviews.csv --recreate --export records.json --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().IntVar(&productLimit, "products", 50, "Maximum number of distinct products to ingest")
	ingestCmd.Flags().IntVar(&reviewsPerItem, "reviews", 20, "Most recent reviews summarized per product")
	ingestCmd.Flags().IntVar(&batchSize, "batch", 100, "Records per insert batch")
	ingestCmd.Flags().BoolVar(&recreate, "recreate", false, "Drop and recreate the collection before indexing")
	ingestCmd.Flags().StringVar(&exportFile, "export", "", "Also write summarized records to a JSON file: --export <filename>")
	ingestCmd.Flags().IntVar(&requestsPerMin, "rpm", 0, "Throttle summarization requests per minute (0 = unthrottled)")
	ingestCmd.Flags().BoolVar(&ingestVerbose, "verbose", false, "Show detailed progress")
}

func runIngest(cmd *cobra.Command, args []string) error {
	csvPath := args[0]
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("products") {
		cfg.Ingest.Products = productLimit
	}
	if cmd.Flags().Changed("reviews") {
		cfg.Ingest.ReviewsPerProduct = reviewsPerItem
	}
	if cmd.Flags().Changed("batch") {
		cfg.Ingest.BatchSize = batchSize
	}
	if cmd.Flags().Changed("rpm") {
		cfg.Ingest.RequestsPerMinute = requestsPerMin
	}

	// Styling
	var (
		contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
		successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
		errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	)

	// Step 1: Load the review dump
	if ingestVerbose {
		fmt.Println(contextStyle.Render("→ Loading reviews..."))
	}
	reviews, err := review.LoadCSV(csvPath)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	if ingestVerbose {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Loaded %d reviews", len(reviews))))
	}

	// Step 2: Assemble the pipeline
	client, err := newLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	summarizer, err := summary.NewSummarizer(client, summary.Config{
		MaxReviews:        cfg.Ingest.ReviewsPerProduct,
		MaxTokens:         cfg.Ingest.MaxTokens,
		RequestsPerMinute: cfg.Ingest.RequestsPerMinute,
	})
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if ingestVerbose {
		fmt.Println(contextStyle.Render("→ Connecting to vector store..."))
	}
	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer st.Close()

	if recreate {
		if err := st.Recreate(ctx); err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		if ingestVerbose {
			fmt.Println(successStyle.Render("✓ Recreated collection " + st.Collection()))
		}
	}

	pipe, err := pipeline.NewPipeline(summarizer, st, pipeline.Config{
		Products:  cfg.Ingest.Products,
		BatchSize: cfg.Ingest.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	// Step 3: Run it
	result, runErr := pipe.Run(ctx, reviews)

	// Export whatever summarized cleanly, even if indexing failed.
	if exportFile != "" && len(result.Records) > 0 {
		if err := handleExport(result.Records, exportFile); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), runErr)
	}

	// Final tally
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Ingested %d products (%d summarized, %d skipped)",
		result.Inserted, len(result.Records), len(result.Failures))))
	for _, f := range result.Failures {
		fmt.Println(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", f.ASIN, f.Err)))
	}

	return nil
}

func handleExport(records []summary.ProductRecord, filename string) error {
	// Create output file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	// Export records as JSON
	if err := summary.ExportRecords(records, "json", file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d records to %s\n", len(records), filename)
	return nil
}
