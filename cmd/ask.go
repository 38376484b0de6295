package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hawker-labs/hawker/internal/assistant"
)

var (
	topK       int
	askVerbose bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about the ingested catalog",
	Long: `Ask a natural language question and get an answer grounded in the
ingested product records.

This command:
1. Runs a hybrid (semantic + keyword) search over the product store
2. Builds a prompt from the matching records
3. Generates an answer with product links and a references section

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings and the LLM
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Examples:
  hawker ask "What are the best strings for an acoustic guitar?"
  hawker ask "Is there a decent cheap microphone?" --topk 5 --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().IntVar(&topK, "topk", 3, "Number of products to retrieve for context")
	askCmd.Flags().BoolVar(&askVerbose, "verbose", false, "Show the retrieved products")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("topk") {
		cfg.Chat.TopK = topK
	}

	// Styling
	var (
		headerColor   = lipgloss.Color("#F780FF") // Bright pink
		questionColor = lipgloss.Color("#8BE9FD") // Cyan
		answerColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		contextColor  = lipgloss.Color("#6272A4") // Muted purple
		errorColor    = lipgloss.Color("#FF5555") // Red
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	questionStyle := lipgloss.NewStyle().
		Foreground(questionColor).
		Italic(true)

	answerStyle := lipgloss.NewStyle().
		Foreground(answerColor)

	contextStyle := lipgloss.NewStyle().
		Foreground(contextColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	// Print question
	fmt.Println()
	fmt.Println(headerStyle.Render("Question:"))
	fmt.Println(questionStyle.Render(question))
	fmt.Println()

	// Connect to the store and the LLM
	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer st.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	asst, err := assistant.NewAssistant(st, client, assistant.Config{
		TopK:        cfg.Chat.TopK,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	// Retrieve once, then stream the answer to completion
	stream, matches, err := asst.AnswerStream(ctx, question, nil)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer stream.Close()

	if askVerbose {
		fmt.Println(contextStyle.Render(fmt.Sprintf("→ Retrieved %d products:", len(matches))))
		for _, match := range matches {
			fmt.Println(contextStyle.Render(fmt.Sprintf("  %s  %s (score %.3f)", match.ASIN, match.Name, match.Score)))
		}
		fmt.Println()
	}

	var b strings.Builder
	for stream.Next() {
		b.WriteString(stream.Current())
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	// Print answer
	fmt.Println(headerStyle.Render("Answer:"))
	fmt.Println()
	fmt.Println(answerStyle.Render(strings.TrimSpace(b.String())))
	fmt.Println()

	return nil
}
