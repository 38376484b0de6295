package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hawker-labs/hawker/internal/assistant"
	"github.com/hawker-labs/hawker/internal/tui"
)

var chatExport string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the ingested catalog in an interactive session",
	Long: `Start an interactive chat session over the ingested product records.

Answers stream in as the model generates them. Recent turns are replayed
into each prompt so follow-up questions keep their context. Press esc to
cancel an in-flight answer and ctrl+c to quit.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings and the LLM
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Examples:
  hawker chat
  hawker chat --export session.md`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatExport, "export", "", "Write the session transcript to a markdown file on exit")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	asst, err := assistant.NewAssistant(st, client, assistant.Config{
		TopK:        cfg.Chat.TopK,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
	})
	if err != nil {
		return err
	}

	model := tui.New(asst, cfg.Chat.HistoryTurns)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}

	if chatExport == "" {
		return nil
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	return exportTranscript(m, chatExport)
}

func exportTranscript(m tui.Model, filename string) error {
	transcript := m.Transcript()
	if transcript == "" {
		fmt.Println("Nothing to export.")
		return nil
	}

	header := fmt.Sprintf("# hawker chat transcript\n\nsession: %s\ndate: %s\n\n",
		m.SessionID(), time.Now().Format(time.RFC3339))
	if err := os.WriteFile(filename, []byte(header+transcript), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	fmt.Printf("✓ Exported transcript to %s\n", filename)
	return nil
}
