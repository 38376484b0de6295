package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show product collection statistics",
	Long: `Show statistics for the product collection, including the number of
indexed records.

Examples:
  hawker stats
  hawker stats --config hawker.yaml`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))

	fmt.Println(headerStyle.Render("Collection: " + st.Collection()))
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s %s\n", keyStyle.Render(k+":"), stats[k])
	}

	return nil
}
