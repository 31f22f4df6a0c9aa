package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zkhourdaji/hackernews/internal/config"
	"github.com/zkhourdaji/hackernews/internal/hn"
	"github.com/zkhourdaji/hackernews/internal/logging"
	"github.com/zkhourdaji/hackernews/internal/store"
)

var (
	flagPage  int
	flagPages int
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Print search results without the UI",
	Long: `Fetch one or more consecutive result pages for a term and print them as a table.

Pages are merged the same way the UI merges "load more" results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPage < 0 {
			return errors.New("--page must not be negative")
		}
		if flagPages < 1 {
			return errors.New("--pages must be at least 1")
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log := logging.Console(os.Stderr, cfg.LogLevel())
		client := hn.New(cfg, log)

		term := strings.Join(args, " ")
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(flagPages)*cfg.TimeoutDuration())
		defer cancel()

		cache, err := fetchPages(ctx, client, term, flagPage, flagPages)
		if err != nil {
			return err
		}

		set, _ := cache.Lookup(term)
		items := set.Items
		if len(items) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q.\n", term)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(items))
		fmt.Fprintf(cmd.OutOrStdout(), "%d result(s) for %q, through page %d.\n", len(items), term, set.Page)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagPage, "page", 0, "first page to fetch (zero-based)")
	searchCmd.Flags().IntVar(&flagPages, "pages", 1, "number of consecutive pages to fetch")
}

// fetchPages fetches count pages starting at first and merges them in order.
// A failed page aborts the run; pages merged before it are discarded with it.
func fetchPages(ctx context.Context, s hn.Searcher, term string, first, count int) (store.Cache, error) {
	cache := store.New()
	for page := first; page < first+count; page++ {
		res, err := s.Search(ctx, term, page)
		if err != nil {
			return cache, err
		}
		cache = cache.Merge(term, res.Items, res.Page)
		if len(res.Items) == 0 {
			break
		}
	}
	return cache, nil
}

func renderTable(items []store.ResultItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID,
			truncate(it.Title, 60),
			it.Author,
			strconv.Itoa(it.NumComments),
			strconv.Itoa(it.Points),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "AUTHOR", "COMMENTS", "POINTS").
		Rows(rows...).
		String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
