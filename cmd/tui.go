package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zkhourdaji/hackernews/internal/config"
	"github.com/zkhourdaji/hackernews/internal/history"
	"github.com/zkhourdaji/hackernews/internal/hn"
	"github.com/zkhourdaji/hackernews/internal/logging"
	"github.com/zkhourdaji/hackernews/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closer, err := logging.File(cfg.LogFile(), cfg.LogLevel())
	if err != nil {
		// Non-fatal: run without a log file
		log = zerolog.Nop()
	} else {
		defer closer.Close()
	}
	log.Info().Str("version", version).Msg("Starting")

	var hist *history.Store
	if db, err := history.Open(config.HistoryPath()); err != nil {
		log.Warn().Err(err).Msg("Search history unavailable")
	} else {
		defer db.Close()
		if n, err := db.Prune(cfg.RetentionDuration()); err != nil {
			log.Warn().Err(err).Msg("Failed to prune search history")
		} else if n > 0 {
			log.Debug().Int64("deleted", n).Msg("Pruned search history")
		}
		hist = db
	}

	return tui.Run(tui.RunOpts{
		Cfg:     cfg,
		Client:  hn.New(cfg, log),
		History: hist,
		Log:     log,
		Query:   flagQuery,
	})
}
