package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkhourdaji/hackernews/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagQuery  string
)

var rootCmd = &cobra.Command{
	Use:   "hackernews",
	Short: "Search Hacker News from the terminal",
	Long:  "hackernews searches Hacker News stories through the Algolia API and shows paginated, dismissible results in a terminal UI.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "initial search term (default from config)")

	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "check for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var flagCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hackernews %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheckUpdate {
			return
		}
		if res := update.Check(cmd.Context(), releasesURL, version); res != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer release is available: %s %s\n", res.LatestVersion, res.URL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No newer release found.")
		}
	},
}

// releasesURL is swapped in tests.
var releasesURL = update.ReleasesURL

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
