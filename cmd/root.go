package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/config"
	"github.com/abhisek/bodypath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "bodypath",
	Short:        "Human-body course progress tracker",
	Long:         "BodyPath records lesson, review and skip-quiz completions for the human-body course and shows roadmap and streak progress.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BODYPATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("user", "", "Signed-in user id (UUID); empty records as guest")

	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured store path, then BODYPATH_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
