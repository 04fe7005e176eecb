package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "masquerade",
	Short: "Pick the right mask and survive the party",
	Long: "Masquerade is a terminal dialogue game. Each encounter offers four masks; " +
		"pick the one that fits before the countdown runs out and keep your social battery alive.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MASQUERADE_DB)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (overrides MASQUERADE_LOG_LEVEL)")
	pf.String("content-dir", "", "Directory of extra content packs (overrides MASQUERADE_CONTENT_DIR)")

	addGameFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGameFlags registers the flags shared by the commands that open the TUI.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32("seed", 0, "Start a game with this seed straight away")
	cmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}
