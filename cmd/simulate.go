package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masquerade/internal/autoplay"
	"github.com/abhisek/masquerade/internal/history"
	"github.com/abhisek/masquerade/internal/rng"
	"github.com/abhisek/masquerade/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a game headlessly and print every event",
	Long: "Simulate drives a full game with a fixed strategy and prints one line per event. " +
		"The same seed, content and strategy always print the same transcript.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("strategy")
		strategy, err := autoplay.ParseStrategy(name)
		if err != nil {
			return err
		}

		seed := s.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetUint32("seed")
		} else if seed == 0 {
			if seed, err = rng.NewSeed(); err != nil {
				return err
			}
		}

		logger, err := stderrLogger(cmd, s)
		if err != nil {
			return err
		}
		deps, err := gameDeps(s, nil, logger)
		if err != nil {
			return err
		}
		sess, err := session.New(deps.Config, deps.Pool, deps.Catalog, seed, session.WithLogger(logger))
		if err != nil {
			return err
		}

		if record, _ := cmd.Flags().GetBool("record"); record {
			st, err := openStore(s)
			if err != nil {
				return err
			}
			defer st.Close()
			rec := history.Attach(sess, st.EventRepo(), st.ResultRepo(), st.StatsRepo(), history.WithLogger(logger))
			defer func() {
				rec.Detach()
				if err := rec.Err(); err != nil {
					logger.Error("history incomplete", "err", err)
				}
			}()
		}

		res, err := autoplay.New(sess, strategy, cmd.OutOrStdout()).Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "accuracy %.0f%%\n", res.Accuracy()*100)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Uint32("seed", 0, "Root seed (default: MASQUERADE_SEED or a fresh one)")
	simulateCmd.Flags().StringP("strategy", "s", string(autoplay.StrategyCorrect),
		"Mask strategy: correct, first, random or idle")
	simulateCmd.Flags().Bool("record", false, "Save the game to the database")
}
