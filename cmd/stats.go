package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masquerade/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show game statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(s)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		totals, err := st.ResultRepo().Totals(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}
		if totals.Games == 0 {
			fmt.Fprintln(out, "No games played yet.")
			return nil
		}

		accuracy := 0.0
		if totals.TotalAnswers > 0 {
			accuracy = float64(totals.CorrectAnswers) / float64(totals.TotalAnswers) * 100
		}
		fmt.Fprintf(out, "Games:     %d\n", totals.Games)
		fmt.Fprintf(out, "Wins:      %d\n", totals.Wins)
		fmt.Fprintf(out, "Best day:  %d\n", totals.BestDay)
		fmt.Fprintf(out, "Accuracy:  %.0f%% (%d/%d)\n", accuracy, totals.CorrectAnswers, totals.TotalAnswers)

		last, err := st.StatsRepo().LastGame(ctx)
		if err != nil {
			return fmt.Errorf("query last game: %w", err)
		}
		if last != nil {
			verdict := "lost"
			if last.GameWon {
				verdict = "won"
			}
			fmt.Fprintf(out, "Last game: %s, %d/%d right\n", verdict, last.CorrectAnswers, last.TotalAnswers)
		}

		outcomes, err := st.EventRepo().OutcomeCounts(ctx)
		if err != nil {
			return fmt.Errorf("query outcomes: %w", err)
		}
		picks, err := st.EventRepo().SkillPicks(ctx)
		if err != nil {
			return fmt.Errorf("query skill picks: %w", err)
		}
		printCounts(cmd, "Outcomes", outcomes)
		printCounts(cmd, "Skill picks", picks)

		games, err := st.ResultRepo().Recent(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query games: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-19s  %-10s  %-4s  %-3s  %-3s  %-7s  %s\n",
			"Played", "Seed", "Won", "Day", "HP", "Correct", "Skills")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, g := range games {
			won := "✗"
			if g.Won {
				won = "✓"
			}
			fmt.Fprintf(out, "%-19s  %-10d  %-4s  %-3d  %-3d  %-7s  %s\n",
				g.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				g.Seed, won, g.Day, g.Health,
				fmt.Sprintf("%d/%d", g.CorrectAnswers, g.TotalAnswers),
				strings.Join(g.Skills, ", "))
		}
		return nil
	},
}

// printCounts prints a count map, largest first.
func printCounts(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-18s %d\n", k, counts[k])
	}
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent games to show")
}
