package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masquerade/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM providers and usage",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List LLM providers, their models and list prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := llm.ConfigFromEnv()
		if err != nil {
			return err
		}
		active, activeErr := llm.Resolve()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s  %-36s  %-4s  %10s  %10s\n", "Provider", "Model", "Key", "In $/MTok", "Out $/MTok")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, p := range llm.Providers(cfg) {
			key := "-"
			if p.Configured {
				key = "✓"
			}
			in, outCost := "?", "?"
			if c, ok := llm.LookupCost(p.Model); ok {
				in, outCost = fmt.Sprintf("%.2f", c.InputPerMTok), fmt.Sprintf("%.2f", c.OutputPerMTok)
			}
			fmt.Fprintf(out, "%-12s  %-36s  %-4s  %10s  %10s\n", p.Name, truncate(p.Model, 36), key, in, outCost)
		}

		fmt.Fprintln(out)
		if activeErr != nil {
			fmt.Fprintln(out, "No provider configured:", activeErr)
			return nil
		}
		fmt.Fprintf(out, "Active: %s (%s)\n", active.Provider, active.ModelFor())
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		usage, err := st.EventRepo().LLMUsage(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if usage.Requests == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "Requests:  %d (%d failed)\n", usage.Requests, usage.Failures)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", usage.InputTokens, usage.OutputTokens)

		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated Cost (USD)")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %7s  %9s\n",
			"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		var totalCost float64
		var unknownModels []string
		for _, mu := range byModel {
			cost, ok := llm.LookupCost(mu.Model)
			if !ok {
				unknownModels = append(unknownModels, mu.Model)
				fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %7d  %9s\n",
					truncate(mu.Model, 32), mu.Requests, mu.InputTokens, mu.OutputTokens, mu.AvgLatencyMs, "?")
				continue
			}
			c := cost.Cost(llm.Usage{InputTokens: mu.InputTokens, OutputTokens: mu.OutputTokens})
			totalCost += c
			fmt.Fprintf(out, "%-32s  %6d  %10d  %10d  %7d  %9s\n",
				truncate(mu.Model, 32), mu.Requests, mu.InputTokens, mu.OutputTokens, mu.AvgLatencyMs, formatCost(c))
		}

		fmt.Fprintln(out, strings.Repeat("─", 80))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-32s  %6s  %10s  %10s  %7s  %9s\n", label, "", "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
