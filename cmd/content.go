package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masquerade/internal/authoring"
	"github.com/abhisek/masquerade/internal/content"
	"github.com/abhisek/masquerade/internal/llm"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect, validate and draft content packs",
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the encounters in the active content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		pack, err := content.Load(s.ContentDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-3s  %-14s  %-7s  %s\n", "ID", "Day", "Group", "Correct", "Dialogue")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		shown := 0
		for _, e := range pack.Encounters {
			if group != "" && e.FriendGroup != group {
				continue
			}
			day := "-"
			if e.Day > 0 {
				day = fmt.Sprint(e.Day)
			}
			fmt.Fprintf(out, "%-24s  %-3s  %-14s  %-7s  %s\n",
				truncate(e.ID, 24), day, truncate(e.FriendGroup, 14), e.Correct, truncate(e.Dialogue, 40))
			shown++
		}
		fmt.Fprintf(out, "\n%d encounters, %d skills, pack %s (groups: %s)\n",
			shown, len(pack.Skills), pack.Version, strings.Join(pack.FriendGroups(), ", "))
		return nil
	},
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check content pack files, or the content directory when none are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			pack, err := content.Load(s.ContentDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "ok  %d encounters, %d skills\n", len(pack.Encounters), len(pack.Skills))
			return nil
		}

		var errs []error
		for _, path := range args {
			p, err := content.LoadFile(path)
			if err != nil {
				fmt.Fprintf(out, "FAIL  %s\n      %v\n", path, err)
				errs = append(errs, err)
				continue
			}
			fmt.Fprintf(out, "ok    %s  (%s, %d encounters, %d skills)\n", path, p.Version, len(p.Encounters), len(p.Skills))
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d of %d packs invalid", len(errs), len(args))
		}
		return nil
	},
}

var contentDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new encounters with the configured LLM provider",
	Long: "Draft asks the LLM provider (MASQUERADE_LLM_* or a vendor API key) for new encounters, " +
		"validates them and writes a content pack ready for the content directory.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		brief := authoring.Brief{}
		brief.FriendGroup, _ = flags.GetString("group")
		brief.Day, _ = flags.GetInt("day")
		brief.Count, _ = flags.GetInt("count")
		brief.Notes, _ = flags.GetString("notes")
		outPath, _ := flags.GetString("out")

		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger, err := stderrLogger(cmd, s)
		if err != nil {
			return err
		}
		pack, err := content.Load(s.ContentDir)
		if err != nil {
			return err
		}
		for _, e := range pack.Encounters {
			brief.Avoid = append(brief.Avoid, e.ID)
		}

		cfg, err := llm.Resolve()
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		st, err := openStore(s)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg, st.EventRepo(), logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		logger.Info("drafting", "provider", cfg.Provider, "model", provider.ModelID(), "count", brief.Count)
		drafts, err := authoring.New(provider, authoring.DefaultConfig()).Draft(ctx, brief)
		if err != nil {
			var de *authoring.DraftError
			if errors.As(err, &de) {
				return fmt.Errorf("the provider returned unusable encounters: %w", err)
			}
			return err
		}

		w := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := content.Write(w, &content.Pack{Version: pack.Version, Encounters: drafts}); err != nil {
			return fmt.Errorf("write pack: %w", err)
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d encounters to %s\n", len(drafts), outPath)
		}
		return nil
	},
}

func init() {
	contentListCmd.Flags().StringP("group", "g", "", "Only show this friend group")

	df := contentDraftCmd.Flags()
	df.StringP("group", "g", "", "Friend group for the new encounters")
	df.IntP("day", "d", 0, "Gate the encounters to this day (0 = any day)")
	df.IntP("count", "n", 5, "Number of encounters to draft")
	df.String("notes", "", "Extra guidance for the writer")
	df.StringP("out", "o", "", "Write the pack to this file instead of stdout")

	contentCmd.AddCommand(contentListCmd)
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentDraftCmd)
}
