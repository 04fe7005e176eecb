package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/masquerade/internal/app"
	"github.com/abhisek/masquerade/internal/config"
	"github.com/abhisek/masquerade/internal/content"
	"github.com/abhisek/masquerade/internal/screen"
	"github.com/abhisek/masquerade/internal/screens/home"
	"github.com/abhisek/masquerade/internal/screens/play"
	"github.com/abhisek/masquerade/internal/store"
)

// loadSettings reads the environment and applies any persistent flags the
// user set on top.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return config.Settings{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		s.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("log-level") {
		s.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("content-dir") {
		s.ContentDir, _ = flags.GetString("content-dir")
	}
	return s, nil
}

// openStore opens the database at the configured path, or at the default
// XDG path.
func openStore(s config.Settings) (*store.Store, error) {
	path := s.DBPath
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openLogFile returns the file the TUI logs to, so the terminal stays clean.
func openLogFile(s config.Settings) (*os.File, error) {
	path := s.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "masquerade.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// stderrLogger is the logger for the plain CLI commands.
func stderrLogger(cmd *cobra.Command, s config.Settings) (*log.Logger, error) {
	return s.NewLogger(cmd.ErrOrStderr())
}

// gameDeps loads the content and tunables every game needs.
func gameDeps(s config.Settings, st *store.Store, logger *log.Logger) (play.Deps, error) {
	cfg, err := s.SessionConfig()
	if err != nil {
		return play.Deps{}, fmt.Errorf("session config: %w", err)
	}
	pack, err := content.Load(s.ContentDir)
	if err != nil {
		return play.Deps{}, fmt.Errorf("load content: %w", err)
	}
	return play.Deps{
		Pool:    pack.Encounters,
		Catalog: pack.Skills,
		Config:  cfg,
		Store:   st,
		Logger:  logger,
	}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(s); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Logging disabled:", err)
	} else {
		defer f.Close()
		logOut = f
	}
	logger, err := s.NewLogger(logOut)
	if err != nil {
		return err
	}

	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer st.Close()

	deps, err := gameDeps(s, st, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "encounters", len(deps.Pool), "skills", len(deps.Catalog))

	opts := app.Options{Home: home.Deps{Game: deps}}
	opts.SkipSplash, _ = cmd.Flags().GetBool("no-splash")

	seed := s.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint32("seed")
	}
	if seed != 0 || cmd.Flags().Changed("seed") {
		opts.Start = func() screen.Screen { return play.New(deps, seed) }
	}

	return app.Run(cmd.Context(), opts)
}
