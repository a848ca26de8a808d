package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/logging"
	"github.com/zoomerslab/hsclab/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "hsclab",
	Short: "Terminal study lab for HSC exam preparation",
	Long: `HSC Lab: formula sheets, board-standard MCQ practice and an AI tutor in
the terminal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HSCLAB_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog YAML file (overrides HSCLAB_CATALOG env var)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(formulaCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then HSCLAB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog reads --catalog, then cfg.CatalogPath, then the embedded
// catalog.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Store, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// setupLogger builds the file logger from cfg.
func setupLogger(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	log, closer, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("set up logging: %w", err)
	}
	return log, closer, nil
}
