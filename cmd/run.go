package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/app"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/gateway"
	"github.com/zoomerslab/hsclab/internal/llm"
	"github.com/zoomerslab/hsclab/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.Load()

	log, closer, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := loadCatalog(cmd, cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		Catalog: cat,
		Store:   st,
		Config:  cfg,
		Log:     log,
	}

	gw, err := newGateway(ctx, st.EventRepo(), log)
	if err != nil {
		log.Warn().Err(err).Msg("LLM provider not configured")
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Gateway = gw
	}

	log.Info().Int("resources", len(cat.Resources())).Bool("ai", opts.Gateway != nil).Msg("starting hsclab")
	return app.Run(ctx, opts)
}

// newGateway builds the AI gateway from the environment. eventRepo may be
// nil, in which case requests are only logged.
func newGateway(ctx context.Context, eventRepo store.EventRepo, log zerolog.Logger) (*gateway.Client, error) {
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, eventRepo, log)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("provider", llmCfg.Provider).Str("model", provider.ModelID()).Msg("LLM provider ready")
	return gateway.New(provider, gateway.DefaultConfig(), log), nil
}
