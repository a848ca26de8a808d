package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the AI tutor one question, optionally with an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.Load()

		log, closer, err := setupLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		s := tutor.New(log)
		s.SetQuery(strings.Join(args, " "))

		if path, _ := cmd.Flags().GetString("image"); path != "" {
			img, err := tutor.LoadImage(path, cfg.MaxImageBytes)
			if err != nil {
				return err
			}
			s.AttachImage(img)
		}

		ticket, ok := s.Ask()
		if !ok {
			return fmt.Errorf("give a question or an --image")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gw, err := newGateway(ctx, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		s.Apply(tutor.Fetch(ctx, gw, ticket))
		fmt.Println(s.Response())
		if s.Failed() {
			return fmt.Errorf("tutor request failed")
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("image", "", "Attach an image (photo of a problem)")
}
