package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/config"
	"github.com/zoomerslab/hsclab/internal/formula"
)

var formulaCmd = &cobra.Command{
	Use:   "formula <resource-id>",
	Short: "Print a formula sheet, generating it when the catalog has no text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		r, ok := cat.Resource(args[0])
		if !ok {
			return fmt.Errorf("resource %q not found", args[0])
		}
		if r.Info().SubCategory != catalog.SubCategoryFormula {
			return fmt.Errorf("resource %q is a %s entry, not a formula sheet", args[0], r.Info().SubCategory)
		}

		sheet := formula.Open(r)
		fmt.Printf("%s\n\n", r.Info().Title)

		if ticket, ok := sheet.Begin(); ok {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			gw, err := newGateway(ctx, st.EventRepo(), log)
			if err != nil {
				return fmt.Errorf("LLM provider: %w", err)
			}
			sheet.Apply(formula.Fetch(ctx, gw, ticket))
			if sheet.Status() == formula.StatusFailed {
				return fmt.Errorf("%s: %w", sheet.Text(), sheet.Err())
			}
		}

		fmt.Println(sheet.Text())
		return nil
	},
}
