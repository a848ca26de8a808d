package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoomerslab/hsclab/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		mode, err := prefs.LoadDisplayMode(cmd.Context(), s.PreferenceRepo())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", prefs.DisplayModeKey, mode)
		return nil
	},
}

var prefsDisplayCmd = &cobra.Command{
	Use:       "display-mode <standard|stealth>",
	Short:     "Set the display mode used at startup",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(prefs.Standard), string(prefs.Stealth)},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := prefs.ParseDisplayMode(args[0])
		if !ok {
			return fmt.Errorf("unknown display mode %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := prefs.SaveDisplayMode(cmd.Context(), s.PreferenceRepo(), mode); err != nil {
			return err
		}
		fmt.Printf("%s set to %s\n", prefs.DisplayModeKey, mode)
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsDisplayCmd)
}
