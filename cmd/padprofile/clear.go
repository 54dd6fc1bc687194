package main

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all buttons of a mode to the layout defaults",
	Long: `Reset every button of the selected mode to its layout default and save.
SOCD pairs are kept.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	err = s.ClearMappings()
	printToasts(cmd.ErrOrStderr())
	return err
}
