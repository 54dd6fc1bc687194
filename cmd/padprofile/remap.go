package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/padprofile/internal/model"
)

var remapCmd = &cobra.Command{
	Use:   "remap <button> <binding>",
	Short: "Bind a physical button",
	Long: `Bind a physical button of the layout to a binding and save the profile.

Use "default" as the binding to restore the layout default.`,
	Example: `  padprofile remap k1 a
  padprofile --mode switch remap start default`,
	Args: cobra.ExactArgs(2),
	RunE: runRemap,
}

func init() {
	rootCmd.AddCommand(remapCmd)
}

func runRemap(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	physical := model.PhysicalButton(args[0])
	if !s.SelectPhysical(physical) {
		return fmt.Errorf("layout %q has no button %q", s.Layout().ID, physical)
	}
	defer s.ClearSelected()

	binding := model.Binding(args[1])
	if args[1] == "default" {
		binding = s.Layout().DefaultBinding(s.Mode(), physical)
	}
	s.SetBinding(binding)

	return saveStore(cmd.ErrOrStderr())
}
