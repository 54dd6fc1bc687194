package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List available layouts",
	Long: `List built-in layouts and user layouts from
~/.config/padprofile/layouts/. A user layout with the same id as a
built-in one replaces it.`,
	Args: cobra.NoArgs,
	RunE: runLayouts,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

func runLayouts(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, headerStyle.Render(pad("ID", 16)+pad("NAME", 24)+pad("BUTTONS", 9)+"SOURCE"))
	for _, info := range catalog.List() {
		source := string(info.Source)
		if info.Path != "" {
			source += " " + labelStyle.Render(info.Path)
		}
		fmt.Fprintln(w, pad(info.ID, 16)+pad(info.Name, 24)+pad(fmt.Sprint(info.Buttons), 9)+source)
	}
	return nil
}
