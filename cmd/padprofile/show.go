package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/padprofile/internal/profile"
)

var showOpts struct {
	json bool
}

// ProfileView is the JSON form of a profile.
type ProfileView struct {
	Mode    string             `json:"mode"`
	Layout  string             `json:"layout"`
	Buttons []profile.Button   `json:"buttons"`
	Socd    []profile.SocdPair `json:"socd"`
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile of a mode and layout",
	Long: `Show every button of the layout with its current binding, the layout
default, and the SOCD pair it belongs to, followed by the SOCD pairs.

Modified bindings (different from the layout default) are highlighted.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showOpts.json, "json", false,
		"Output as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	view := ProfileView{
		Mode:    string(s.Mode()),
		Layout:  s.Layout().ID,
		Buttons: s.Buttons(),
		Socd:    s.SocdPairs(),
	}

	if showOpts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	renderProfile(cmd.OutOrStdout(), view)
	return nil
}

func renderProfile(w io.Writer, v ProfileView) {
	fmt.Fprintln(w, labelStyle.Render("mode: ")+v.Mode+"  "+labelStyle.Render("layout: ")+v.Layout)
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render(pad("#", 4)+pad("BUTTON", 10)+pad("BINDING", 18)+pad("DEFAULT", 18)+"SOCD"))
	for _, b := range v.Buttons {
		binding := string(b.Binding)
		if binding == "" {
			binding = "-"
		}
		if b.Modified {
			binding = modifiedStyle.Render(binding)
		}

		socd := ""
		if b.InSocd() {
			socd = socdStyle.Render(fmt.Sprint(b.Socd))
		}

		fmt.Fprintln(w, pad(fmt.Sprint(b.Index), 4)+pad(string(b.Physical), 10)+
			pad(binding, 18)+pad(string(b.DefaultBinding), 18)+socd)
	}

	if len(v.Socd) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(pad("PAIR", 6)+pad("A", 18)+pad("B", 18)+"TYPE"))
	for i, p := range v.Socd {
		fmt.Fprintln(w, pad(fmt.Sprint(i), 6)+pad(orDash(string(p.A)), 18)+pad(orDash(string(p.B)), 18)+string(p.Type))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
