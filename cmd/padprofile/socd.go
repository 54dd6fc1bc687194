package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/padprofile/internal/model"
	"github.com/jmylchreest/padprofile/internal/profile"
)

var socdCmd = &cobra.Command{
	Use:   "socd",
	Short: "Manage SOCD pairs",
	Long: `Manage the SOCD (simultaneous opposing cardinal directions) pairs of a
mode. A pair names two bindings and how the device resolves both being held.

Pairs are addressed by their position as printed by "padprofile show".`,
}

var socdAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty SOCD pair",
	Args:  cobra.NoArgs,
	RunE:  runSocdAdd,
}

var socdSetCmd = &cobra.Command{
	Use:   "set <pair> <a|b> <button>",
	Short: "Put a button's binding on one side of a pair",
	Long: `Put the binding of a physical button on one side of a pair. The binding
is removed from any other pair side first.`,
	Example: `  padprofile socd set 0 a left
  padprofile socd set 0 b right`,
	Args: cobra.ExactArgs(3),
	RunE: runSocdSet,
}

var socdTypeCmd = &cobra.Command{
	Use:   "type <pair> <type>",
	Short: "Set the resolution type of a pair",
	Long: `Set the resolution type of a pair. Valid types: neutral, second-input,
second-input-no-reactivation, dir-a-priority, dir-b-priority.`,
	Args: cobra.ExactArgs(2),
	RunE: runSocdType,
}

var socdRemoveCmd = &cobra.Command{
	Use:     "remove <pair>",
	Aliases: []string{"rm"},
	Short:   "Remove a pair",
	Args:    cobra.ExactArgs(1),
	RunE:    runSocdRemove,
}

func init() {
	rootCmd.AddCommand(socdCmd)
	socdCmd.AddCommand(socdAddCmd, socdSetCmd, socdTypeCmd, socdRemoveCmd)
}

func runSocdAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	before := len(s.SocdPairs())
	s.AddSocd()
	if len(s.SocdPairs()) == before {
		return fmt.Errorf("socd pair list is full (%d pairs)", before)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added pair %d\n", before)
	return saveStore(cmd.ErrOrStderr())
}

func runSocdSet(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	pair, err := parsePair(s, args[0])
	if err != nil {
		return err
	}
	side, err := profile.ParseSide(args[1])
	if err != nil {
		return err
	}

	physical := model.PhysicalButton(args[2])
	if !s.SelectPhysical(physical) {
		return fmt.Errorf("layout %q has no button %q", s.Layout().ID, physical)
	}
	defer s.ClearSelected()

	idx, _ := s.Selected()
	if !s.Buttons()[idx].Binding.IsSpecified() {
		return fmt.Errorf("button %q has no binding in mode %s", physical, s.Mode())
	}

	s.SetSocdBinding(pair, side)
	return saveStore(cmd.ErrOrStderr())
}

func runSocdType(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	pair, err := parsePair(s, args[0])
	if err != nil {
		return err
	}
	typ, err := model.ParseSocdType(args[1])
	if err != nil {
		return err
	}

	s.SetSocdBindingType(pair, typ)
	return saveStore(cmd.ErrOrStderr())
}

func runSocdRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}

	pair, err := parsePair(s, args[0])
	if err != nil {
		return err
	}

	s.RemoveSocd(pair)
	return saveStore(cmd.ErrOrStderr())
}

// parsePair parses a pair position and checks it exists in s.
func parsePair(s *profile.Store, arg string) (int, error) {
	pair, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid pair %q: %w", arg, err)
	}
	if n := len(s.SocdPairs()); pair < 0 || pair >= n {
		return 0, fmt.Errorf("pair %d out of range (%d pairs)", pair, n)
	}
	return pair, nil
}
