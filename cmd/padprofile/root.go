// Package main provides the CLI entrypoint for padprofile.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/padprofile/internal/config"
	"github.com/jmylchreest/padprofile/internal/device"
	"github.com/jmylchreest/padprofile/internal/layout"
	"github.com/jmylchreest/padprofile/internal/model"
	"github.com/jmylchreest/padprofile/internal/profile"
	"github.com/jmylchreest/padprofile/internal/toast"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose      bool
		configPath   string
		snapshotPath string
		mode         string
		layout       string
	}
	logger *slog.Logger

	catalog  *layout.Catalog
	toasts   *toast.Queue
	manager  *device.Manager
	registry *profile.Registry
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "padprofile",
	Short: "Button mapping and SOCD profiles for leverless controllers",
	Long: `padprofile edits the per-mode button mapping and SOCD pairs of a
leverless (hitbox style) controller.

Profiles are kept per game mode and layout. Changes are written to the
device config snapshot (default: ~/.local/share/padprofile/device.json).`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		catalog = layout.NewCatalog(layout.Dir(), logger)

		toasts = toast.New(
			toast.WithLimit(cfg.Toast.Limit),
			toast.WithRemoveDelay(cfg.Toast.RemoveDelay.Duration()),
			toast.WithLogger(logger),
		)

		manager = device.NewManager(device.NewFileBackend(snapshotPath()), device.WithLogger(logger))

		if cfg.Notify.Enabled {
			device.NewNotifier(toasts,
				device.WithNotifierLogger(logger),
				device.WithMinInterval(cfg.Notify.MinInterval.Duration()),
			).Attach(manager)
		}

		registry = profile.NewRegistry(manager,
			profile.WithLogger(logger),
			profile.WithSocdMax(cfg.Profile.SocdMax),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if manager != nil {
			manager.Disconnect()
		}
		if toasts != nil {
			toasts.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/padprofile/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.snapshotPath, "snapshot", "",
		"Path to device config snapshot (default: ~/.local/share/padprofile/device.json)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.mode, "mode", "m", "",
		"Game mode (xinput, switch, ps4, keyboard; default from config)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.layout, "layout", "l", "",
		"Layout id (default from config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// snapshotPath returns the device snapshot path, preferring the flag.
func snapshotPath() string {
	if globalOpts.snapshotPath != "" {
		return globalOpts.snapshotPath
	}
	return cfg.SnapshotPath()
}

// openStore connects the device and returns the store for the selected
// mode and layout.
func openStore(ctx context.Context) (*profile.Store, error) {
	modeName := globalOpts.mode
	if modeName == "" {
		modeName = cfg.Profile.Mode
	}
	mode, err := model.ParseGameMode(modeName)
	if err != nil {
		return nil, err
	}

	layoutID := globalOpts.layout
	if layoutID == "" {
		layoutID = cfg.Profile.Layout
	}
	l, err := catalog.Load(layoutID)
	if err != nil {
		return nil, err
	}

	if !manager.Connected() {
		if err := manager.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return registry.Get(mode, l), nil
}

// saveStore persists the device config and prints resulting toasts.
func saveStore(w io.Writer) error {
	err := manager.SaveConfig()
	printToasts(w)
	return err
}

// printToasts writes the queued toasts, oldest first.
func printToasts(w io.Writer) {
	list := toasts.Toasts()
	for i := len(list) - 1; i >= 0; i-- {
		fmt.Fprintln(w, formatToast(list[i]))
	}
}

func formatToast(t toast.Toast) string {
	style := toastStyle
	if t.Variant == toast.VariantDestructive {
		style = toastErrorStyle
	}
	if t.Description == "" {
		return style.Render(t.Title)
	}
	return style.Render(t.Title) + " " + t.Description
}
