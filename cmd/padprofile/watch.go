package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/padprofile/internal/device"
	"github.com/jmylchreest/padprofile/internal/profile"
	"github.com/jmylchreest/padprofile/internal/toast"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow profile and device changes",
	Long: `Watch the device config snapshot and print profile changes and device
notifications as they happen. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	toastEvents := toasts.Subscribe()
	defer toasts.Unsubscribe(toastEvents)
	changes := s.Subscribe()
	defer s.Unsubscribe(changes)

	if cfg.Device.Watch {
		w, err := device.NewWatcher(manager, snapshotPath(), logger)
		if err != nil {
			return fmt.Errorf("failed to create snapshot watcher: %w", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Warn("snapshot watcher stopped", "error", err)
			}
		}()
	}

	out := cmd.OutOrStdout()
	printToasts(out)
	fmt.Fprintln(out, labelStyle.Render("watching "+snapshotPath()))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-toastEvents:
			if !ok {
				return nil
			}
			if ev.Type == toast.EventAdd && len(ev.Toasts) > 0 {
				printToastEvent(out, ev.Toasts[0])
			}

		case ev, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("profile changed", "type", ev.Type, "mode", ev.Mode, "index", ev.Index)
			if ev.Type == profile.ChangeLoad {
				renderProfile(out, ProfileView{
					Mode:    string(s.Mode()),
					Layout:  s.Layout().ID,
					Buttons: s.Buttons(),
					Socd:    s.SocdPairs(),
				})
			}
		}
	}
}

func printToastEvent(w io.Writer, t toast.Toast) {
	fmt.Fprintln(w, labelStyle.Render(humanize.Time(t.CreatedAt))+" "+formatToast(t))
}
