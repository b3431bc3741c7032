// fay is an interactive wallpaper picker: it shows a thumbnail carousel in
// the terminal, previews candidates on the real desktop while browsing,
// and applies the confirmed choice through the best available backend.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/faypicker/fay/config"
	"github.com/faypicker/fay/pkg/backend"
	"github.com/faypicker/fay/pkg/env"
	"github.com/faypicker/fay/pkg/media"
	"github.com/faypicker/fay/pkg/picker"
	"github.com/faypicker/fay/pkg/tui"
	"github.com/faypicker/fay/util/log"
)

// Carousel card size in terminal cells.
const (
	cardCols = 28
	cardRows = 8
)

var exitCode int

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitCode = 1
	}
	os.Exit(exitCode)
}

type pickFlags struct {
	backendID    string
	mode         string
	visibleCards int
	autoPreview  bool
	noPreview    bool
	previewDelay time.Duration
	screenWidth  int
	screenHeight int
}

func newRootCmd() *cobra.Command {
	cfg := config.GetConfig()
	flags := pickFlags{
		backendID:    cfg.Backend,
		mode:         cfg.Mode,
		visibleCards: cfg.VisibleCards,
		autoPreview:  cfg.AutoPreview,
		previewDelay: time.Duration(cfg.PreviewDelayMS) * time.Millisecond,
		screenWidth:  cfg.ScreenWidth,
		screenHeight: cfg.ScreenHeight,
	}

	root := &cobra.Command{
		Use:     "fay [directory]",
		Short:   "Interactive wallpaper picker",
		Long:    "fay browses a directory of wallpapers in a terminal carousel,\npreviewing candidates on the desktop and applying the confirmed pick.",
		Version: config.AppVersion,
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if flags.noPreview {
				flags.autoPreview = false
			}
			exitCode = runPick(dir, flags)
		},
	}

	root.Flags().StringVar(&flags.backendID, "backend", flags.backendID, "wallpaper backend (auto, feh, gnome, swaybg, swww, hyprpaper)")
	root.Flags().StringVar(&flags.mode, "mode", flags.mode, "placement mode (auto, fill, fit, center, tile)")
	root.Flags().IntVar(&flags.visibleCards, "visible-cards", flags.visibleCards, "maximum carousel cards shown at once")
	root.Flags().BoolVar(&flags.autoPreview, "auto-preview", flags.autoPreview, "preview the selection on the desktop while browsing")
	root.Flags().BoolVar(&flags.noPreview, "no-preview", false, "disable auto-preview while browsing")
	root.Flags().DurationVar(&flags.previewDelay, "preview-delay", flags.previewDelay, "dwell time before auto-preview applies")
	root.Flags().IntVar(&flags.screenWidth, "screen-width", flags.screenWidth, "screen width for auto mode resolution")
	root.Flags().IntVar(&flags.screenHeight, "screen-height", flags.screenHeight, "screen height for auto mode resolution")

	root.AddCommand(newRestoreCmd(), newDiagnoseCmd())
	return root
}

func runPick(dir string, flags pickFlags) int {
	info := env.Detect()
	registry := backend.NewRegistry()
	choice := registry.Resolve(info, flags.backendID)
	if choice.Backend == nil {
		fmt.Fprintf(os.Stderr, "fay: %s\n", choice.Reason)
		fmt.Fprintln(os.Stderr, picker.BuildDiagnostics(registry, info))
		return 1
	}
	log.Debugf("resolved backend: %s", choice.Reason)

	acquired, err := acquireLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fay: %v\n", err)
		return 1
	}
	if !acquired {
		// Another picker is already running; bring it forward instead.
		focusExistingWindow(config.AppName)
		return 0
	}
	defer releaseLock()

	cfg := config.GetConfig()
	thumbs, err := media.NewThumbnailStore(config.ThumbnailCacheDir(), cfg.ThumbMaxWidth, cfg.ThumbMaxHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fay: %v\n", err)
		return 1
	}

	session := picker.NewSession(picker.Options{
		Backend:      choice.Backend,
		Directory:    dir,
		Mode:         flags.mode,
		ScreenWidth:  flags.screenWidth,
		ScreenHeight: flags.screenHeight,
		AutoPreview:  flags.autoPreview,
		PreviewDelay: flags.previewDelay,
		VisibleCards: flags.visibleCards,
		Thumbnails:   thumbs,
		Textures:     media.NewTextureCache(thumbs, tui.NewCellLoader(cardCols, cardRows), cfg.TextureCacheSize),
	})

	runErr := tui.Run(session, cardCols, cardRows)
	session.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "fay: %v\n", runErr)
		return 1
	}

	switch session.ExitKind() {
	case picker.ExitConfirm:
		if state := session.FinalState(); state != nil {
			if err := picker.SaveLastSelection(state); err != nil {
				log.Printf("could not save last selection: %v", err)
			}
		}
		return 0
	case picker.ExitError:
		fmt.Fprintln(os.Stderr, "fay: wallpaper apply failed")
		return 1
	default:
		return 0
	}
}

func newRestoreCmd() *cobra.Command {
	backendID := "auto"
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Reapply the last confirmed wallpaper",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exitCode = runRestore(backendID)
		},
	}
	cmd.Flags().StringVar(&backendID, "backend", backendID, "backend override for restore")
	return cmd
}

func runRestore(backendID string) int {
	state := picker.LoadLastSelection()
	if state == nil {
		fmt.Fprintln(os.Stderr, "fay: no saved wallpaper selection found")
		return 1
	}

	info := env.Detect()
	registry := backend.NewRegistry()

	var be backend.Backend
	if backendID != "auto" {
		choice := registry.Resolve(info, backendID)
		if choice.Backend == nil {
			fmt.Fprintf(os.Stderr, "fay: %s\n", choice.Reason)
			fmt.Fprintln(os.Stderr, picker.BuildDiagnostics(registry, info))
			return 1
		}
		be = choice.Backend
	} else {
		// Prefer the backend that made the selection when it still works
		// here, falling back to auto-resolution otherwise.
		if preferred := registry.Get(state.BackendID); preferred != nil && preferred.IsAvailable(info) {
			be = preferred
		} else {
			choice := registry.Resolve(info, "auto")
			if choice.Backend == nil {
				fmt.Fprintf(os.Stderr, "fay: %s\n", choice.Reason)
				fmt.Fprintln(os.Stderr, picker.BuildDiagnostics(registry, info))
				return 1
			}
			be = choice.Backend
		}
	}

	ctx := backend.NewApplyContext(0, 0)
	if result := be.Apply(state.ImagePath, state.Mode, ctx, true); !result.OK {
		msg := result.Err
		if msg == "" {
			msg = "restore failed"
		}
		fmt.Fprintf(os.Stderr, "fay: %s\n", msg)
		return 1
	}
	return 0
}

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Print environment and backend availability",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(picker.BuildDiagnostics(backend.NewRegistry(), env.Detect()))
			exitCode = 0
		},
	}
}
