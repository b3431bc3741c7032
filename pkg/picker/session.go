package picker

import (
	"path/filepath"
	"time"

	"github.com/faypicker/fay/pkg/backend"
	"github.com/faypicker/fay/pkg/media"
	"github.com/faypicker/fay/util/log"
)

// ExitKind describes how an interactive session ended.
type ExitKind int

const (
	// ExitCancel means the user dismissed the picker without confirming.
	ExitCancel ExitKind = iota
	// ExitConfirm means a selection was applied and persisted.
	ExitConfirm
	// ExitError means the confirming apply failed.
	ExitError
)

// MaxVisibleCards caps the carousel width.
const MaxVisibleCards = 15

// Options configures a picker session. Backend must already be resolved
// and available.
type Options struct {
	Backend      backend.Backend
	Directory    string
	Mode         string
	ScreenWidth  int
	ScreenHeight int
	AutoPreview  bool
	PreviewDelay time.Duration
	VisibleCards int
	Thumbnails   *media.ThumbnailStore
	Textures     *media.TextureCache
}

// Session owns the picker's interactive state: the image list, the current
// selection, the preview runner and the captured pre-session wallpaper.
// All methods must be called from the render goroutine; only the runner's
// worker touches the backend concurrently.
type Session struct {
	backend  backend.Backend
	dir      string
	mode     string
	applyCtx *backend.ApplyContext
	thumbs   *media.ThumbnailStore
	textures *media.TextureCache
	runner   *AsyncActionRunner

	images   []string
	selected int

	maxVisibleCards int
	autoPreview     bool
	previewDelay    time.Duration
	dwell           time.Duration
	lastPreviewed   int

	startupState *backend.State

	exitKind   ExitKind
	finalState *backend.State
}

// NewSession scans the wallpaper directory, captures the current wallpaper
// for cancel-restore, and starts the preview worker. When the captured
// wallpaper is one of the scanned images the selection starts on it.
func NewSession(opts Options) *Session {
	cards := opts.VisibleCards
	if cards < 1 {
		cards = 1
	}
	if cards > MaxVisibleCards {
		cards = MaxVisibleCards
	}

	s := &Session{
		backend:         opts.Backend,
		dir:             opts.Directory,
		mode:            backend.NormalizeMode(opts.Mode),
		applyCtx:        backend.NewApplyContext(opts.ScreenWidth, opts.ScreenHeight),
		thumbs:          opts.Thumbnails,
		textures:        opts.Textures,
		runner:          NewAsyncActionRunner(),
		images:          media.ListImages(opts.Directory),
		maxVisibleCards: cards,
		autoPreview:     opts.AutoPreview && opts.Backend.SupportsPreview(),
		previewDelay:    opts.PreviewDelay,
		lastPreviewed:   -1,
	}

	s.startupState = s.backend.CaptureCurrent()
	if s.startupState != nil {
		if idx, ok := s.indexOf(s.startupState.ImagePath); ok {
			s.selected = idx
		}
	}

	s.RequestAround()
	return s
}

func (s *Session) indexOf(imagePath string) (int, bool) {
	key := resolvePath(imagePath)
	for idx, img := range s.images {
		if resolvePath(img) == key {
			return idx, true
		}
	}
	return 0, false
}

func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// Images returns the scanned wallpaper paths in display order.
func (s *Session) Images() []string { return s.images }

// Selected returns the index of the current selection.
func (s *Session) Selected() int { return s.selected }

// SelectedImage returns the current selection's path, or "" when the
// directory holds no images.
func (s *Session) SelectedImage() string {
	if len(s.images) == 0 {
		return ""
	}
	return s.images[s.selected]
}

// VisibleCards returns the carousel width for the current image count,
// always odd so the selection sits in the middle.
func (s *Session) VisibleCards() int {
	count := s.maxVisibleCards
	if len(s.images) < count {
		count = len(s.images)
	}
	if count%2 == 0 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// Texture returns the selection-carousel texture for an image, or nil
// while its thumbnail is still building.
func (s *Session) Texture(imagePath string) media.Texture {
	return s.textures.Get(imagePath)
}

// MoveBy advances the selection by delta, wrapping around the image list.
// initialPress marks a fresh key press as opposed to hold-repeat; a fresh
// single step immediately submits an auto-preview, while repeats rely on
// the dwell timer so fast scrolling does not thrash the backend.
func (s *Session) MoveBy(delta int, initialPress bool) {
	if len(s.images) < 2 || delta == 0 {
		return
	}

	s.selected = ((s.selected+delta)%len(s.images) + len(s.images)) % len(s.images)
	s.dwell = 0
	s.lastPreviewed = -1
	s.RequestAround()

	if s.autoPreview && initialPress && (delta == 1 || delta == -1) {
		s.submitPreview()
	}
}

// TickDwell advances the auto-preview dwell timer by one frame. While a
// navigation key is held the timer stays at zero. Once the selection has
// rested long enough and its thumbnail is ready, a preview is submitted
// exactly once per selection.
func (s *Session) TickDwell(frameTime time.Duration, navigationHeld bool) {
	if len(s.images) == 0 {
		s.dwell = 0
		s.lastPreviewed = -1
		return
	}
	if navigationHeld {
		s.dwell = 0
		return
	}
	s.dwell += frameTime

	if !s.autoPreview || s.dwell < s.previewDelay || s.lastPreviewed == s.selected {
		return
	}
	if s.textures.Get(s.images[s.selected]) == nil {
		return
	}
	s.submitPreview()
}

// seedSize copies a thumbnail-store sidecar dimension record into the
// apply context so auto mode resolution never re-decodes an original the
// thumbnail build already measured.
func (s *Session) seedSize(imagePath string) {
	if _, ok := s.applyCtx.CachedSize(imagePath); ok {
		return
	}
	if size, ok := s.thumbs.CachedDimensions(imagePath); ok {
		s.applyCtx.RememberSize(imagePath, size)
	}
}

func (s *Session) submitPreview() {
	path := s.images[s.selected]
	mode := s.mode
	s.seedSize(path)
	log.Debugf("auto-preview %s", filepath.Base(path))
	s.runner.Submit(func() {
		s.backend.Preview(path, mode, s.applyCtx)
	})
	s.lastPreviewed = s.selected
}

// RequestAround queues thumbnail builds for the selection and its
// neighbors, two beyond the visible span on each side.
func (s *Session) RequestAround() {
	if len(s.images) == 0 {
		return
	}
	side := s.VisibleCards()/2 + 2
	if side > len(s.images)-1 {
		side = len(s.images) - 1
	}
	for rel := -side; rel <= side; rel++ {
		idx := ((s.selected+rel)%len(s.images) + len(s.images)) % len(s.images)
		s.textures.Request(s.images[idx])
	}
}

// ProcessThumbnails builds up to maxJobs queued thumbnails. Callers should
// skip this while a navigation key is held to keep scrolling smooth.
func (s *Session) ProcessThumbnails(maxJobs int) {
	s.thumbs.Process(maxJobs)
}

// Rescan re-reads the wallpaper directory, clamps the selection, and drops
// every cached texture and probed size so renamed or replaced files are
// picked up.
func (s *Session) Rescan() {
	s.images = media.ListImages(s.dir)
	if s.selected > len(s.images)-1 {
		s.selected = len(s.images) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	s.textures.Clear()
	s.applyCtx.ClearSizes()
	s.dwell = 0
	s.lastPreviewed = -1
	s.RequestAround()
}

// Confirm applies the current selection persistently. On success the
// session records the selection for saving and ends with ExitConfirm; a
// failed apply ends it with ExitError.
func (s *Session) Confirm() backend.Result {
	image := s.SelectedImage()
	if image == "" {
		s.exitKind = ExitCancel
		return backend.Result{OK: true}
	}

	s.seedSize(image)
	resolved := backend.EffectiveMode(s.mode, image, s.applyCtx)
	result := s.backend.Apply(image, resolved, s.applyCtx, true)
	if result.OK {
		s.finalState = &backend.State{
			BackendID: s.backend.ID(),
			ImagePath: image,
			Mode:      resolved,
		}
		s.exitKind = ExitConfirm
	} else {
		log.Printf("apply failed: %s", result.Err)
		s.exitKind = ExitError
	}
	return result
}

// Cancel marks the session dismissed without a confirmed selection.
func (s *Session) Cancel() {
	s.exitKind = ExitCancel
}

// ExitKind returns how the session ended.
func (s *Session) ExitKind() ExitKind { return s.exitKind }

// FinalState returns the confirmed selection to persist, or nil.
func (s *Session) FinalState() *backend.State { return s.finalState }

// Close shuts the preview worker down and releases every texture. Pending
// previews are discarded rather than flushed: the confirming apply runs
// synchronously on the render goroutine, so a flushed stale preview could
// only overwrite it. A cancel additionally restores the wallpaper captured
// at startup.
func (s *Session) Close() {
	s.runner.Shutdown(false)
	s.textures.Clear()

	if s.exitKind == ExitCancel && s.startupState != nil {
		if result := s.backend.Restore(s.startupState, s.applyCtx); !result.OK {
			log.Debugf("startup wallpaper restore failed: %s", result.Err)
		}
	}
}
