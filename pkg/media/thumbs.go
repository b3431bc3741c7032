package media

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	// imaging registers the common formats; webp decode comes separately.
	_ "golang.org/x/image/webp"
)

type thumbJob struct {
	imagePath string
	thumbPath string
}

// ThumbnailStore maintains a disk cache of size-bounded thumbnail
// renditions plus a sidecar record of each source image's true pixel
// dimensions. Builds run under a caller-supplied per-call job budget so
// they never stall the render loop; a key that fails to build is recorded
// and never retried for the lifetime of the process.
//
// The store is not safe for concurrent use. Request and Process must be
// called from the same goroutine.
type ThumbnailStore struct {
	cacheDir  string
	maxWidth  int
	maxHeight int

	pending    []thumbJob
	pendingSet map[string]bool
	failed     map[string]bool
	dims       map[string]image.Point
}

// NewThumbnailStore creates a store rooted at cacheDir, creating the
// directory if needed. Thumbnails are scaled down to fit within
// maxWidth x maxHeight, never up.
func NewThumbnailStore(cacheDir string, maxWidth, maxHeight int) (*ThumbnailStore, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache dir: %w", err)
	}
	return &ThumbnailStore{
		cacheDir:   cacheDir,
		maxWidth:   maxWidth,
		maxHeight:  maxHeight,
		pendingSet: make(map[string]bool),
		failed:     make(map[string]bool),
		dims:       make(map[string]image.Point),
	}, nil
}

// PathFor returns the cache path the thumbnail for imagePath occupies,
// whether or not it has been built yet.
func (s *ThumbnailStore) PathFor(imagePath string) string {
	return filepath.Join(s.cacheDir, ThumbnailName(imagePath, s.maxWidth, s.maxHeight))
}

// Request returns the thumbnail path for imagePath, enqueuing a build job
// when the thumbnail does not exist yet. A key that is already pending or
// already failed is never enqueued twice. Callers must check that the
// returned path exists before using it.
func (s *ThumbnailStore) Request(imagePath string) string {
	thumbPath := s.PathFor(imagePath)
	_, haveDims := s.CachedDimensions(imagePath)

	if fileExists(thumbPath) {
		// Thumbnail built in an earlier run but the sidecar is gone;
		// queue a job so Process can re-probe the source dimensions.
		if !haveDims {
			s.enqueue(imagePath, thumbPath)
		}
		return thumbPath
	}

	s.enqueue(imagePath, thumbPath)
	return thumbPath
}

func (s *ThumbnailStore) enqueue(imagePath, thumbPath string) {
	if s.pendingSet[thumbPath] || s.failed[thumbPath] {
		return
	}
	s.pending = append(s.pending, thumbJob{imagePath: imagePath, thumbPath: thumbPath})
	s.pendingSet[thumbPath] = true
}

// PendingCount returns the number of queued build jobs.
func (s *ThumbnailStore) PendingCount() int {
	return len(s.pending)
}

// Process dequeues up to maxJobs pending jobs in FIFO order and builds
// them. A job whose destination already exists only refreshes the cached
// dimensions. Build failures remove the destination and mark the key
// failed so it is never retried in this process.
func (s *ThumbnailStore) Process(maxJobs int) {
	for done := 0; len(s.pending) > 0 && done < maxJobs; done++ {
		job := s.pending[0]
		s.pending = s.pending[1:]
		delete(s.pendingSet, job.thumbPath)

		if fileExists(job.thumbPath) {
			if _, ok := s.CachedDimensions(job.imagePath); !ok {
				if size, err := probeImageSize(job.imagePath); err == nil {
					s.RememberDimensions(job.imagePath, size.X, size.Y)
				}
			}
			continue
		}

		size, err := s.buildThumbnail(job.imagePath, job.thumbPath)
		if err != nil {
			s.failed[job.thumbPath] = true
			os.Remove(job.thumbPath)
			continue
		}
		s.RememberDimensions(job.imagePath, size.X, size.Y)
	}
}

// buildThumbnail decodes the source, downscales it to fit the target box
// without ever upscaling, and writes the destination. It returns the
// source's true pixel dimensions.
func (s *ThumbnailStore) buildThumbnail(imagePath, thumbPath string) (image.Point, error) {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return image.Point{}, err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return image.Point{}, fmt.Errorf("image %s has no pixels", imagePath)
	}

	scale := minFloat(float64(s.maxWidth)/float64(width), float64(s.maxHeight)/float64(height), 1.0)
	out := src
	if scale < 1.0 {
		newWidth := maxInt(1, int(float64(width)*scale))
		newHeight := maxInt(1, int(float64(height)*scale))
		out = imaging.Resize(src, newWidth, newHeight, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o755); err != nil {
		return image.Point{}, err
	}
	if err := imaging.Save(out, thumbPath); err != nil {
		return image.Point{}, err
	}
	return image.Point{X: width, Y: height}, nil
}

// CachedDimensions returns the true source pixel dimensions for imagePath
// if known, consulting the in-memory cache first and the sidecar file
// second.
func (s *ThumbnailStore) CachedDimensions(imagePath string) (image.Point, bool) {
	if size, ok := s.dims[imagePath]; ok {
		return size, true
	}

	size, ok := readDimensionsFile(dimensionsPath(s.PathFor(imagePath)))
	if ok {
		s.dims[imagePath] = size
	}
	return size, ok
}

// RememberDimensions records the true source pixel dimensions for
// imagePath in memory and in the sidecar file. Non-positive dimensions are
// ignored.
func (s *ThumbnailStore) RememberDimensions(imagePath string, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	size := image.Point{X: width, Y: height}
	s.dims[imagePath] = size
	writeDimensionsFile(dimensionsPath(s.PathFor(imagePath)), size)
}

func dimensionsPath(thumbPath string) string {
	return thumbPath + ".dim"
}

func readDimensionsFile(path string) (image.Point, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return image.Point{}, false
	}
	fields := strings.Fields(string(data))
	if len(fields) != 2 {
		return image.Point{}, false
	}
	width, errW := strconv.Atoi(fields[0])
	height, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return image.Point{}, false
	}
	return image.Point{X: width, Y: height}, true
}

func writeDimensionsFile(path string, size image.Point) {
	// Sidecar write failures degrade to a re-probe later.
	_ = os.WriteFile(path, []byte(fmt.Sprintf("%d %d\n", size.X, size.Y)), 0o644)
}

func probeImageSize(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, fmt.Errorf("image %s has no pixels", path)
	}
	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func minFloat(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
