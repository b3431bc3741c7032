package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/faypicker/fay/pkg/media"
)

// cellTexture is a thumbnail pre-rendered to ANSI half-block cells. It
// carries no external resources; Release only marks the handle dead so
// lifetime bugs surface in tests.
type cellTexture struct {
	srcWidth  int
	srcHeight int
	rendered  string
	released  bool
}

func (t *cellTexture) Size() (int, int) { return t.srcWidth, t.srcHeight }

func (t *cellTexture) Release() { t.released = true }

// Render returns the ANSI block art, or "" for a released handle.
func (t *cellTexture) Render() string {
	if t.released {
		return ""
	}
	return t.rendered
}

// CellLoader renders thumbnail files into terminal cells using the upper
// half block, packing two pixel rows into every text row. It implements
// media.TextureLoader so the texture cache can bound how many renditions
// are held at once.
type CellLoader struct {
	// Cols and Rows bound the rendered size in terminal cells.
	Cols int
	Rows int
}

// NewCellLoader creates a loader that renders into a cols x rows cell box.
func NewCellLoader(cols, rows int) *CellLoader {
	return &CellLoader{Cols: cols, Rows: rows}
}

// Load implements media.TextureLoader.
func (l *CellLoader) Load(path string) (media.Texture, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image %s has no pixels", path)
	}

	// One cell holds two stacked pixels, so the pixel grid is twice as
	// tall as the cell grid.
	fitted := imaging.Fit(src, l.Cols, l.Rows*2, imaging.Lanczos)
	return &cellTexture{
		srcWidth:  bounds.Dx(),
		srcHeight: bounds.Dy(),
		rendered:  renderHalfBlocks(fitted),
	}, nil
}

func renderHalfBlocks(img *image.NRGBA) string {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			top := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			bottom := top
			if y+1 < height {
				bottom = img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", top.R, top.G, top.B))).
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", bottom.R, bottom.G, bottom.B)))
			b.WriteString(style.Render("▀"))
		}
	}
	return b.String()
}
