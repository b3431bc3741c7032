package backend

import "image"

// Display modes understood across all backends. Auto is resolved at apply
// time from image and screen geometry; the rest map to backend-specific
// identifiers through per-backend tables.
const (
	ModeAuto   = "auto"
	ModeFill   = "fill"
	ModeFit    = "fit"
	ModeCenter = "center"
	ModeTile   = "tile"
)

// Modes lists the normalized mode choices in a stable order.
var Modes = []string{ModeAuto, ModeFill, ModeFit, ModeCenter, ModeTile}

// modeAliases maps accepted spellings (including the legacy feh-style CLI
// flags) to normalized modes.
var modeAliases = map[string]string{
	"auto":      ModeAuto,
	"fill":      ModeFill,
	"fit":       ModeFit,
	"center":    ModeCenter,
	"tile":      ModeTile,
	"bg-fill":   ModeFill,
	"bg-max":    ModeFit,
	"bg-center": ModeCenter,
	"bg-tile":   ModeTile,
	"bg-scale":  ModeFit,
}

// NormalizeMode maps a user-supplied mode spelling to a normalized mode.
// Unknown spellings normalize to auto.
func NormalizeMode(mode string) string {
	if normalized, ok := modeAliases[mode]; ok {
		return normalized
	}
	return ModeAuto
}

// Thresholds for auto mode resolution.
const (
	autoAspectRatioFactor = 1.75
	autoSmallRatioFactor  = 0.78
	autoSquareishMinRatio = 0.8
	autoSquareishMaxRatio = 1.25
)

// ResolveAutoMode picks a concrete placement mode from image and screen
// pixel dimensions. It never returns auto: small images center, oversized
// squarish images fit, severe aspect mismatches center, everything else
// fills. Unknown dimensions resolve to fill.
func ResolveAutoMode(imageSize image.Point, screenWidth, screenHeight int) string {
	if imageSize.X <= 0 || imageSize.Y <= 0 {
		return ModeFill
	}
	if screenWidth <= 0 || screenHeight <= 0 {
		return ModeFill
	}

	widthRatio := float64(imageSize.X) / float64(screenWidth)
	heightRatio := float64(imageSize.Y) / float64(screenHeight)

	screenLandscape := screenWidth >= screenHeight
	imageLandscape := imageSize.X >= imageSize.Y
	orientationMismatch := screenLandscape != imageLandscape

	screenRatio := float64(screenWidth) / float64(screenHeight)
	imageRatio := float64(imageSize.X) / float64(imageSize.Y)
	ratioFactor := screenRatio / imageRatio
	if ratioFactor < 1 {
		ratioFactor = 1 / ratioFactor
	}
	strongAspectMismatch := ratioFactor >= autoAspectRatioFactor
	squareish := imageRatio >= autoSquareishMinRatio && imageRatio <= autoSquareishMaxRatio
	largerThanScreen := widthRatio >= 1.0 && heightRatio >= 1.0

	// Tiny images look terrible upscaled.
	if widthRatio <= autoSmallRatioFactor && heightRatio <= autoSmallRatioFactor {
		return ModeCenter
	}

	if squareish && largerThanScreen {
		return ModeFit
	}

	// Avoid severe cropping when orientations or aspect ratios clash.
	if orientationMismatch || strongAspectMismatch {
		return ModeCenter
	}

	return ModeFill
}

// EffectiveMode resolves a requested mode for a concrete image. Non-auto
// modes pass through unchanged; auto is resolved from the probed image
// dimensions and the context's screen geometry.
func EffectiveMode(requested, imagePath string, ctx *ApplyContext) string {
	if requested != ModeAuto {
		return requested
	}
	size, ok := ctx.ProbeSize(imagePath)
	if !ok {
		return ModeFill
	}
	return ResolveAutoMode(size, ctx.ScreenWidth, ctx.ScreenHeight)
}
