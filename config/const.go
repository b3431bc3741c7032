package config

// AppVersion is the version of the application.
var AppVersion string // Set from the build via -ldflags.

// AppName is the name of the application.
const AppName = "fay"

// LogExt is the extension for the log files.
const LogExt = ".log"

// Defaults for the picker.
const (
	DefaultBackend      = "auto"
	DefaultMode         = "auto"
	DefaultVisibleCards = 5

	DefaultAutoPreview    = true
	DefaultPreviewDelayMS = 180

	DefaultThumbMaxWidth  = 720
	DefaultThumbMaxHeight = 480

	DefaultTextureCacheSize = 24

	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
)
