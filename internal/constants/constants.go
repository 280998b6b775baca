// Package constants provides a centralized location for the fixed values
// shared by the widgets CLI.
package constants

import "time"

// Application naming
const (
	// AppName is used for the config, documents and cache directories.
	AppName = "widgets"

	// LocalConfigFile is the per-directory config override.
	LocalConfigFile = ".widgets.yaml"
)

// Remote source constants
const (
	// DefaultFetchTimeout bounds a single remote request.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultUpdateWorkers is the number of concurrent script downloads.
	DefaultUpdateWorkers = 4

	// ScriptMarker must appear in downloaded script sources before they are
	// written to the documents directory.
	ScriptMarker = "// Variables used by Scriptable."

	// ScriptExtension is appended to script names in the documents directory.
	ScriptExtension = ".js"

	// ScriptBaseURL is where the published widget scripts live.
	ScriptBaseURL = "https://raw.githubusercontent.com/Abel-Liu/Scriptable-Code/main/"
)

// Notes API constants
const (
	// NotesBaseURL is the Budibase public API host.
	NotesBaseURL = "https://budibase.app"

	// NotesRowID is the row holding the note content.
	NotesRowID = "1"
)

// File permissions
const (
	DirPerm        = 0o700
	FilePerm       = 0o644
	SecretFilePerm = 0o600
)

// Overlay constants
const (
	// MaxDeviceScale is the scale the overlay font sizes are designed for.
	MaxDeviceScale = 3.0

	DefaultOverlayWidth  = 1170
	DefaultOverlayHeight = 2532
	DefaultAccentColor   = "#FFFFFF"
	DefaultAlpha         = 0.5
)
