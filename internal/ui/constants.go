package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconUp       = "▲"
	IconDown     = "▼"
	IconWatch    = "👁"
)

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	MiddleDotSeparator  = " · "
)

// Layout sizing (EntryRow / list)
const (
	NameLabelWidth     float32 = 200
	SizeLabelWidth     float32 = 84
	ModifiedLabelWidth float32 = 140

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 36
)

// Window and dialog sizing
const (
	WindowWidth          float32 = 800
	WindowHeight         float32 = 600
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 320
)
