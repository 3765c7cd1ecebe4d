package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconKey      = "🔑"
	IconClose    = "×"
	IconCredits  = "◆"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	AppTitle           = "RemoveBG Pro"
)

// Window and layout sizing
const (
	WindowMinWidth  float32 = 520
	WindowMinHeight float32 = 620

	PreviewMinWidth  float32 = 480
	PreviewMinHeight float32 = 360

	DialogWidth  float32 = 420
	DialogHeight float32 = 360
)

// Toast notification sizing and behavior
const (
	ToastAutoHide = 5 * time.Second
)
