package notify

// Package notify carries transient user-facing messages from the controller
// layers to the presentation boundary without depending on any UI toolkit.
// Every failed action produces exactly one notice; session expiry produces
// none.

// Level classifies a notice for presentation
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single transient message. UpgradeCTA marks out-of-credits
// notices so the UI can attach a "buy credits" action.
type Notice struct {
	Level      Level
	Message    string
	UpgradeCTA bool
}

// Notifier receives notices for display
type Notifier interface {
	Notify(n Notice)
}

// Func adapts a plain function to the Notifier interface
type Func func(n Notice)

// Notify implements Notifier
func (f Func) Notify(n Notice) {
	if f != nil {
		f(n)
	}
}

// Discard is a Notifier that drops all notices, useful in tests
var Discard = Func(func(Notice) {})

// Info builds an informational notice
func Info(message string) Notice {
	return Notice{Level: LevelInfo, Message: message}
}

// Success builds a success notice
func Success(message string) Notice {
	return Notice{Level: LevelSuccess, Message: message}
}

// Error builds an error notice
func Error(message string) Notice {
	return Notice{Level: LevelError, Message: message}
}

// OutOfCredits builds the credit-gate notice with the upgrade call-to-action
func OutOfCredits(message string) Notice {
	return Notice{Level: LevelError, Message: message, UpgradeCTA: true}
}
