package tui

// Screen is a page of the interactive app.
type Screen int

// Screens.
const (
	ScreenMain Screen = iota
	ScreenTyping
	ScreenTypingResult
	ScreenGlobalResult
	ScreenLetterResult
	ScreenExiting
	ScreenAlert
	ScreenClosed
)

// Title returns the heading shown above the screen.
func (s Screen) Title() string {
	switch s {
	case ScreenMain:
		return "Blind Typing"
	case ScreenTyping:
		return "Typing"
	case ScreenTypingResult:
		return "Typing Results"
	case ScreenGlobalResult:
		return "Global Typing Results"
	case ScreenLetterResult:
		return "Global Letter Result"
	case ScreenExiting:
		return "Exit"
	case ScreenAlert:
		return "Notice"
	default:
		return ""
	}
}

// Event drives screen transitions.
type Event int

// Events.
const (
	EventStart Event = iota
	EventBack
	EventQuit
	EventShowResults
	EventFinished
	EventContinue
	EventRetry
	EventLetter
	EventConfirm
	EventCancel
	EventAlert
	EventDismiss
)

// Transition returns the screen that follows current on ev. Events that do
// not apply to current leave it unchanged. Alerts need to remember where to
// return, so they are handled by Navigator.
func Transition(current Screen, ev Event) Screen {
	switch current {
	case ScreenMain:
		switch ev {
		case EventStart:
			return ScreenTyping
		case EventShowResults:
			return ScreenGlobalResult
		case EventQuit:
			return ScreenExiting
		}
	case ScreenTyping:
		switch ev {
		case EventBack:
			return ScreenMain
		case EventFinished:
			return ScreenTypingResult
		}
	case ScreenTypingResult:
		switch ev {
		case EventQuit, EventBack:
			return ScreenMain
		case EventContinue, EventRetry:
			return ScreenTyping
		}
	case ScreenGlobalResult:
		switch ev {
		case EventBack:
			return ScreenMain
		case EventLetter:
			return ScreenLetterResult
		}
	case ScreenLetterResult:
		switch ev {
		case EventBack:
			return ScreenGlobalResult
		case EventLetter:
			return ScreenLetterResult
		}
	case ScreenExiting:
		switch ev {
		case EventConfirm:
			return ScreenClosed
		case EventCancel, EventBack:
			return ScreenMain
		}
	}
	return current
}

// Navigator tracks the current screen and the screen an alert returns to.
type Navigator struct {
	current  Screen
	returnTo Screen
}

// NewNavigator starts on the main screen.
func NewNavigator() *Navigator {
	return &Navigator{current: ScreenMain, returnTo: ScreenMain}
}

// Current returns the active screen.
func (n *Navigator) Current() Screen {
	return n.current
}

// Apply moves to the next screen for ev and returns it.
func (n *Navigator) Apply(ev Event) Screen {
	switch {
	case ev == EventAlert && n.current != ScreenAlert:
		n.returnTo = n.current
		n.current = ScreenAlert
	case n.current == ScreenAlert:
		if ev == EventDismiss {
			n.current = n.returnTo
		}
	default:
		n.current = Transition(n.current, ev)
	}
	return n.current
}
