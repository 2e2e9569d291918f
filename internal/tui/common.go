package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLibrary viewState = iota
	viewSession
	viewSettings
)

var tabNames = []string{"Library", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// openSessionMsg asks the app to switch into the session screen.
type openSessionMsg struct {
	id string
}

// closeSessionMsg returns from the session screen to the library.
type closeSessionMsg struct{}

// autoAdvanceMsg fires after the auto-advance delay. gen must still match
// the session model's generation counter or the advance is discarded — this
// is the cancellation handle for the deferred add.
type autoAdvanceMsg struct {
	sessionID string
	gen       int
}

type exportDoneMsg struct {
	path string
}

type shareDoneMsg struct{}

// --- Helpers ---

// formatElapsed renders a session clock: m:ss, or h:mm:ss past an hour.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
