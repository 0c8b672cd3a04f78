package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/sensei/internal/upload"
)

// UploadEventMsg carries one uploader event into the update loop.
type UploadEventMsg struct {
	Event  upload.Event
	events <-chan upload.Event
}

// waitForUpload blocks on the uploader channel and turns the next event into
// a message. A closed channel yields nil.
func waitForUpload(events <-chan upload.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return UploadEventMsg{Event: ev, events: events}
	}
}

// selectMsg is emitted by the step screens and applied by the app model.
type selectMsg struct {
	step  string // screen that produced the choice
	value string
}

func choose(step string) func(string) tea.Cmd {
	return func(value string) tea.Cmd {
		return func() tea.Msg {
			return selectMsg{step: step, value: value}
		}
	}
}
