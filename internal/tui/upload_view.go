package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/upload"
)

// UploadView asks for a video path and shows the uploader's progress.
type UploadView struct {
	sportID  string
	maxMB    int64
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	uploading bool
	percent   int
	failure   string
	cancel    context.CancelFunc
	events    <-chan upload.Event // channel of the upload in flight
}

// NewUploadView creates the upload screen for a sport.
func NewUploadView(sportID, failure string, maxMB int64) *UploadView {
	input := textinput.New()
	input.Placeholder = "path/to/video.mp4"
	input.Prompt = "Video: "
	input.SetWidth(50)

	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorPrimary)),
	)

	return &UploadView{
		sportID:  sportID,
		maxMB:    maxMB,
		input:    input,
		spinner:  s,
		progress: progress.New(),
		failure:  failure,
	}
}

// Init focuses the path input.
func (v *UploadView) Init() tea.Cmd {
	return v.input.Focus()
}

// Uploading reports whether an upload is in flight.
func (v *UploadView) Uploading() bool {
	return v.uploading
}

// Start begins uploading path with u. Blank paths are ignored.
func (v *UploadView) Start(ctx context.Context, u upload.Uploader) tea.Cmd {
	path := strings.TrimSpace(v.input.Value())
	if path == "" || v.uploading {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.uploading = true
	v.percent = 0
	v.failure = ""
	v.input.Blur()
	v.events = u.Start(ctx, path)

	return tea.Batch(waitForUpload(v.events), v.spinner.Tick)
}

// current reports whether events belongs to the upload in flight. Events from
// a cancelled or replaced upload are not.
func (v *UploadView) current(events <-chan upload.Event) bool {
	return v.events != nil && v.events == events
}

// Cancel stops an in-flight upload.
func (v *UploadView) Cancel() {
	v.finish()
}

// Apply records an uploader event and returns the command that waits for the
// next one.
func (v *UploadView) Apply(msg UploadEventMsg) tea.Cmd {
	switch ev := msg.Event.(type) {
	case upload.Progress:
		v.percent = ev.Percent
		return waitForUpload(msg.events)
	case upload.Failed:
		v.finish()
		v.failure = ev.Reason
		return v.input.Focus()
	case upload.Completed:
		v.finish()
		v.percent = 100
	}
	return nil
}

func (v *UploadView) finish() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.events = nil
	v.uploading = false
}

// Update forwards input and spinner messages.
func (v *UploadView) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); ok {
		if !v.uploading {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd
	}
	if v.uploading {
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

// View renders the screen.
func (v *UploadView) View() string {
	var b strings.Builder

	b.WriteString(styleModalTitle.Render("Upload Your Performance"))
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render(fmt.Sprintf(
		"Upload a video of your %s performance to receive feedback and scoring.",
		strings.ToLower(catalog.Label(v.sportID)))))
	b.WriteString("\n\n")

	if v.uploading {
		status := "uploading"
		if v.percent >= 100 {
			status = "processing"
		}
		b.WriteString(v.spinner.View() + " " + status + "\n")
		b.WriteString(v.progress.ViewAs(float64(v.percent) / 100))
		b.WriteString(fmt.Sprintf(" %d%%\n\n", v.percent))
		b.WriteString(renderHintBar("esc", "cancel upload"))
		return b.String()
	}

	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render("Supported formats: " +
		strings.ToUpper(strings.Join(trimDots(upload.AcceptedExtensions), ", ")) + fmt.Sprintf(" (max %dMB)", v.maxMB)))
	b.WriteString("\n")
	if v.failure != "" {
		b.WriteString("\n" + styleError.Render("Upload failed: "+v.failure) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderHintBar("enter", "upload", "esc", "back"))
	return b.String()
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}
