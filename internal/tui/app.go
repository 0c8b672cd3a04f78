// Package tui renders the coaching wizard in the terminal. Screens only report
// choices; every state change goes through the wizard controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/logger"
	"github.com/mark3labs/sensei/internal/upload"
	"github.com/mark3labs/sensei/internal/wizard"
)

// Screen names carried by selectMsg.
const (
	screenCategory    = "category"
	screenSubcategory = "subcategory"
	screenGame        = "game"
	screenHome        = "home"
)

// Model is the BubbleTea model for the wizard.
type Model struct {
	ctx      context.Context
	ctrl     *wizard.Controller
	uploader upload.Uploader
	maxMB    int64

	width  int
	height int

	// Screen for the active step; rebuilt whenever the step changes.
	shown    wizard.Step
	username textinput.Model
	picker   *Picker
	upload   *UploadView

	quitting bool
}

// New creates the model for a controller.
func New(ctx context.Context, ctrl *wizard.Controller, uploader upload.Uploader, maxMB int64) *Model {
	if maxMB <= 0 {
		maxMB = upload.DefaultMaxSize / (1024 * 1024)
	}
	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		uploader: uploader,
		maxMB:    maxMB,
		width:    80,
		height:   24,
		shown:    -1,
	}
	m.syncScreen()
	return m
}

// Run starts a BubbleTea program for the model and blocks until it quits.
func Run(ctx context.Context, ctrl *wizard.Controller, uploader upload.Uploader, maxMB int64) error {
	m := New(ctx, ctrl, uploader, maxMB)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	if m.upload != nil {
		m.upload.Cancel()
	}
	return nil
}

// Init initializes the active screen.
func (m *Model) Init() tea.Cmd {
	return m.screenInit()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case selectMsg:
		m.applySelection(msg)
		return m, m.syncScreen()

	case UploadEventMsg:
		if m.upload == nil || !m.upload.current(msg.events) {
			discardUploadEvent(msg.Event)
			return m, nil
		}
		cmd := m.upload.Apply(msg)
		m.ctrl.HandleUpload(m.ctx, msg.Event)
		return m, tea.Batch(cmd, m.syncScreen())
	}

	return m, m.updateScreen(msg)
}

// handleGlobalKey processes keys that work on every screen.
func (m *Model) handleGlobalKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	step := m.ctrl.Step()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quit()
		return tea.Quit, true

	case key.Matches(msg, keys.Back):
		if step == wizard.StepUpload && m.upload != nil && m.upload.Uploading() {
			m.upload.Cancel()
			return nil, true
		}
		prev, ok := m.previous()
		if !ok {
			m.quit()
			return tea.Quit, true
		}
		return m.navigate(prev), true
	}

	if step == wizard.StepUsername {
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Home):
		return m.navigate(wizard.StepHome.String()), true
	case key.Matches(msg, keys.Leaderboard):
		return m.navigate(wizard.StepLeaderboard.String()), true
	case key.Matches(msg, keys.Progress):
		return m.navigate(wizard.TargetProgress), true
	case key.Matches(msg, keys.Logout):
		m.cancelUpload()
		m.ctrl.Logout(m.ctx)
		return m.syncScreen(), true
	}

	if step == wizard.StepFeedback {
		switch msg.String() {
		case "r":
			return m.navigate(wizard.StepUpload.String()), true
		case "n":
			return m.navigate(wizard.StepLeaderboard.String()), true
		}
	}
	return nil, false
}

// previous returns the step esc leads back to; false means leave the app.
func (m *Model) previous() (string, bool) {
	s := m.ctrl.Session()
	switch m.ctrl.Step() {
	case wizard.StepCategory, wizard.StepLeaderboard:
		return wizard.StepHome.String(), true
	case wizard.StepSubcategory:
		return wizard.StepCategory.String(), true
	case wizard.StepGame:
		if s.Category == wizard.CategoryDisability {
			return wizard.StepSubcategory.String(), true
		}
		return wizard.StepCategory.String(), true
	case wizard.StepUpload:
		return wizard.StepGame.String(), true
	case wizard.StepFeedback:
		return wizard.StepUpload.String(), true
	}
	return "", false
}

func (m *Model) navigate(target string) tea.Cmd {
	if m.ctrl.Step() == wizard.StepUpload {
		m.cancelUpload()
	}
	m.ctrl.Navigate(m.ctx, target)
	return m.syncScreen()
}

func (m *Model) applySelection(msg selectMsg) {
	switch msg.step {
	case screenCategory:
		if cat, ok := wizard.ParseCategory(msg.value); ok {
			m.ctrl.SelectCategory(m.ctx, cat)
		}
	case screenSubcategory:
		if t, ok := wizard.ParseDisabilityType(msg.value); ok {
			m.ctrl.SelectSubcategory(m.ctx, t)
		}
	case screenGame:
		m.ctrl.SelectSport(m.ctx, msg.value)
	case screenHome:
		m.ctrl.Navigate(m.ctx, msg.value)
	default:
		logger.Warn("Selection from unknown screen %q", msg.step)
	}
}

// discardUploadEvent drops an event from an upload that is no longer shown.
// Its producer was cancelled, so nothing waits on the channel any more.
func discardUploadEvent(ev upload.Event) {
	if done, ok := ev.(upload.Completed); ok && done.Ref != nil {
		logger.Debug("Releasing video %s from a superseded upload", done.Ref.ID)
		_ = done.Ref.Release()
	}
}

func (m *Model) cancelUpload() {
	if m.upload != nil && m.upload.Uploading() {
		m.upload.Cancel()
	}
}

func (m *Model) quit() {
	m.cancelUpload()
	m.quitting = true
}

// syncScreen rebuilds the screen when the controller moved to another step.
func (m *Model) syncScreen() tea.Cmd {
	step := m.ctrl.Step()
	if step == m.shown {
		return nil
	}
	m.shown = step
	m.picker = nil
	if step != wizard.StepUpload {
		m.upload = nil
	}

	s := m.ctrl.Session()
	switch step {
	case wizard.StepUsername:
		input := textinput.New()
		input.Placeholder = "Enter your username"
		input.Prompt = "Username: "
		input.SetWidth(40)
		m.username = input

	case wizard.StepCategory:
		m.picker = NewPicker("Choose Your Category",
			"Select the category that best fits your athletic profile.",
			categoryOptions(), string(s.Category), choose(screenCategory))

	case wizard.StepSubcategory:
		m.picker = NewPicker("Select Your Adaptive Category",
			"Choose the category that matches your needs for the most relevant coaching.",
			subcategoryOptions(), string(s.DisabilitySubtype), choose(screenSubcategory))

	case wizard.StepGame:
		m.picker = NewPicker("Choose Your Sport",
			"Select a sport to start training and competing.",
			sportOptions(m.ctrl.SportGroup()), s.SelectedSport, choose(screenGame))

	case wizard.StepUpload:
		m.upload = NewUploadView(s.SelectedSport, m.ctrl.LastUploadFailure(), m.maxMB)

	case wizard.StepHome:
		m.picker = NewPicker(fmt.Sprintf("Welcome back, %s!", s.Username),
			"Ready to continue your athletic journey? Choose your training focus.",
			[]Option{
				{Key: wizard.StepCategory.String(), Title: "Start Training", Description: "Upload videos and get feedback to improve your performance."},
				{Key: wizard.StepLeaderboard.String(), Title: "View Rankings", Description: "See how you stack up against other athletes in your category."},
			}, "", choose(screenHome))
	}

	return m.screenInit()
}

func (m *Model) screenInit() tea.Cmd {
	switch m.ctrl.Step() {
	case wizard.StepUsername:
		return m.username.Focus()
	case wizard.StepUpload:
		if m.upload != nil {
			return m.upload.Init()
		}
	}
	return nil
}

// updateScreen forwards a message to the active screen.
func (m *Model) updateScreen(msg tea.Msg) tea.Cmd {
	switch m.ctrl.Step() {
	case wizard.StepUsername:
		if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
			m.ctrl.SetUsername(m.ctx, m.username.Value())
			return m.syncScreen()
		}
		var cmd tea.Cmd
		m.username, cmd = m.username.Update(msg)
		return cmd

	case wizard.StepUpload:
		if m.upload == nil {
			return nil
		}
		if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
			return m.upload.Start(m.ctx, m.uploader)
		}
		return m.upload.Update(msg)
	}

	if m.picker != nil {
		return m.picker.Update(msg)
	}
	return nil
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.render()
	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render composes the header and the active screen.
func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	step := m.ctrl.Step()
	s := m.ctrl.Session()

	var body string
	switch step {
	case wizard.StepUsername:
		body = usernameView(m.username.View())
	case wizard.StepUpload:
		if m.upload != nil {
			body = m.upload.View()
		}
	case wizard.StepFeedback:
		name := ""
		if s.UploadedVideo != nil {
			name = s.UploadedVideo.Name + " (" + s.UploadedVideo.SizeMB() + ")"
		}
		body = feedbackView(s.SelectedSport, name, m.contentWidth()-8)
	case wizard.StepLeaderboard:
		body = leaderboardView(s)
	default:
		if m.picker != nil {
			body = m.picker.View()
		}
	}

	modal := styleModalContainer.Width(m.contentWidth()).Render(body)
	if step == wizard.StepUsername {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView(step, s.Username, m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, modal),
	)
}

func (m *Model) contentWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 100 {
		w = 100
	}
	return w
}

func usernameView(input string) string {
	var b strings.Builder
	b.WriteString(styleModalTitle.Render("Welcome to SportSensei"))
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render("Enter your username to get started. It is shown on leaderboards and saved locally."))
	b.WriteString("\n\n")
	b.WriteString(input)
	b.WriteString("\n\n")
	b.WriteString(renderHintBar("enter", "start your journey", "esc", "quit"))
	return b.String()
}

func categoryOptions() []Option {
	return []Option{
		{Key: string(wizard.CategoryNormal), Title: "Normal People", Description: "Standard athletic categories with traditional sports and competitions"},
		{Key: string(wizard.CategoryDisability), Title: "People with Disability", Description: "Adaptive sports with specialized coaching and inclusive competition formats"},
	}
}

func subcategoryOptions() []Option {
	return []Option{
		{Key: string(wizard.DisabilityLeg), Title: "Leg Disability", Description: "Seated and upper-body focused athletic events"},
		{Key: string(wizard.DisabilityHand), Title: "One/Two Hand Disability", Description: "Adapted throwing and racing events for hand limitations"},
		{Key: string(wizard.DisabilityBlind), Title: "Blind People", Description: "Audio-guided sports and sound-based competitions"},
	}
}

func sportOptions(group string) []Option {
	sports := catalog.SportsFor(group)
	opts := make([]Option, 0, len(sports))
	for _, s := range sports {
		opts = append(opts, Option{
			Key:         s.ID,
			Title:       s.Name,
			Description: s.Description,
			Badge:       string(s.Difficulty),
		})
	}
	return opts
}
