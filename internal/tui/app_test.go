package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/sensei/internal/storage"
	"github.com/mark3labs/sensei/internal/upload"
	"github.com/mark3labs/sensei/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTermWidth  = 120
	testTermHeight = 40
)

// fakeUploader replays a fixed event list and remembers the path it got.
type fakeUploader struct {
	events []upload.Event
	path   string
	ch     chan upload.Event
}

func (f *fakeUploader) Start(_ context.Context, path string) <-chan upload.Event {
	f.path = path
	f.ch = make(chan upload.Event, len(f.events))
	for _, ev := range f.events {
		f.ch <- ev
	}
	close(f.ch)
	return f.ch
}

// manualUploader hands out one open channel per upload; the test decides
// which events arrive.
type manualUploader struct {
	ctxs  []context.Context
	chans []chan upload.Event
}

func (u *manualUploader) Start(ctx context.Context, _ string) <-chan upload.Event {
	ch := make(chan upload.Event, 1)
	u.ctxs = append(u.ctxs, ctx)
	u.chans = append(u.chans, ch)
	return ch
}

var (
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func runeKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestModel(t *testing.T, u upload.Uploader) (*Model, *wizard.Controller, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	ctrl := wizard.New(context.Background(), store)
	m := New(context.Background(), ctrl, u, 100)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: testTermWidth, Height: testTermHeight})
	return m, ctrl, store
}

// choose presses enter on a picker and feeds the resulting selection back.
func chooseCurrent(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd, "expected a selection command")
	msg := cmd()
	_, ok := msg.(selectMsg)
	require.True(t, ok, "expected selectMsg, got %T", msg)
	m.Update(msg)
}

func login(t *testing.T, m *Model, name string) {
	t.Helper()
	m.username.SetValue(name)
	m.Update(keyEnter)
}

func screen(m *Model) string {
	return ansi.Strip(m.render())
}

func TestUsernameEntry(t *testing.T) {
	m, ctrl, store := newTestModel(t, nil)
	assert.Contains(t, screen(m), "Welcome to SportSensei")

	login(t, m, "   ")
	assert.Equal(t, wizard.StepUsername, ctrl.Step(), "blank name keeps the dialog open")

	login(t, m, "alice")
	assert.Equal(t, wizard.StepCategory, ctrl.Step())

	v, ok, err := store.Get(context.Background(), storage.KeyUsername)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
	assert.Contains(t, screen(m), "Choose Your Category")
	assert.Contains(t, screen(m), "alice")
}

func TestNormalFlowToFeedback(t *testing.T) {
	video := filepath.Join(t.TempDir(), "jump.mp4")
	require.NoError(t, os.WriteFile(video, []byte("frames"), 0644))
	ref, err := upload.Open(video, 0)
	require.NoError(t, err)
	defer func() { _ = ref.Release() }()

	u := &fakeUploader{events: []upload.Event{
		upload.Progress{Percent: 40},
		upload.Progress{Percent: 100},
		upload.Completed{Ref: ref},
	}}
	m, ctrl, _ := newTestModel(t, u)
	login(t, m, "alice")

	chooseCurrent(t, m) // Normal People
	require.Equal(t, wizard.StepGame, ctrl.Step())
	assert.Contains(t, screen(m), "High Jump")

	m.Update(keyDown)
	chooseCurrent(t, m) // Shot Put
	require.Equal(t, wizard.StepUpload, ctrl.Step())
	assert.Equal(t, "shot-put", ctrl.Session().SelectedSport)
	assert.Contains(t, screen(m), "shot put performance")

	m.upload.input.SetValue(video)
	_, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, video, u.path)
	assert.True(t, m.upload.Uploading())

	for ev := range u.ch {
		m.Update(UploadEventMsg{Event: ev, events: u.ch})
		if p, ok := ev.(upload.Progress); ok && p.Percent == 40 {
			assert.Contains(t, screen(m), "40%")
		}
	}

	assert.Equal(t, wizard.StepFeedback, ctrl.Step())
	assert.Same(t, ref, ctrl.Session().UploadedVideo)
	assert.Contains(t, screen(m), "Performance Feedback")

	m.Update(runeKey('n'))
	assert.Equal(t, wizard.StepLeaderboard, ctrl.Step())
	out := screen(m)
	assert.Contains(t, out, "Alex Champion")
	assert.Contains(t, out, "alice", "unranked current user is listed")
	assert.Contains(t, out, "for shot put")
}

func TestDisabilityFlow(t *testing.T) {
	m, ctrl, _ := newTestModel(t, nil)
	login(t, m, "bea")

	m.Update(keyDown)
	chooseCurrent(t, m)
	require.Equal(t, wizard.StepSubcategory, ctrl.Step())

	m.Update(keyDown)
	m.Update(keyDown)
	chooseCurrent(t, m)
	require.Equal(t, wizard.StepGame, ctrl.Step())
	assert.Equal(t, wizard.DisabilityBlind, ctrl.Session().DisabilitySubtype)
	assert.Contains(t, screen(m), "Goalball")

	m.Update(keyEsc)
	assert.Equal(t, wizard.StepSubcategory, ctrl.Step(), "esc goes back to the sub-category")
}

func TestUploadFailureStaysOnUpload(t *testing.T) {
	u := &fakeUploader{events: []upload.Event{upload.Failed{Reason: "unsupported video format"}}}
	m, ctrl, _ := newTestModel(t, u)
	login(t, m, "carl")
	chooseCurrent(t, m)
	chooseCurrent(t, m)
	require.Equal(t, wizard.StepUpload, ctrl.Step())

	m.upload.input.SetValue("notes.txt")
	m.Update(keyEnter)
	for ev := range u.ch {
		m.Update(UploadEventMsg{Event: ev, events: u.ch})
	}

	assert.Equal(t, wizard.StepUpload, ctrl.Step())
	assert.False(t, m.upload.Uploading())
	assert.Contains(t, screen(m), "Upload failed: unsupported video format")
}

func TestNavigationKeys(t *testing.T) {
	m, ctrl, store := newTestModel(t, nil)
	login(t, m, "dora")

	m.Update(ctrlKey('b'))
	assert.Equal(t, wizard.StepLeaderboard, ctrl.Step())

	m.Update(ctrlKey('p'))
	assert.Equal(t, wizard.StepLeaderboard, ctrl.Step(), "progress is a no-op")

	m.Update(ctrlKey('g'))
	assert.Equal(t, wizard.StepHome, ctrl.Step())
	assert.Contains(t, screen(m), "Welcome back, dora!")

	m.Update(keyDown)
	chooseCurrent(t, m)
	assert.Equal(t, wizard.StepLeaderboard, ctrl.Step(), "home offers rankings")

	m.Update(ctrlKey('o'))
	assert.Equal(t, wizard.StepUsername, ctrl.Step())
	_, ok, err := store.Get(context.Background(), storage.KeyUsername)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNavKeysIgnoredWhileLoggedOut(t *testing.T) {
	m, ctrl, _ := newTestModel(t, nil)
	m.Update(ctrlKey('b'))
	assert.Equal(t, wizard.StepUsername, ctrl.Step())
}

func TestRestoredSessionOpensHome(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyUsername, "erin"))

	m := New(ctx, wizard.New(ctx, store), nil, 0)
	assert.Contains(t, screen(m), "Welcome back, erin!")
	assert.Equal(t, int64(100), m.maxMB)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(ctrlKey('c'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.render())
}

func TestSupersededUploadEventsIgnored(t *testing.T) {
	u := &manualUploader{}
	m, ctrl, _ := newTestModel(t, u)
	login(t, m, "fay")
	chooseCurrent(t, m)
	chooseCurrent(t, m)
	require.Equal(t, wizard.StepUpload, ctrl.Step())

	m.upload.input.SetValue("first.mp4")
	m.Update(keyEnter)
	require.Len(t, u.chans, 1)

	m.Update(keyEsc)
	assert.Equal(t, wizard.StepUpload, ctrl.Step(), "esc cancels the upload first")
	assert.False(t, m.upload.Uploading())
	assert.Error(t, u.ctxs[0].Err())

	m.Update(keyEnter)
	require.Len(t, u.chans, 2)
	require.True(t, m.upload.Uploading())

	m.Update(UploadEventMsg{Event: upload.Failed{Reason: "cancelled"}, events: u.chans[0]})
	assert.True(t, m.upload.Uploading(), "old failure must not stop the new upload")
	assert.NoError(t, u.ctxs[1].Err())
	assert.Empty(t, ctrl.LastUploadFailure())
	assert.NotContains(t, screen(m), "Upload failed")

	video := filepath.Join(t.TempDir(), "first.mp4")
	require.NoError(t, os.WriteFile(video, []byte("frames"), 0644))
	stale, err := upload.Open(video, 0)
	require.NoError(t, err)
	m.Update(UploadEventMsg{Event: upload.Completed{Ref: stale}, events: u.chans[0]})
	assert.True(t, stale.Released(), "a superseded video is released")
	assert.Equal(t, wizard.StepUpload, ctrl.Step())

	fresh, err := upload.Open(video, 0)
	require.NoError(t, err)
	defer func() { _ = fresh.Release() }()
	m.Update(UploadEventMsg{Event: upload.Completed{Ref: fresh}, events: u.chans[1]})
	assert.Equal(t, wizard.StepFeedback, ctrl.Step())
	assert.Same(t, fresh, ctrl.Session().UploadedVideo)
}

func TestUploadEventAfterLeavingStepReleased(t *testing.T) {
	u := &manualUploader{}
	m, ctrl, _ := newTestModel(t, u)
	login(t, m, "gus")
	chooseCurrent(t, m)
	chooseCurrent(t, m)

	m.upload.input.SetValue("clip.mp4")
	m.Update(keyEnter)
	require.Len(t, u.chans, 1)

	m.Update(ctrlKey('b'))
	require.Equal(t, wizard.StepLeaderboard, ctrl.Step())
	assert.Error(t, u.ctxs[0].Err(), "leaving the step cancels the upload")

	video := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(video, []byte("frames"), 0644))
	ref, err := upload.Open(video, 0)
	require.NoError(t, err)
	m.Update(UploadEventMsg{Event: upload.Completed{Ref: ref}, events: u.chans[0]})

	assert.True(t, ref.Released())
	assert.Equal(t, wizard.StepLeaderboard, ctrl.Step())
	assert.Nil(t, ctrl.Session().UploadedVideo)
}
