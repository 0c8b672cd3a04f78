// Package wizard implements the coaching wizard's state machine: the active
// step, the accumulated session and the rules for moving between steps.
//
// Every operation is total. Input that does not fit the current state is
// logged and ignored, leaving the step unchanged.
package wizard

import (
	"context"
	"strings"

	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/mark3labs/sensei/internal/logger"
	"github.com/mark3labs/sensei/internal/storage"
	"github.com/mark3labs/sensei/internal/upload"
)

// TargetProgress is shown in navigation but has no screen yet.
const TargetProgress = "progress"

// Controller owns the Session and the active Step. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Controller struct {
	store   storage.Store
	step    Step
	session Session

	lastUploadFailure string
	onChange          func(from, to Step)
}

// Option configures a Controller.
type Option func(*Controller)

// WithStepObserver registers fn to be called after every step change.
func WithStepObserver(fn func(from, to Step)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// New creates a controller and restores a persisted username. With a stored
// name the wizard opens on the home step; otherwise it asks for a username.
func New(ctx context.Context, store storage.Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		step:  StepUsername,
	}
	for _, opt := range opts {
		opt(c)
	}

	name, ok, err := store.Get(ctx, storage.KeyUsername)
	if err != nil {
		logger.Warn("Failed to read persisted username: %v", err)
		return c
	}
	if name = strings.TrimSpace(name); ok && name != "" {
		c.session.Username = name
		c.step = StepHome
		logger.Debug("Restored username %q", name)
	}
	return c
}

// Step returns the active step.
func (c *Controller) Step() Step {
	return c.step
}

// Session returns a copy of the accumulated selections.
func (c *Controller) Session() Session {
	return c.session
}

// LastUploadFailure returns the reason of the most recent failed upload, or
// "" after a successful one.
func (c *Controller) LastUploadFailure() string {
	return c.lastUploadFailure
}

// SportGroup returns the catalog group for the current classification.
func (c *Controller) SportGroup() string {
	return c.session.sportGroup()
}

// SetUsername persists name and moves on to category selection. Blank names
// are ignored.
func (c *Controller) SetUsername(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Debug("Ignoring blank username")
		return
	}
	if c.step != StepUsername {
		logger.Warn("Ignoring username outside the username step (step=%s)", c.step)
		return
	}

	if err := c.store.Set(ctx, storage.KeyUsername, name); err != nil {
		logger.Error("Failed to persist username: %v", err)
	}
	c.session.Username = name
	c.moveTo(StepCategory)
}

// SelectCategory records the category. Disability continues to the
// sub-category screen, normal goes straight to sport selection.
func (c *Controller) SelectCategory(_ context.Context, cat Category) {
	if !c.requireLogin("select category") {
		return
	}
	if cat != CategoryNormal && cat != CategoryDisability {
		logger.Warn("Ignoring unknown category %q", cat)
		return
	}

	if cat != c.session.Category {
		c.session.SelectedSport = ""
		c.session.releaseVideo()
	}
	c.session.Category = cat

	if cat == CategoryDisability {
		c.moveTo(StepSubcategory)
		return
	}
	c.session.DisabilitySubtype = ""
	c.moveTo(StepGame)
}

// SelectSubcategory records the disability sub-category and moves to sport
// selection. Only meaningful in the disability category.
func (c *Controller) SelectSubcategory(_ context.Context, t DisabilityType) {
	if !c.requireLogin("select subcategory") {
		return
	}
	if c.session.Category != CategoryDisability {
		logger.Warn("Ignoring subcategory %q for category %q", t, c.session.Category)
		return
	}
	if SportGroup(CategoryDisability, t) == "" {
		logger.Warn("Ignoring unknown subcategory %q", t)
		return
	}

	if t != c.session.DisabilitySubtype {
		c.session.SelectedSport = ""
		c.session.releaseVideo()
	}
	c.session.DisabilitySubtype = t
	c.moveTo(StepGame)
}

// SelectSport records a sport offered for the current classification and
// moves to the upload step.
func (c *Controller) SelectSport(_ context.Context, id string) {
	if !c.requireLogin("select sport") {
		return
	}
	group := c.session.sportGroup()
	if group == "" {
		logger.Warn("Ignoring sport %q before classification is complete", id)
		return
	}
	if _, ok := catalog.Lookup(group, id); !ok {
		logger.Warn("Ignoring sport %q not offered to %s", id, group)
		return
	}

	if id != c.session.SelectedSport {
		c.session.releaseVideo()
	}
	c.session.SelectedSport = id
	c.moveTo(StepUpload)
}

// CompleteUpload stores the uploaded video and shows its feedback. A
// previously held video is released.
func (c *Controller) CompleteUpload(_ context.Context, ref *upload.Handle) {
	if !c.requireLogin("complete upload") {
		return
	}
	if ref == nil {
		logger.Warn("Ignoring upload completion without a video")
		return
	}
	if c.session.SelectedSport == "" {
		logger.Warn("Ignoring upload completion before a sport is selected")
		return
	}

	if c.session.UploadedVideo != ref {
		c.session.releaseVideo()
	}
	c.session.UploadedVideo = ref
	c.lastUploadFailure = ""
	logger.Info("Video %s uploaded for %s", ref.ID, c.session.SelectedSport)
	c.moveTo(StepFeedback)
}

// HandleUpload reacts to an uploader event. Only terminal events matter, and
// only while the upload step is active.
func (c *Controller) HandleUpload(ctx context.Context, ev upload.Event) {
	switch ev := ev.(type) {
	case upload.Completed:
		if c.step != StepUpload {
			logger.Warn("Discarding upload that finished after leaving the upload step (step=%s)", c.step)
			_ = ev.Ref.Release()
			return
		}
		c.CompleteUpload(ctx, ev.Ref)

	case upload.Failed:
		if c.step != StepUpload {
			return
		}
		c.lastUploadFailure = ev.Reason
		logger.Warn("Upload failed: %s", ev.Reason)

	case upload.Progress:
		// The view renders progress; the state machine waits for the end.
	}
}

// Navigate jumps to a named step when the session allows it. Unknown names,
// the progress placeholder and unreachable steps are ignored.
func (c *Controller) Navigate(_ context.Context, target string) {
	if !c.requireLogin("navigate") {
		return
	}
	if strings.EqualFold(strings.TrimSpace(target), TargetProgress) {
		logger.Info("Progress tracking is not available yet")
		return
	}

	step, ok := ParseStep(target)
	if !ok {
		logger.Warn("Ignoring navigation to unknown step %q", target)
		return
	}
	if step == StepUsername {
		logger.Warn("Ignoring navigation to username; log out instead")
		return
	}
	if !steps[step].reachable(&c.session) {
		logger.Warn("Ignoring navigation to %s: preconditions not met", step)
		return
	}
	c.moveTo(step)
}

// Logout forgets the user, clears the persisted name and returns to the
// username step. It succeeds from any step.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Clear(ctx, storage.KeyUsername); err != nil {
		logger.Error("Failed to clear persisted username: %v", err)
	}
	c.session.releaseVideo()
	c.session = Session{}
	c.lastUploadFailure = ""
	c.moveTo(StepUsername)
}

// Close releases the held video. The persisted username is kept so the next
// run resumes on the home step.
func (c *Controller) Close() error {
	if c.session.UploadedVideo == nil {
		return nil
	}
	err := c.session.UploadedVideo.Release()
	c.session.UploadedVideo = nil
	return err
}

func (c *Controller) requireLogin(action string) bool {
	if c.session.Username == "" {
		logger.Warn("Ignoring %s while logged out", action)
		return false
	}
	return true
}

func (c *Controller) moveTo(to Step) {
	from := c.step
	c.step = to
	if from != to {
		logger.Debug("Step %s -> %s", from, to)
	}
	if c.onChange != nil {
		c.onChange(from, to)
	}
}
