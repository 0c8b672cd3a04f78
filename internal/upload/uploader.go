package upload

import (
	"context"
	"time"

	"github.com/mark3labs/sensei/internal/logger"
)

// Event is reported by an Uploader: zero or more Progress values followed by
// exactly one Completed or Failed.
type Event interface {
	isEvent()
}

// Progress reports a percentage in 0..100.
type Progress struct {
	Percent int
}

// Completed carries the handle of the finished upload. The receiver owns it.
type Completed struct {
	Ref *Handle
}

// Failed ends an upload without a handle.
type Failed struct {
	Reason string
}

func (Progress) isEvent()  {}
func (Completed) isEvent() {}
func (Failed) isEvent()    {}

// Terminal reports whether ev ends an upload.
func Terminal(ev Event) bool {
	switch ev.(type) {
	case Completed, Failed:
		return true
	}
	return false
}

// Uploader starts an upload of the file at path. The returned channel is
// closed after the terminal event. A consumer that cancels ctx may stop
// reading; the terminal event is then best effort.
type Uploader interface {
	Start(ctx context.Context, path string) <-chan Event
}

// Simulated pretends to upload: it opens and validates the file, then reports
// Increment percent every Interval and completes once Duration has elapsed.
type Simulated struct {
	Interval  time.Duration
	Increment int
	Duration  time.Duration
	MaxSize   int64
}

// NewSimulated returns an uploader with the classic timings: +10% every 200ms,
// done after 3s.
func NewSimulated() *Simulated {
	return &Simulated{
		Interval:  200 * time.Millisecond,
		Increment: 10,
		Duration:  3 * time.Second,
		MaxSize:   DefaultMaxSize,
	}
}

func (s *Simulated) Start(ctx context.Context, path string) <-chan Event {
	// Buffered so that a validation failure never blocks.
	events := make(chan Event, 1)

	h, err := Open(path, s.MaxSize)
	if err != nil {
		logger.Warn("Upload rejected: %v", err)
		events <- Failed{Reason: err.Error()}
		close(events)
		return events
	}

	logger.Debug("Upload started: id=%s size=%s", h.ID, h.SizeMB())
	go s.run(ctx, h, events)
	return events
}

func (s *Simulated) run(ctx context.Context, h *Handle, events chan<- Event) {
	defer close(events)

	interval := s.Interval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	increment := s.Increment
	if increment <= 0 {
		increment = 10
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	done := time.NewTimer(s.Duration)
	defer done.Stop()

	// send delivers ev unless the context ends first; the handle is
	// released on cancellation because nobody will receive it.
	send := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			_ = h.Release()
			return false
		}
	}

	percent := 0
	for {
		select {
		case <-ctx.Done():
			_ = h.Release()
			logger.Debug("Upload cancelled: id=%s", h.ID)
			select {
			case events <- Failed{Reason: "cancelled"}:
			default:
			}
			return

		case <-ticker.C:
			if percent >= 100 {
				continue
			}
			percent += increment
			if percent > 100 {
				percent = 100
			}
			if !send(Progress{Percent: percent}) {
				return
			}

		case <-done.C:
			if percent < 100 && !send(Progress{Percent: 100}) {
				return
			}
			if send(Completed{Ref: h}) {
				logger.Debug("Upload completed: id=%s", h.ID)
			}
			return
		}
	}
}
