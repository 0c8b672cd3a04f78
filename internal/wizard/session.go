package wizard

import "github.com/mark3labs/sensei/internal/upload"

// Session accumulates the user's selections for one wizard run.
// Zero values mean "not chosen yet".
type Session struct {
	Username          string
	Category          Category
	DisabilitySubtype DisabilityType
	SelectedSport     string
	UploadedVideo     *upload.Handle
}

func (s *Session) sportGroup() string {
	return SportGroup(s.Category, s.DisabilitySubtype)
}

// releaseVideo drops the uploaded video handle, closing it.
func (s *Session) releaseVideo() {
	if s.UploadedVideo == nil {
		return
	}
	_ = s.UploadedVideo.Release()
	s.UploadedVideo = nil
}
