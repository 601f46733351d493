package signup

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ResumeOffer presents a saved draft for resumption ("welcome back").
type ResumeOffer struct {
	Draft     Draft
	TimeSince string // coarse display bucket, e.g. "23 minutes ago"
}

// LoadSavedProgress checks the draft store on mount. A draft older than the
// staleness threshold is deleted unread: an old partial signup is more likely
// to hold stale contact info than genuine intent to resume. A usable draft is
// offered for resumption; autosave stays suspended until the offer is
// accepted or declined, but navigation is never blocked by it.
func (w *Wizard) LoadSavedProgress() (*ResumeOffer, error) {
	d, err := w.drafts.GetDraft(w.key)
	if err != nil {
		if errors.Cause(err) == ErrDraftNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "loading signup draft")
	}

	if nowFunc().Sub(d.SavedAt) > w.draftMaxAge {
		if err := w.drafts.DeleteDraft(w.key); err != nil {
			w.logger.Error("deleting stale signup draft", err)
		}
		return nil, nil
	}

	w.pendingResume = &d
	return &ResumeOffer{Draft: d, TimeSince: TimeSince(d.SavedAt, nowFunc())}, nil
}

// AcceptResume copies every field of the offered draft into live state,
// restores the saved step and resumes autosave.
func (w *Wizard) AcceptResume() {
	if w.pendingResume == nil {
		return
	}
	d := *w.pendingResume
	w.pendingResume = nil
	w.fields = d.Fields
	w.jumpTo(d.Step)
	w.state = StateInProgress
}

// DeclineResume discards the offered draft; live state stays at its initial
// values.
func (w *Wizard) DeclineResume() {
	if w.pendingResume == nil {
		return
	}
	w.pendingResume = nil
	if err := w.drafts.DeleteDraft(w.key); err != nil {
		w.logger.Error("deleting declined signup draft", err)
	}
}

// TimeSinceSave renders how long ago progress was last saved; display only.
func (w *Wizard) TimeSinceSave() string {
	d, err := w.drafts.GetDraft(w.key)
	if err != nil {
		return ""
	}
	return TimeSince(d.SavedAt, nowFunc())
}

// TimeSince buckets elapsed time into a coarse human-readable string.
func TimeSince(t, now time.Time) string {
	mins := int(now.Sub(t).Minutes())
	switch {
	case mins < 1:
		return "just now"
	case mins == 1:
		return "1 minute ago"
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	}

	hours := mins / 60
	switch {
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
