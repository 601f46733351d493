package signup

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrDraftNotFound   = errors.New("draft not found")
	ErrHandoffNotFound = errors.New("handoff not found")
)

// Fields holds one browser's live wizard input.
type Fields struct {
	Goals           []string `json:"goals"`
	ExperienceLevel string   `json:"experience_level"`
	ArtForms        []string `json:"art_forms"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Newsletter      bool     `json:"newsletter"`
}

func initialFields() Fields {
	return Fields{Newsletter: true}
}

// IsEmpty reports whether no field has been entered yet. The newsletter
// opt-in defaults to true and does not count as input on its own.
func (f Fields) IsEmpty() bool {
	return len(f.Goals) == 0 && f.ExperienceLevel == "" && len(f.ArtForms) == 0 &&
		f.FirstName == "" && f.LastName == "" && f.Email == "" && f.Phone == ""
}

// Draft is the persisted snapshot of in-progress wizard input. It is always
// written as a full overwrite: a partial patch cannot distinguish an absent
// field from a cleared one.
type Draft struct {
	Step    int       `json:"step"`
	Fields  Fields    `json:"fields"`
	SavedAt time.Time `json:"saved_at"` // UTC
}

// Handoff is the field subset carried across an external-identity redirect.
type Handoff struct {
	Goals           []string `json:"goals"`
	ExperienceLevel string   `json:"experience_level"`
	ArtForms        []string `json:"art_forms"`
}

type (
	// DraftStore persists one draft per signup key; it survives page reloads.
	DraftStore interface {
		// GetDraft returns ErrDraftNotFound when no draft is stored.
		GetDraft(key string) (Draft, error)
		// PutDraft overwrites any stored draft.
		PutDraft(key string, d Draft) error
		// DeleteDraft is a no-op when no draft is stored.
		DeleteDraft(key string) error
	}

	// HandoffStore holds the redirect handoff record; it only needs to
	// survive a single provider round trip.
	HandoffStore interface {
		// GetHandoff returns ErrHandoffNotFound when no record is stored.
		GetHandoff(key string) (Handoff, error)
		PutHandoff(key string, h Handoff) error
		// DeleteHandoff is a no-op when no record is stored.
		DeleteHandoff(key string) error
	}
)
