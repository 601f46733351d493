package profile

import (
	"strings"
	"time"

	"github.com/trezcool/sanaa/core"
)

// Profile is a prospective student's signup record.
type Profile struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Goals           []string  `json:"goals"`
	ArtForms        []string  `json:"interests"`
	ExperienceLevel string    `json:"experience_level"`
	Newsletter      bool      `json:"newsletter"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NewProfile contains information needed to create a new Profile.
// Presence of goals/experience/account fields is enforced by the wizard's step
// gates; validation here only checks shape and tag membership so the
// external-identity path (which may carry empty sets) can still submit.
type NewProfile struct {
	FirstName       string   `json:"first_name" validate:"required"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	Goals           []string `json:"goals" validate:"omitempty,allgoals"`
	ArtForms        []string `json:"interests" validate:"omitempty,allartforms"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,explevel"`
	Newsletter      bool     `json:"newsletter"`
}

func (np *NewProfile) Validate() error {
	np.FirstName = core.CleanString(np.FirstName)
	np.LastName = core.CleanString(np.LastName)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Phone = core.CleanString(np.Phone)
	return core.Validate.Struct(np)
}

// QueryFilter narrows the admin profile listing.
type QueryFilter struct {
	Search          string    `query:"search"`
	Goals           []string  `query:"goal"`
	ExperienceLevel string    `query:"experience_level"`
	Newsletter      *bool     `query:"newsletter"`
	CreatedFrom     time.Time `query:"created_from"`
	CreatedTo       time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Goals == nil && qf.ExperienceLevel == "" && qf.Newsletter == nil &&
		qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.ExperienceLevel = core.CleanString(qf.ExperienceLevel, true /* lower */)
}
