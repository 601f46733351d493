package signup

import "time"

// Step is one page of the wizard. Steps are fixed and ordered; only the index
// into them is ever persisted.
type Step struct {
	Name              string
	EstimatedDuration time.Duration

	// Complete reports whether the step's required inputs are present.
	Complete func(f Fields) bool
	// Requirement is surfaced when Complete is false.
	Requirement string
}

var Steps = []Step{
	{
		Name:              "Goals",
		EstimatedDuration: 30 * time.Second,
		Complete:          func(f Fields) bool { return len(f.Goals) > 0 },
		Requirement:       "please select at least one goal",
	},
	{
		Name:              "Experience & Interests",
		EstimatedDuration: 45 * time.Second,
		Complete:          func(f Fields) bool { return f.ExperienceLevel != "" && len(f.ArtForms) > 0 },
		Requirement:       "please select your experience level and at least one art form",
	},
	{
		Name:              "Account",
		EstimatedDuration: time.Minute,
		Complete:          func(f Fields) bool { return f.FirstName != "" && f.LastName != "" && f.Email != "" },
		Requirement:       "please fill in all required fields",
	},
}

// EstimatedTimeRemaining sums the estimated durations of the given step and
// the ones after it; display only.
func EstimatedTimeRemaining(step int) time.Duration {
	var total time.Duration
	for i, s := range Steps {
		if i >= step {
			total += s.EstimatedDuration
		}
	}
	return total
}
