package profile_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sanaa/core/profile"
)

func TestNewProfileValidate(t *testing.T) {
	valid := func() profile.NewProfile {
		return profile.NewProfile{
			FirstName:       "Amani",
			LastName:        "Joto",
			Email:           "amani@test.test",
			Goals:           []string{profile.GoalPortfolio},
			ArtForms:        []string{profile.ArtFormDrawing},
			ExperienceLevel: profile.ExperienceBeginner,
		}
	}

	tests := []struct {
		name      string
		mutate    func(np *profile.NewProfile)
		wantField string // json field name expected in the validation error
	}{
		{name: "valid", mutate: func(np *profile.NewProfile) {}},
		{
			// the external-identity path submits without selections
			name: "empty selections are valid",
			mutate: func(np *profile.NewProfile) {
				np.Goals = nil
				np.ArtForms = nil
				np.ExperienceLevel = ""
				np.LastName = ""
			},
		},
		{
			name:      "missing first name",
			mutate:    func(np *profile.NewProfile) { np.FirstName = "  " },
			wantField: "first_name",
		},
		{
			name:      "missing email",
			mutate:    func(np *profile.NewProfile) { np.Email = "" },
			wantField: "email",
		},
		{
			name:      "malformed email",
			mutate:    func(np *profile.NewProfile) { np.Email = "nope" },
			wantField: "email",
		},
		{
			name:      "unknown goal",
			mutate:    func(np *profile.NewProfile) { np.Goals = []string{"world-domination"} },
			wantField: "goals",
		},
		{
			name:      "unknown art form",
			mutate:    func(np *profile.NewProfile) { np.ArtForms = []string{"macrame"} },
			wantField: "interests",
		},
		{
			name:      "unknown experience level",
			mutate:    func(np *profile.NewProfile) { np.ExperienceLevel = "grandmaster" },
			wantField: "experience_level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := valid()
			tt.mutate(&np)
			err := np.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error = %v; want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Field() == tt.wantField {
					return
				}
			}
			t.Errorf("Validate() errors = %v; want error on %q", vErrs, tt.wantField)
		})
	}
}

func TestNewProfileValidateCleans(t *testing.T) {
	np := profile.NewProfile{
		FirstName: "  Amani ",
		LastName:  " Joto  ",
		Email:     " AMANI@Test.Test ",
		Goals:     []string{profile.GoalHobby},
	}
	if err := np.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if np.FirstName != "Amani" || np.LastName != "Joto" {
		t.Errorf("names not cleaned: %q %q", np.FirstName, np.LastName)
	}
	if np.Email != "amani@test.test" {
		t.Errorf("email not cleaned: %q", np.Email)
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		p    profile.Profile
		want string
	}{
		{name: "both names", p: profile.Profile{FirstName: "Amani", LastName: "Joto"}, want: "Amani Joto"},
		{name: "first only", p: profile.Profile{FirstName: "Amani"}, want: "Amani"},
		{name: "empty", p: profile.Profile{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.FullName(); got != tt.want {
				t.Errorf("FullName() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestTagLabels(t *testing.T) {
	goals := profile.GoalLabels([]string{profile.GoalPortfolio, profile.GoalContest})
	if goals[0] != "Build a Portfolio" || goals[1] != "Prepare for Contest" {
		t.Errorf("GoalLabels() = %v", goals)
	}

	forms := profile.ArtFormLabels([]string{profile.ArtFormMixedMedia, "unknown"})
	if forms[0] != "Mixed Media" {
		t.Errorf("ArtFormLabels() = %v", forms)
	}
	// unknown values pass through untouched
	if forms[1] != "unknown" {
		t.Errorf("ArtFormLabels() unknown = %q; want pass-through", forms[1])
	}
}
