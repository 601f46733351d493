package signup_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
)

func putDraft(t *testing.T, env *testEnv, step int, f signup.Fields, savedAt time.Time) signup.Draft {
	t.Helper()
	d := signup.Draft{Step: step, Fields: f, SavedAt: savedAt.UTC()}
	if err := env.drafts.PutDraft(testKey, d); err != nil {
		t.Fatalf("PutDraft() failed: %v", err)
	}
	return d
}

func TestLoadSavedProgress(t *testing.T) {
	t.Run("no draft", func(t *testing.T) {
		env := newTestEnv()
		w := env.newWizard()

		offer, err := w.LoadSavedProgress()
		if err != nil {
			t.Fatalf("LoadSavedProgress() failed: %v", err)
		}
		if offer != nil {
			t.Errorf("offer = %+v; want nil", offer)
		}
	})

	t.Run("usable draft is offered", func(t *testing.T) {
		env := newTestEnv()
		d := putDraft(t, env, 1, fullFields(), time.Now().Add(-23*time.Minute))

		w := env.newWizard()
		offer, err := w.LoadSavedProgress()
		if err != nil {
			t.Fatalf("LoadSavedProgress() failed: %v", err)
		}
		if offer == nil {
			t.Fatal("offer = nil; want resume offer")
		}
		if offer.Draft.Step != d.Step || !fieldsEqual(offer.Draft.Fields, d.Fields) {
			t.Errorf("offered draft = %+v; want %+v", offer.Draft, d)
		}
		if offer.TimeSince != "23 minutes ago" {
			t.Errorf("TimeSince = %q; want %q", offer.TimeSince, "23 minutes ago")
		}

		// the live wizard is untouched until the offer is acknowledged
		if w.StepIndex() != 0 || !w.Fields().IsEmpty() {
			t.Errorf("wizard touched before acknowledgement: step=%d fields=%+v", w.StepIndex(), w.Fields())
		}
	})

	t.Run("stale draft is deleted unread", func(t *testing.T) {
		env := newTestEnv()
		stale := time.Now().Add(-core.Conf.Signup.DraftMaxAge - time.Hour)
		putDraft(t, env, 2, fullFields(), stale)

		w := env.newWizard()
		offer, err := w.LoadSavedProgress()
		if err != nil {
			t.Fatalf("LoadSavedProgress() failed: %v", err)
		}
		if offer != nil {
			t.Errorf("offer = %+v; want nil", offer)
		}
		if _, err := env.drafts.GetDraft(testKey); errors.Cause(err) != signup.ErrDraftNotFound {
			t.Errorf("GetDraft() error = %v; want ErrDraftNotFound", err)
		}
	})
}

func TestAcceptResume(t *testing.T) {
	env := newTestEnv()
	d := putDraft(t, env, 1, fullFields(), time.Now())

	w := env.newWizard()
	if _, err := w.LoadSavedProgress(); err != nil {
		t.Fatalf("LoadSavedProgress() failed: %v", err)
	}

	// autosave is suspended while the offer is unacknowledged: typing must not
	// overwrite the offered draft
	w.ToggleGoal(profile.GoalContest)
	stored, err := env.drafts.GetDraft(testKey)
	if err != nil {
		t.Fatalf("GetDraft() failed: %v", err)
	}
	if !fieldsEqual(stored.Fields, d.Fields) {
		t.Errorf("draft overwritten before acknowledgement: %+v", stored.Fields)
	}

	w.AcceptResume()
	if w.StepIndex() != d.Step {
		t.Errorf("StepIndex() = %d; want %d", w.StepIndex(), d.Step)
	}
	if !fieldsEqual(w.Fields(), d.Fields) {
		t.Errorf("Fields() = %+v; want %+v", w.Fields(), d.Fields)
	}

	// autosave resumes after acceptance
	w.ToggleGoal(profile.GoalContest)
	stored, err = env.drafts.GetDraft(testKey)
	if err != nil {
		t.Fatalf("GetDraft() failed: %v", err)
	}
	if !fieldsEqual(stored.Fields, w.Fields()) {
		t.Errorf("draft = %+v; want mirror of %+v", stored.Fields, w.Fields())
	}
}

func TestDeclineResume(t *testing.T) {
	env := newTestEnv()
	putDraft(t, env, 1, fullFields(), time.Now())

	w := env.newWizard()
	if _, err := w.LoadSavedProgress(); err != nil {
		t.Fatalf("LoadSavedProgress() failed: %v", err)
	}
	w.DeclineResume()

	if !w.Fields().IsEmpty() || w.StepIndex() != 0 {
		t.Errorf("wizard not pristine: step=%d fields=%+v", w.StepIndex(), w.Fields())
	}
	if _, err := env.drafts.GetDraft(testKey); errors.Cause(err) != signup.ErrDraftNotFound {
		t.Errorf("GetDraft() error = %v; want ErrDraftNotFound", err)
	}
}

func TestTimeSince(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "seconds", ago: 20 * time.Second, want: "just now"},
		{name: "one minute", ago: 90 * time.Second, want: "1 minute ago"},
		{name: "minutes", ago: 23 * time.Minute, want: "23 minutes ago"},
		{name: "one hour", ago: time.Hour + 10*time.Minute, want: "1 hour ago"},
		{name: "hours", ago: 5 * time.Hour, want: "5 hours ago"},
		{name: "one day", ago: 25 * time.Hour, want: "1 day ago"},
		{name: "days", ago: 6*24*time.Hour + 3*time.Hour, want: "6 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signup.TimeSince(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("TimeSince() = %q; want %q", got, tt.want)
			}
		})
	}
}
