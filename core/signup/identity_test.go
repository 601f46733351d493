package signup_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
)

func TestBeginIdentitySignIn(t *testing.T) {
	t.Run("requires prior steps", func(t *testing.T) {
		env := newTestEnv()
		w := env.newWizard()

		_, err := w.BeginIdentitySignIn(context.Background(), "google")
		if !core.IsValidationError(err) {
			t.Fatalf("BeginIdentitySignIn() error = %v; want validation error", err)
		}
		if _, err := env.handoffs.GetHandoff(testKey); errors.Cause(err) != signup.ErrHandoffNotFound {
			t.Errorf("GetHandoff() error = %v; want ErrHandoffNotFound", err)
		}
	})

	t.Run("writes handoff before redirect", func(t *testing.T) {
		env := newTestEnv()
		w := env.newWizard()
		f := fullFields()
		fillStep(w, 0, f)
		fillStep(w, 1, f)

		url, err := w.BeginIdentitySignIn(context.Background(), "google")
		if err != nil {
			t.Fatalf("BeginIdentitySignIn() failed: %v", err)
		}
		if !strings.Contains(url, "provider=google") {
			t.Errorf("redirect url = %q; want provider param", url)
		}

		h, err := env.handoffs.GetHandoff(testKey)
		if err != nil {
			t.Fatalf("GetHandoff() failed: %v", err)
		}
		if !stringsEqual(h.Goals, f.Goals) || h.ExperienceLevel != f.ExperienceLevel || !stringsEqual(h.ArtForms, f.ArtForms) {
			t.Errorf("handoff = %+v; want selections %+v", h, f)
		}
	})
}

func TestReconcileIdentity(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		env := newTestEnv()
		w := env.newWizard()

		found, err := w.ReconcileIdentity(context.Background())
		if err != nil {
			t.Fatalf("ReconcileIdentity() failed: %v", err)
		}
		if found {
			t.Error("found = true; want false")
		}
	})

	t.Run("completes the signup", func(t *testing.T) {
		env := newTestEnv()
		f := fullFields()
		h := signup.Handoff{Goals: f.Goals, ExperienceLevel: f.ExperienceLevel, ArtForms: f.ArtForms}
		if err := env.handoffs.PutHandoff(testKey, h); err != nil {
			t.Fatalf("PutHandoff() failed: %v", err)
		}
		env.broker.Session = &signup.Session{Email: "ada@test.test", DisplayName: "Ada Lovelace Byron"}

		w := env.newWizard()
		found, err := w.ReconcileIdentity(context.Background())
		if err != nil {
			t.Fatalf("ReconcileIdentity() failed: %v", err)
		}
		if !found {
			t.Fatal("found = false; want true")
		}

		if w.State() != signup.StateSucceeded {
			t.Errorf("State() = %q; want %q", w.State(), signup.StateSucceeded)
		}
		success := w.Success()
		if success.FirstName != "Ada" {
			t.Errorf("Success().FirstName = %q; want %q", success.FirstName, "Ada")
		}
		if !stringsEqual(success.Goals, f.Goals) {
			t.Errorf("Success().Goals = %v; want %v", success.Goals, f.Goals)
		}

		p, err := env.svc.GetByEmail(context.Background(), "ada@test.test")
		if err != nil {
			t.Fatalf("GetByEmail() failed: %v", err)
		}
		if p.FirstName != "Ada" || p.LastName != "Lovelace Byron" {
			t.Errorf("stored name = %q %q; want split display name", p.FirstName, p.LastName)
		}
		if !stringsEqual(p.Goals, f.Goals) || p.ExperienceLevel != f.ExperienceLevel {
			t.Errorf("stored selections = %+v; want handoff values", p)
		}

		if !env.broker.EndedLocal {
			t.Error("local identity session not ended")
		}
		if _, err := env.handoffs.GetHandoff(testKey); errors.Cause(err) != signup.ErrHandoffNotFound {
			t.Errorf("GetHandoff() error = %v; want cleared handoff", err)
		}
	})

	t.Run("tolerates a missing handoff", func(t *testing.T) {
		env := newTestEnv()
		env.broker.Session = &signup.Session{Email: "solo@test.test", DisplayName: "Solo"}

		w := env.newWizard()
		found, err := w.ReconcileIdentity(context.Background())
		if err != nil {
			t.Fatalf("ReconcileIdentity() failed: %v", err)
		}
		if !found {
			t.Fatal("found = false; want true")
		}

		p, err := env.svc.GetByEmail(context.Background(), "solo@test.test")
		if err != nil {
			t.Fatalf("GetByEmail() failed: %v", err)
		}
		if len(p.Goals) != 0 || p.ExperienceLevel != "" {
			t.Errorf("stored selections = %+v; want empty", p)
		}
	})

	t.Run("duplicate profile still succeeds", func(t *testing.T) {
		env := newTestEnv()
		if _, err := env.svc.Create(context.Background(), profile.NewProfile{
			FirstName: "Ada", Email: "ada@test.test",
		}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		env.broker.Session = &signup.Session{Email: "ada@test.test", DisplayName: "Ada Lovelace"}

		w := env.newWizard()
		found, err := w.ReconcileIdentity(context.Background())
		if err != nil {
			t.Fatalf("ReconcileIdentity() failed: %v", err)
		}
		if !found || w.State() != signup.StateSucceeded {
			t.Errorf("found=%v state=%q; want completed signup", found, w.State())
		}
	})

	t.Run("create failure is fatal", func(t *testing.T) {
		env := newTestEnv()
		env.broker.Session = &signup.Session{Email: "ada@test.test", DisplayName: "Ada Lovelace"}

		w := signup.New(testKey, failingProfileSvc{}, env.drafts, env.handoffs, env.broker, env.logger)
		found, err := w.ReconcileIdentity(context.Background())
		if !found {
			t.Error("found = false; want true")
		}
		if errors.Cause(err) != signup.ErrSetupIncomplete {
			t.Errorf("ReconcileIdentity() error = %v; want ErrSetupIncomplete", err)
		}
	})
}

func TestSplitDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{name: "empty", input: "", wantFirst: "", wantLast: ""},
		{name: "whitespace only", input: "   ", wantFirst: "", wantLast: ""},
		{name: "single token", input: "Ada", wantFirst: "Ada", wantLast: ""},
		{name: "two tokens", input: "Ada Lovelace", wantFirst: "Ada", wantLast: "Lovelace"},
		{name: "many tokens", input: "Ada  Lovelace   Byron", wantFirst: "Ada", wantLast: "Lovelace Byron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := signup.SplitDisplayName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitDisplayName(%q) = %q, %q; want %q, %q", tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}
