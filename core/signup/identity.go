package signup

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
)

// Session is the identity handed back by the external provider.
type Session struct {
	Email       string
	DisplayName string
}

// IdentityBroker fronts the hosted identity provider. The provider is used
// purely as a one-time identity source, not as an ongoing session.
type IdentityBroker interface {
	// BeginRedirect returns the provider URL the browser must navigate to.
	// The navigation unloads the page; callers must persist state first.
	BeginRedirect(ctx context.Context, provider string) (string, error)
	// ActiveSession returns the current session, or nil when none exists.
	ActiveSession(ctx context.Context) (*Session, error)
	// EndLocalSession drops the provider's local session only; the upstream
	// account is untouched.
	EndLocalSession(ctx context.Context) error
}

// ErrSetupIncomplete signals that the provider account exists but the profile
// could not be stored. There is no automatic retry: the provider account
// cannot be cleanly rolled back from here, so manual follow-up is expected.
var ErrSetupIncomplete = errors.New("account created but profile setup is incomplete")

// BeginIdentitySignIn writes the handoff record and returns the provider
// redirect URL. The handoff write happens synchronously before the redirect:
// the navigation unloads the page and an in-flight asynchronous write would
// be lost.
func (w *Wizard) BeginIdentitySignIn(ctx context.Context, provider string) (string, error) {
	// the steps before Account must be complete; the provider supplies the rest
	for i := 0; i < len(Steps)-1; i++ {
		if step := Steps[i]; !step.Complete(w.fields) {
			return "", core.NewValidationError(errors.New(step.Requirement), core.FieldError{Field: step.Name, Error: step.Requirement})
		}
	}

	h := Handoff{
		Goals:           w.fields.Goals,
		ExperienceLevel: w.fields.ExperienceLevel,
		ArtForms:        w.fields.ArtForms,
	}
	if err := w.handoffs.PutHandoff(w.key, h); err != nil {
		return "", errors.Wrap(err, "saving signup handoff")
	}

	url, err := w.broker.BeginRedirect(ctx, provider)
	if err != nil {
		return "", errors.Wrap(err, "beginning identity redirect")
	}
	return url, nil
}

// ReconcileIdentity runs on mount after a possible return from the identity
// provider; it reports whether an active session was found. When one is, the
// handoff record is recovered (empty selections when absent), the profile is
// created (a duplicate counts as success), the welcome email is sent
// best-effort, both stores are cleared, the local provider session is ended
// and the wizard completes with the recovered name and goals.
func (w *Wizard) ReconcileIdentity(ctx context.Context) (bool, error) {
	sess, err := w.broker.ActiveSession(ctx)
	if err != nil {
		return false, errors.Wrap(err, "checking identity session")
	}
	if sess == nil {
		return false, nil
	}

	h, err := w.handoffs.GetHandoff(w.key)
	if err != nil && errors.Cause(err) != ErrHandoffNotFound {
		w.logger.Error("loading signup handoff", err)
	}

	first, last := SplitDisplayName(sess.DisplayName)
	np := profile.NewProfile{
		FirstName:       first,
		LastName:        last,
		Email:           sess.Email,
		Goals:           h.Goals,
		ArtForms:        h.ArtForms,
		ExperienceLevel: h.ExperienceLevel,
	}
	if _, err := w.profileSvc.Create(ctx, np); err != nil && errors.Cause(err) != profile.ErrEmailExists {
		w.logger.Error("creating profile after identity return", err)
		return true, ErrSetupIncomplete
	}

	if err := w.broker.EndLocalSession(ctx); err != nil {
		w.logger.Error("ending local identity session", err)
	}

	w.complete(SuccessData{FirstName: first, Goals: h.Goals})
	return true, nil
}

// SplitDisplayName splits a provider display name: the first
// whitespace-delimited token is the first name, the remainder (possibly
// empty) is the last name.
func SplitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
