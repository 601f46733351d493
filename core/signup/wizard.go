package signup

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
)

// State is the wizard's lifecycle state.
type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var nowFunc = time.Now // mockable

// SuccessData personalizes the success view after completion.
type SuccessData struct {
	FirstName string
	Goals     []string
}

// Wizard drives one browser's signup: it owns the live field state, the step
// position, autosave, resumption and submission. All of it is explicit
// instance state keyed by an opaque per-browser key.
type Wizard struct {
	key    string
	state  State
	step   int
	fields Fields

	// a loaded draft pending acknowledgement; autosave is suspended while
	// non-nil so the offered draft cannot be overwritten.
	pendingResume *Draft

	success SuccessData

	profileSvc profile.Service
	drafts     DraftStore
	handoffs   HandoffStore
	broker     IdentityBroker
	logger     core.Logger

	draftMaxAge time.Duration
}

func New(key string, profileSvc profile.Service, drafts DraftStore, handoffs HandoffStore, broker IdentityBroker, logger core.Logger) *Wizard {
	return &Wizard{
		key:         key,
		state:       StateInProgress,
		fields:      initialFields(),
		profileSvc:  profileSvc,
		drafts:      drafts,
		handoffs:    handoffs,
		broker:      broker,
		logger:      logger,
		draftMaxAge: core.Conf.Signup.DraftMaxAge,
	}
}

func (w *Wizard) Key() string          { return w.key }
func (w *Wizard) State() State         { return w.state }
func (w *Wizard) StepIndex() int       { return w.step }
func (w *Wizard) CurrentStep() Step    { return Steps[w.step] }
func (w *Wizard) Fields() Fields       { return w.fields }
func (w *Wizard) Success() SuccessData { return w.success }

// Progress is the completion percentage shown by the host's progress bar.
func (w *Wizard) Progress() int {
	return (w.step + 1) * 100 / len(Steps)
}

// Advance moves to the next step if the current step's requirements are met;
// otherwise the position is unchanged and the unmet requirement is returned
// as a validation error. Advancing past the last step is a no-op.
func (w *Wizard) Advance() error {
	step := Steps[w.step]
	if !step.Complete(w.fields) {
		return core.NewValidationError(errors.New(step.Requirement), core.FieldError{Field: step.Name, Error: step.Requirement})
	}
	if w.step < len(Steps)-1 {
		w.step++
		w.autosave()
	}
	return nil
}

// Retreat moves back one step, clamped at the first; never validated.
func (w *Wizard) Retreat() {
	w.reopen()
	if w.step > 0 {
		w.step--
		w.autosave()
	}
}

// jumpTo restores a saved position, bypassing validation: a resumed user may
// legitimately be sitting on an incomplete step.
func (w *Wizard) jumpTo(step int) {
	if step < 0 {
		step = 0
	}
	if max := len(Steps) - 1; step > max {
		step = max
	}
	w.step = step
}

// Restore rehydrates host-held state, bypassing validation: the restored
// position may legitimately sit on an incomplete step.
func (w *Wizard) Restore(step int, fields Fields) {
	w.jumpTo(step)
	w.fields = fields
}

// Field mutators. Multi-select toggles are idempotent set-membership flips;
// re-selecting a single choice overwrites the previous one. Every mutation
// triggers autosave.

func (w *Wizard) ToggleGoal(goal string) {
	w.reopen()
	w.fields.Goals = toggleTag(w.fields.Goals, goal)
	w.autosave()
}

func (w *Wizard) ToggleArtForm(form string) {
	w.reopen()
	w.fields.ArtForms = toggleTag(w.fields.ArtForms, form)
	w.autosave()
}

func (w *Wizard) SetExperienceLevel(level string) {
	w.reopen()
	w.fields.ExperienceLevel = level
	w.autosave()
}

func (w *Wizard) SetFirstName(name string) {
	w.reopen()
	w.fields.FirstName = name
	w.autosave()
}

func (w *Wizard) SetLastName(name string) {
	w.reopen()
	w.fields.LastName = name
	w.autosave()
}

func (w *Wizard) SetEmail(email string) {
	w.reopen()
	w.fields.Email = email
	w.autosave()
}

func (w *Wizard) SetPhone(phone string) {
	w.reopen()
	w.fields.Phone = phone
	w.autosave()
}

func (w *Wizard) SetNewsletter(optIn bool) {
	w.reopen()
	w.fields.Newsletter = optIn
	w.autosave()
}

func toggleTag(set []string, tag string) []string {
	for i, t := range set {
		if t == tag {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, tag)
}

// reopen returns a failed wizard to the account step's editable state.
func (w *Wizard) reopen() {
	if w.state == StateFailed {
		w.state = StateInProgress
	}
}

// autosave mirrors the live state into the draft store as a full overwrite
// with a fresh save timestamp. It is skipped while a resume offer is
// unacknowledged and until a first field is entered. Failures are logged;
// input is never blocked on persistence.
func (w *Wizard) autosave() {
	if w.pendingResume != nil {
		return
	}
	if w.fields.IsEmpty() && w.step == 0 {
		return
	}
	d := Draft{Step: w.step, Fields: w.fields, SavedAt: nowFunc().UTC()}
	if err := w.drafts.PutDraft(w.key, d); err != nil {
		w.logger.Error("saving signup draft", err)
	}
}

// Submit completes the wizard from the last step: it creates the profile and,
// best-effort, sends the welcome email. A duplicate profile counts as success;
// account creation is at-most-once, not exactly-once. Any other failure moves
// the wizard to the failed state with all fields retained so the user may
// retry or go back.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != len(Steps)-1 {
		return core.NewValidationError(errors.New("submission is only available from the last step"))
	}
	if step := Steps[w.step]; !step.Complete(w.fields) {
		return core.NewValidationError(errors.New(step.Requirement), core.FieldError{Field: step.Name, Error: step.Requirement})
	}

	w.state = StateSubmitting
	np := w.newProfile()
	if _, err := w.profileSvc.Create(ctx, np); err != nil {
		switch {
		case errors.Cause(err) == profile.ErrEmailExists:
			// already registered: completing is still correct
		case isValidationErr(err):
			w.state = StateInProgress
			return err
		default:
			w.state = StateFailed
			return errors.Wrap(err, "creating profile")
		}
	}

	w.complete(SuccessData{FirstName: core.CleanString(w.fields.FirstName), Goals: w.fields.Goals})
	return nil
}

// isValidationErr covers both our own validation errors and the raw
// validator errors surfaced by struct validation.
func isValidationErr(err error) bool {
	if core.IsValidationError(err) {
		return true
	}
	_, ok := errors.Cause(err).(validator.ValidationErrors)
	return ok
}

func (w *Wizard) newProfile() profile.NewProfile {
	return profile.NewProfile{
		FirstName:       w.fields.FirstName,
		LastName:        w.fields.LastName,
		Email:           w.fields.Email,
		Phone:           w.fields.Phone,
		Goals:           w.fields.Goals,
		ArtForms:        w.fields.ArtForms,
		ExperienceLevel: w.fields.ExperienceLevel,
		Newsletter:      w.fields.Newsletter,
	}
}

// complete clears both stores, resets the live fields and records the data
// for the personalized success view.
func (w *Wizard) complete(data SuccessData) {
	w.clearStores()
	w.fields = initialFields()
	w.step = 0
	w.pendingResume = nil
	w.success = data
	w.state = StateSucceeded
}

func (w *Wizard) clearStores() {
	if err := w.drafts.DeleteDraft(w.key); err != nil {
		w.logger.Error("clearing signup draft", err)
	}
	if err := w.handoffs.DeleteHandoff(w.key); err != nil {
		w.logger.Error("clearing signup handoff", err)
	}
}

// ResetToInitial returns the wizard to its pristine state without touching
// the stores; the host invokes it instead of relying on a page reload.
func (w *Wizard) ResetToInitial() {
	w.state = StateInProgress
	w.step = 0
	w.fields = initialFields()
	w.pendingResume = nil
	w.success = SuccessData{}
}

// StartOver discards all saved progress and resets the wizard.
func (w *Wizard) StartOver() {
	w.clearStores()
	w.ResetToInitial()
}
