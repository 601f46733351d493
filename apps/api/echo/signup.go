package echoapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
	identitysvc "github.com/trezcool/sanaa/services/identity"
)

// signupKeyHeader carries the opaque per-browser key that scopes all wizard
// state; the host generates it once and replays it on every call.
var signupKeyHeader = "X-Signup-Key"

type (
	DraftRequest struct {
		Step   int           `json:"step"`
		Fields signup.Fields `json:"fields"`
	}

	ResumeOfferResponse struct {
		Step      int           `json:"step"`
		Fields    signup.Fields `json:"fields"`
		SavedAt   time.Time     `json:"saved_at"`
		TimeSince string        `json:"time_since"`
	}

	IdentityRequest struct {
		Provider string `json:"provider"`
	}

	IdentityRedirectResponse struct {
		URL string `json:"url"`
	}

	SubmitResponse struct {
		State     signup.State `json:"state"`
		FirstName string       `json:"first_name"`
		Goals     []string     `json:"goals"`
	}
)

type signupApi struct {
	profileSvc profile.Service
	drafts     signup.DraftStore
	handoffs   signup.HandoffStore
	broker     signup.IdentityBroker
	logger     core.Logger
}

func registerSignupAPI(g *echo.Group, deps ServerDeps) {
	api := signupApi{
		profileSvc: deps.ProfileSvc,
		drafts:     deps.Drafts,
		handoffs:   deps.Handoffs,
		broker:     deps.Broker,
		logger:     deps.Logger,
	}

	sg := g.Group("/signup")
	sg.GET("/draft", api.loadDraft)
	sg.PUT("/draft", api.saveDraft)
	sg.DELETE("/draft", api.startOver)
	sg.POST("/identity", api.beginIdentity)
	sg.GET("/session", api.reconcileSession)

	g.POST("/profiles", api.submit)
}

func (api *signupApi) signupKey(ctx echo.Context) (string, error) {
	key := strings.TrimSpace(ctx.Request().Header.Get(signupKeyHeader))
	if key == "" {
		return "", errMissingSignupKey
	}
	return key, nil
}

func (api *signupApi) newWizard(key string) *signup.Wizard {
	return signup.New(key, api.profileSvc, api.drafts, api.handoffs, api.broker, api.logger)
}

// restoredWizard rebuilds the wizard from the stored draft; absent drafts
// yield a pristine wizard.
func (api *signupApi) restoredWizard(key string) (*signup.Wizard, error) {
	w := api.newWizard(key)
	d, err := api.drafts.GetDraft(key)
	if err != nil {
		if errors.Cause(err) == signup.ErrDraftNotFound {
			return w, nil
		}
		return nil, errors.Wrap(err, "loading signup draft")
	}
	w.Restore(d.Step, d.Fields)
	return w, nil
}

// Handlers

// loadDraft is the saved-progress probe run on mount: 204 when there is
// nothing usable to resume, otherwise the resume offer payload.
func (api *signupApi) loadDraft(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	w := api.newWizard(key)
	offer, err := w.LoadSavedProgress()
	if err != nil {
		return errors.Wrap(err, "loading saved progress")
	}
	if offer == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, ResumeOfferResponse{
		Step:      offer.Draft.Step,
		Fields:    offer.Draft.Fields,
		SavedAt:   offer.Draft.SavedAt,
		TimeSince: offer.TimeSince,
	})
}

// saveDraft mirrors the live wizard state as a full overwrite.
func (api *signupApi) saveDraft(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	var data DraftRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DraftRequest")
	}
	if data.Step < 0 || data.Step >= len(signup.Steps) {
		return core.NewValidationError(nil, core.FieldError{Field: "step", Error: "step out of range"})
	}

	d := signup.Draft{Step: data.Step, Fields: data.Fields, SavedAt: time.Now().UTC()}
	if err := api.drafts.PutDraft(key, d); err != nil {
		return errors.Wrap(err, "saving signup draft")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// startOver discards all saved progress for this browser.
func (api *signupApi) startOver(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	w := api.newWizard(key)
	w.StartOver()
	return ctx.NoContent(http.StatusNoContent)
}

// submit is the final account-step submission.
func (api *signupApi) submit(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	var data signup.Fields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Fields")
	}

	w := api.newWizard(key)
	w.Restore(len(signup.Steps)-1, data)
	if err := w.Submit(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "submitting signup")
	}
	return ctx.JSON(http.StatusCreated, api.successResponse(w))
}

// beginIdentity returns the provider URL for the "continue with Google" path;
// the handoff record is written before the response so the selections survive
// the redirect.
func (api *signupApi) beginIdentity(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	var data IdentityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IdentityRequest")
	}
	if strings.TrimSpace(data.Provider) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "provider", Error: "provider is required"})
	}

	w, err := api.restoredWizard(key)
	if err != nil {
		return err
	}
	url, err := w.BeginIdentitySignIn(ctx.Request().Context(), data.Provider)
	if err != nil {
		return errors.Wrap(err, "beginning identity sign-in")
	}
	return ctx.JSON(http.StatusOK, IdentityRedirectResponse{URL: url})
}

// reconcileSession runs after a possible return from the identity provider:
// 204 when no session exists, the success payload when the signup completed.
func (api *signupApi) reconcileSession(ctx echo.Context) error {
	key, err := api.signupKey(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	if token := bearerToken(ctx); token != "" {
		reqCtx = identitysvc.ContextWithToken(reqCtx, token)
	}

	w := api.newWizard(key)
	found, err := w.ReconcileIdentity(reqCtx)
	if err != nil {
		if errors.Cause(err) == signup.ErrSetupIncomplete {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return errors.Wrap(err, "reconciling identity session")
	}
	if !found {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, api.successResponse(w))
}

func (api *signupApi) successResponse(w *signup.Wizard) SubmitResponse {
	success := w.Success()
	return SubmitResponse{
		State:     w.State(),
		FirstName: success.FirstName,
		Goals:     success.Goals,
	}
}

func bearerToken(ctx echo.Context) string {
	auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
