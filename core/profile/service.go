package profile

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
)

var (
	// errors
	ErrNotFound    = errors.New("profile not found")
	ErrEmailExists = errors.New("a profile with this email already exists")
)

type (
	Repository interface {
		// CreateProfile inserts the profile; it returns ErrEmailExists when a
		// profile with the same email is already stored.
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		GetProfileByID(ctx context.Context, id string) (Profile, error)
		GetProfileByEmail(ctx context.Context, email string) (Profile, error)
		QueryAllProfiles(ctx context.Context) ([]Profile, error)
		// FilterProfiles applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// Profile.FirstName, Profile.LastName or Profile.Email.
		FilterProfiles(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Profile, error)
		DeleteProfilesByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		Create(ctx context.Context, np NewProfile) (Profile, error)
		GetByID(ctx context.Context, id string) (Profile, error)
		GetByEmail(ctx context.Context, email string) (Profile, error)
		QueryAll(ctx context.Context) ([]Profile, error)
		Filter(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Profile, error)
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

// Create validates and stores a new profile, then sends the welcome email.
// The email is best-effort: send failures are logged by the email service and
// never fail the creation.
func (svc *service) Create(ctx context.Context, np NewProfile) (Profile, error) {
	if err := np.Validate(); err != nil {
		return Profile{}, err
	}

	now := time.Now().UTC()
	p := Profile{
		FirstName:       np.FirstName,
		LastName:        np.LastName,
		Email:           np.Email,
		Phone:           np.Phone,
		Goals:           np.Goals,
		ArtForms:        np.ArtForms,
		ExperienceLevel: np.ExperienceLevel,
		Newsletter:      np.Newsletter,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	p, err := svc.repo.CreateProfile(ctx, p)
	if err != nil {
		return Profile{}, err
	}

	svc.sendWelcomeMail(p)
	return p, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Profile, error) {
	return svc.repo.GetProfileByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (Profile, error) {
	return svc.repo.GetProfileByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) QueryAll(ctx context.Context) ([]Profile, error) {
	return svc.repo.QueryAllProfiles(ctx)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Profile, error) {
	filter.Clean()
	return svc.repo.FilterProfiles(ctx, filter, ordering...)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteProfilesByID(ctx, ids...)
}

// WelcomeEmailData feeds the "welcome" email template.
type WelcomeEmailData struct {
	FirstName string
	Goals     []string // display labels
	ArtForms  []string // display labels
}

func (svc *service) sendWelcomeMail(p Profile) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: p.FullName(), Address: p.Email}},
		Subject:      "Welcome to " + core.Conf.AppName + "!",
		TemplateName: "welcome",
		TemplateData: WelcomeEmailData{
			FirstName: p.FirstName,
			Goals:     GoalLabels(p.Goals),
			ArtForms:  ArtFormLabels(p.ArtForms),
		},
	}
	svc.mailSvc.SendMessages(msg)
}
