package identitysvc

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/signup"
)

type ctxKey int

const tokenCtxKey ctxKey = 1

// ContextWithToken attaches the provider access token carried by the request
// so the broker can resolve the active session.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey).(string)
	return token
}

type sessionClaims struct {
	jwt.StandardClaims
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// goTrueBroker drives a hosted GoTrue-compatible identity server. It is used
// as a one-time identity source: the upstream session is dropped as soon as
// the profile is reconciled.
type goTrueBroker struct {
	baseURL     string
	jwtSecret   []byte
	redirectURL string
	client      *http.Client
	logger      core.Logger
}

var _ signup.IdentityBroker = (*goTrueBroker)(nil) // interface compliance check

func NewGoTrueBroker(logger core.Logger) signup.IdentityBroker {
	return &goTrueBroker{
		baseURL:     core.Conf.Identity.BaseURL,
		jwtSecret:   []byte(core.Conf.Identity.JWTSecret),
		redirectURL: core.Conf.Identity.RedirectURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

func (b *goTrueBroker) BeginRedirect(_ context.Context, provider string) (string, error) {
	u, err := url.Parse(b.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing identity base url")
	}
	u.Path += "/authorize"

	q := u.Query()
	q.Set("provider", provider)
	q.Set("redirect_to", b.redirectURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (b *goTrueBroker) ActiveSession(ctx context.Context) (*signup.Session, error) {
	token := tokenFromContext(ctx)
	if token == "" {
		return nil, nil
	}

	claims := new(sessionClaims)
	if _, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return b.jwtSecret, nil
	}); err != nil {
		// an expired or malformed token is no session, not a failure
		b.logger.Debug("rejecting identity token", err)
		return nil, nil
	}

	sess := &signup.Session{Email: claims.Email}
	if name, ok := claims.UserMetadata["full_name"].(string); ok {
		sess.DisplayName = name
	}
	return sess, nil
}

func (b *goTrueBroker) EndLocalSession(ctx context.Context) error {
	token := tokenFromContext(ctx)
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/logout", nil)
	if err != nil {
		return errors.Wrap(err, "building logout request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "ending identity session")
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("ending identity session - status: %d", res.StatusCode)
	}
	return nil
}
