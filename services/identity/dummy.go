package identitysvc

import (
	"context"
	"fmt"

	"github.com/trezcool/sanaa/core/signup"
)

// DummyBroker is a scriptable IdentityBroker for tests and local development.
type DummyBroker struct {
	Session       *signup.Session
	RedirectErr   error
	SessionErr    error
	EndSessionErr error
	EndedLocal    bool
	LastProvider  string
}

var _ signup.IdentityBroker = (*DummyBroker)(nil) // interface compliance check

func NewDummyBroker() *DummyBroker {
	return &DummyBroker{}
}

func (b *DummyBroker) BeginRedirect(_ context.Context, provider string) (string, error) {
	if b.RedirectErr != nil {
		return "", b.RedirectErr
	}
	b.LastProvider = provider
	return fmt.Sprintf("https://identity.local/authorize?provider=%s", provider), nil
}

func (b *DummyBroker) ActiveSession(_ context.Context) (*signup.Session, error) {
	if b.SessionErr != nil {
		return nil, b.SessionErr
	}
	return b.Session, nil
}

func (b *DummyBroker) EndLocalSession(_ context.Context) error {
	if b.EndSessionErr != nil {
		return b.EndSessionErr
	}
	b.EndedLocal = true
	b.Session = nil
	return nil
}
