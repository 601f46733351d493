package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/sanaa/core/profile"
)

func CreateProfile(
	t *testing.T,
	repo profile.Repository,
	first, last, email string,
	goals []string,
	experienceLevel string,
	createdAt ...time.Time,
) profile.Profile {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p := profile.Profile{
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Goals:           goals,
		ExperienceLevel: experienceLevel,
		CreatedAt:       tstamp,
		UpdatedAt:       tstamp,
	}
	p, err := repo.CreateProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return p
}
