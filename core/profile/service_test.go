package profile_test

import (
	"context"
	"io/ioutil"
	"log"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core/profile"
	emailsvc "github.com/trezcool/sanaa/services/email"
	logsvc "github.com/trezcool/sanaa/services/logger"
	inmemdb "github.com/trezcool/sanaa/storage/database/inmem"
)

func newTestService() (profile.Service, profile.Repository) {
	repo := inmemdb.NewProfileRepository(inmemdb.Open())
	logger := logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0))
	return profile.NewService(repo, emailsvc.NewConsoleServiceMock(), logger), repo
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	np := profile.NewProfile{
		FirstName:       "Neema",
		LastName:        "Baraka",
		Email:           "neema@test.test",
		Goals:           []string{profile.GoalTechnique},
		ArtForms:        []string{profile.ArtFormSculpture},
		ExperienceLevel: profile.ExperienceIntermediate,
		Newsletter:      true,
	}

	p, err := svc.Create(ctx, np)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps = %v %v", p.CreatedAt, p.UpdatedAt)
	}
	if loc := p.CreatedAt.Location(); loc != time.UTC {
		t.Errorf("CreatedAt location = %v; want UTC", loc)
	}

	// same email again
	if _, err = svc.Create(ctx, np); errors.Cause(err) != profile.ErrEmailExists {
		t.Errorf("Create() error = %v; want ErrEmailExists", err)
	}

	// invalid input never reaches the store
	np.Email = "nope"
	if _, err = svc.Create(ctx, np); err == nil {
		t.Error("Create() expected validation error")
	}
}

func TestServiceFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	seed := []profile.NewProfile{
		{FirstName: "Amani", Email: "amani@test.test", Goals: []string{profile.GoalPortfolio}, ExperienceLevel: profile.ExperienceBeginner},
		{FirstName: "Neema", Email: "neema@test.test", Goals: []string{profile.GoalHobby}, ExperienceLevel: profile.ExperienceAdvanced},
		{FirstName: "Zuri", Email: "zuri@test.test", Goals: []string{profile.GoalPortfolio, profile.GoalHobby}, ExperienceLevel: profile.ExperienceBeginner},
	}
	for _, np := range seed {
		if _, err := svc.Create(ctx, np); err != nil {
			t.Fatalf("Create(%s) failed: %v", np.Email, err)
		}
	}

	tests := []struct {
		name   string
		filter profile.QueryFilter
		want   int
	}{
		{name: "all", filter: profile.QueryFilter{}, want: 3},
		{name: "search name", filter: profile.QueryFilter{Search: "nee"}, want: 1},
		{name: "search email", filter: profile.QueryFilter{Search: "zuri@"}, want: 1},
		{name: "by goal", filter: profile.QueryFilter{Goals: []string{profile.GoalPortfolio}}, want: 2},
		{name: "by experience", filter: profile.QueryFilter{ExperienceLevel: profile.ExperienceAdvanced}, want: 1},
		{name: "no match", filter: profile.QueryFilter{Search: "nobody"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Filter() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Filter() returned %d profiles; want %d", len(got), tt.want)
			}
		})
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, profile.NewProfile{FirstName: "Amani", Email: "amani@test.test"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err = svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = svc.GetByID(ctx, p.ID); errors.Cause(err) != profile.ErrNotFound {
		t.Errorf("GetByID() error = %v; want ErrNotFound", err)
	}
}
