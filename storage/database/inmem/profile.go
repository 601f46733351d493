package inmemdb

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db.profiles}
}

func (repo *profileRepository) query() []profile.Profile {
	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		profiles = append(profiles, *p)
	}
	return profiles
}

func (repo *profileRepository) CreateProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.Email == p.Email {
			return profile.Profile{}, profile.ErrEmailExists
		}
	}

	p.ID = uuid.New().String()
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *profileRepository) GetProfileByID(_ context.Context, id string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) GetProfileByEmail(_ context.Context, email string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.query() {
		if p.Email == email {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) QueryAllProfiles(_ context.Context) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *profileRepository) FilterProfiles(_ context.Context, filter profile.QueryFilter, _ ...core.DBOrdering) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := repo.query()

	// profiles with search keyword matching any FirstName, LastName or Email ?
	if filter.Search != "" {
		var filtered []profile.Profile
		search := strings.ToLower(filter.Search)
		for _, p := range profiles {
			if strings.Contains(strings.ToLower(p.FirstName), search) ||
				strings.Contains(strings.ToLower(p.LastName), search) ||
				strings.Contains(strings.ToLower(p.Email), search) {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	// profiles with any of the specified goals
	if profiles != nil && len(filter.Goals) > 0 {
		var filtered []profile.Profile
		for _, p := range profiles {
			for _, g := range filter.Goals {
				if containsString(p.Goals, g) {
					filtered = append(filtered, p)
					break
				}
			}
		}
		profiles = filtered
	}
	if profiles != nil && filter.ExperienceLevel != "" {
		var filtered []profile.Profile
		for _, p := range profiles {
			if p.ExperienceLevel == filter.ExperienceLevel {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	if profiles != nil && filter.Newsletter != nil {
		var filtered []profile.Profile
		for _, p := range profiles {
			if p.Newsletter == *filter.Newsletter {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	if profiles != nil && !filter.CreatedFrom.IsZero() {
		var filtered []profile.Profile
		timeUTC := filter.CreatedFrom.UTC()
		for _, p := range profiles {
			if p.CreatedAt.Equal(timeUTC) || p.CreatedAt.After(timeUTC) {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	if profiles != nil && !filter.CreatedTo.IsZero() {
		var filtered []profile.Profile
		timeUTC := filter.CreatedTo.UTC()
		for _, p := range profiles {
			if p.CreatedAt.Before(timeUTC) || p.CreatedAt.Equal(timeUTC) {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}

	return profiles, nil
}

func (repo *profileRepository) DeleteProfilesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
