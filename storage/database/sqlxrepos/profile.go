package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
)

const pqUniqueViolation = "23505"

// orderable guards ORDER BY against arbitrary input.
var orderable = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"email":            true,
	"experience_level": true,
	"created_at":       true,
}

type dbProfile struct {
	ID              string         `db:"id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	Email           string         `db:"email"`
	Phone           sql.NullString `db:"phone"`
	Goals           pq.StringArray `db:"goals"`
	ArtForms        pq.StringArray `db:"interests"`
	ExperienceLevel string         `db:"experience_level"`
	Newsletter      bool           `db:"newsletter"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (p dbProfile) unpack() profile.Profile {
	return profile.Profile{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Email:           p.Email,
		Phone:           p.Phone.String,
		Goals:           p.Goals,
		ArtForms:        p.ArtForms,
		ExperienceLevel: p.ExperienceLevel,
		Newsletter:      p.Newsletter,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sql.DB) profile.Repository {
	return &profileRepository{db: sqlx.NewDb(db, core.Conf.Database.Engine)}
}

// trapNoRowsErr maps psql "no rows" err to profile.ErrNotFound
func (repo *profileRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return profile.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	p.ID = uuid.New().String()

	query := repo.db.Rebind(`
		INSERT INTO profile (id, first_name, last_name, email, phone, goals, interests, experience_level, newsletter, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := repo.db.ExecContext(
		ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, sql.NullString{String: p.Phone, Valid: p.Phone != ""},
		pq.Array(p.Goals), pq.Array(p.ArtForms), p.ExperienceLevel, p.Newsletter,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return profile.Profile{}, profile.ErrEmailExists
		}
		return profile.Profile{}, errors.Wrap(err, "inserting profile")
	}
	return p, nil
}

func (repo *profileRepository) GetProfileByID(ctx context.Context, id string) (profile.Profile, error) {
	var p dbProfile
	query := repo.db.Rebind(`SELECT * FROM profile WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &p, query, id); err != nil {
		return profile.Profile{}, repo.trapNoRowsErr(err, "getting profile by id")
	}
	return p.unpack(), nil
}

func (repo *profileRepository) GetProfileByEmail(ctx context.Context, email string) (profile.Profile, error) {
	var p dbProfile
	query := repo.db.Rebind(`SELECT * FROM profile WHERE email = ?`)
	if err := repo.db.GetContext(ctx, &p, query, email); err != nil {
		return profile.Profile{}, repo.trapNoRowsErr(err, "getting profile by email")
	}
	return p.unpack(), nil
}

func (repo *profileRepository) QueryAllProfiles(ctx context.Context) ([]profile.Profile, error) {
	var rows []dbProfile
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM profile ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}
	return unpackSlice(rows), nil
}

func (repo *profileRepository) FilterProfiles(ctx context.Context, filter profile.QueryFilter, ordering ...core.DBOrdering) ([]profile.Profile, error) {
	where := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)

	if filter.Search != "" {
		where = append(where, `(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)`)
		search := "%" + filter.Search + "%"
		args = append(args, search, search, search)
	}
	if len(filter.Goals) > 0 {
		where = append(where, `goals && ?`)
		args = append(args, pq.Array(filter.Goals))
	}
	if filter.ExperienceLevel != "" {
		where = append(where, `experience_level = ?`)
		args = append(args, filter.ExperienceLevel)
	}
	if filter.Newsletter != nil {
		where = append(where, `newsletter = ?`)
		args = append(args, *filter.Newsletter)
	}
	if !filter.CreatedFrom.IsZero() {
		where = append(where, `created_at >= ?`)
		args = append(args, filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		where = append(where, `created_at <= ?`)
		args = append(args, filter.CreatedTo.UTC())
	}

	query := `SELECT * FROM profile`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += orderBy(ordering)

	var rows []dbProfile
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering profiles")
	}
	return unpackSlice(rows), nil
}

func (repo *profileRepository) DeleteProfilesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query := repo.db.Rebind(`DELETE FROM profile WHERE id = ANY(?)`)
	if _, err := repo.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting profiles")
	}
	return nil
}

func unpackSlice(rows []dbProfile) []profile.Profile {
	profiles := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.unpack())
	}
	return profiles
}

func orderBy(ordering []core.DBOrdering) string {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if orderable[ord.Field] {
			clauses = append(clauses, ord.String())
		}
	}
	if len(clauses) == 0 {
		return ` ORDER BY created_at DESC`
	}
	return ` ORDER BY ` + strings.Join(clauses, `, `)
}
