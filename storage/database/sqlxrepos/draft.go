package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/signup"
)

type dbDraft struct {
	Key     string          `db:"key"`
	Step    int             `db:"step"`
	Fields  json.RawMessage `db:"fields"`
	SavedAt time.Time       `db:"saved_at"`
}

type draftStore struct {
	db *sqlx.DB
}

var _ signup.DraftStore = (*draftStore)(nil) // interface compliance check

func NewDraftStore(db *sql.DB) signup.DraftStore {
	return &draftStore{db: sqlx.NewDb(db, core.Conf.Database.Engine)}
}

func (s *draftStore) GetDraft(key string) (signup.Draft, error) {
	var row dbDraft
	query := s.db.Rebind(`SELECT * FROM draft WHERE key = ?`)
	if err := s.db.Get(&row, query, key); err != nil {
		if err == sql.ErrNoRows {
			return signup.Draft{}, signup.ErrDraftNotFound
		}
		return signup.Draft{}, errors.Wrap(err, "getting draft")
	}

	d := signup.Draft{Step: row.Step, SavedAt: row.SavedAt}
	if err := json.Unmarshal(row.Fields, &d.Fields); err != nil {
		return signup.Draft{}, errors.Wrap(err, "decoding draft fields")
	}
	return d, nil
}

func (s *draftStore) PutDraft(key string, d signup.Draft) error {
	fields, err := json.Marshal(d.Fields)
	if err != nil {
		return errors.Wrap(err, "encoding draft fields")
	}

	query := s.db.Rebind(`
		INSERT INTO draft (key, step, fields, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET step = EXCLUDED.step, fields = EXCLUDED.fields, saved_at = EXCLUDED.saved_at`)
	// pq encodes []byte as bytea; jsonb wants text
	if _, err = s.db.Exec(query, key, d.Step, string(fields), d.SavedAt.UTC()); err != nil {
		return errors.Wrap(err, "upserting draft")
	}
	return nil
}

func (s *draftStore) DeleteDraft(key string) error {
	query := s.db.Rebind(`DELETE FROM draft WHERE key = ?`)
	if _, err := s.db.Exec(query, key); err != nil {
		return errors.Wrap(err, "deleting draft")
	}
	return nil
}
