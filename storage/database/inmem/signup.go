package inmemdb

import (
	"github.com/trezcool/sanaa/core/signup"
)

type draftStore struct {
	db *draftTable
}

var _ signup.DraftStore = (*draftStore)(nil) // interface compliance check

func NewDraftStore(db *DB) signup.DraftStore {
	return &draftStore{db: db.drafts}
}

func (s *draftStore) GetDraft(key string) (signup.Draft, error) {
	s.db.RLock()
	defer s.db.RUnlock()

	if d, ok := s.db.table[key]; ok {
		return d, nil
	}
	return signup.Draft{}, signup.ErrDraftNotFound
}

func (s *draftStore) PutDraft(key string, d signup.Draft) error {
	s.db.Lock()
	defer s.db.Unlock()
	s.db.table[key] = d
	return nil
}

func (s *draftStore) DeleteDraft(key string) error {
	s.db.Lock()
	defer s.db.Unlock()
	delete(s.db.table, key)
	return nil
}

type handoffStore struct {
	db *handoffTable
}

var _ signup.HandoffStore = (*handoffStore)(nil) // interface compliance check

func NewHandoffStore(db *DB) signup.HandoffStore {
	return &handoffStore{db: db.handoffs}
}

func (s *handoffStore) GetHandoff(key string) (signup.Handoff, error) {
	s.db.RLock()
	defer s.db.RUnlock()

	if h, ok := s.db.table[key]; ok {
		return h, nil
	}
	return signup.Handoff{}, signup.ErrHandoffNotFound
}

func (s *handoffStore) PutHandoff(key string, h signup.Handoff) error {
	s.db.Lock()
	defer s.db.Unlock()
	s.db.table[key] = h
	return nil
}

func (s *handoffStore) DeleteHandoff(key string) error {
	s.db.Lock()
	defer s.db.Unlock()
	delete(s.db.table, key)
	return nil
}
