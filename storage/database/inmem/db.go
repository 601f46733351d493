package inmemdb

import (
	"sync"

	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
)

// DB is an in-memory database; it backs tests and the ephemeral handoff
// store in production.
type DB struct {
	profiles *profileTable
	drafts   *draftTable
	handoffs *handoffTable
}

func Open() *DB {
	return &DB{
		profiles: &profileTable{table: make(map[string]*profile.Profile)},
		drafts:   &draftTable{table: make(map[string]signup.Draft)},
		handoffs: &handoffTable{table: make(map[string]signup.Handoff)},
	}
}

type profileTable struct {
	sync.RWMutex
	table map[string]*profile.Profile
}

type draftTable struct {
	sync.RWMutex
	table map[string]signup.Draft
}

type handoffTable struct {
	sync.RWMutex
	table map[string]signup.Handoff
}
