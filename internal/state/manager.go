package state

import (
	"strconv"
	"time"
)

// Manager performs group and project CRUD against a Store. Each operation
// loads the document, mutates it and saves it in full; one load/save pair is
// the unit of atomicity.
type Manager struct {
	store *Store
	now   func() time.Time
}

// NewManager creates a manager over store
func NewManager(store *Store) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// Store returns the underlying store
func (m *Manager) Store() *Store {
	return m.store
}

// Data loads the current document
func (m *Manager) Data() (*ProjectData, error) {
	return m.store.Load()
}

// mutate loads the document, applies fn and saves once if fn succeeds
func (m *Manager) mutate(fn func(data *ProjectData) error) error {
	data, err := m.store.Load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return m.store.Save(data)
}

// newGroupID derives an id from the current time in milliseconds, bumping
// it until it is unused in data
func (m *Manager) newGroupID(data *ProjectData) string {
	ms := m.now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !data.HasGroup(id) && id != DefaultGroupID {
			return id
		}
		ms++
	}
}
