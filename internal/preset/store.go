// Package preset stores saved strip states that remotes can recall by id.
package preset

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Valid preset ids.
const (
	MinID = 1
	MaxID = 250
)

// ErrInvalidID is returned when saving a preset outside MinID..MaxID.
var ErrInvalidID = errors.New("preset id out of range")

// Preset is a named, saved strip state.
type Preset struct {
	ID        uint8
	Name      string
	State     []byte // JSON state document
	UpdatedAt time.Time
}

// Store persists presets. Get returns nil, nil when the preset does not exist.
type Store interface {
	Get(id uint8) (*Preset, error)
	Save(p Preset) error
	Delete(id uint8) error
	List() ([]*Preset, error)
}

func validID(id uint8) bool {
	return id >= MinID && id <= MaxID
}

// SQLiteStore is a Store backed by the presets table.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a preset store on an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a preset by id.
func (s *SQLiteStore) Get(id uint8) (*Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Preset
	var state string
	var updatedAt int64
	err := s.db.QueryRow(`
		SELECT id, name, state, updated_at FROM presets WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &state, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %d: %w", id, err)
	}

	p.State = []byte(state)
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}

// Save creates or replaces a preset.
func (s *SQLiteStore) Save(p Preset) error {
	if !validID(p.ID) {
		return fmt.Errorf("%w: %d", ErrInvalidID, p.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Unix()
	_, err := s.db.Exec(`
		INSERT INTO presets (id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, string(p.State), now, now)
	if err != nil {
		return fmt.Errorf("failed to save preset %d: %w", p.ID, err)
	}

	log.Debug().
		Uint8("id", p.ID).
		Str("name", p.Name).
		Msg("Preset saved")
	return nil
}

// Delete removes a preset. Deleting a missing preset is not an error.
func (s *SQLiteStore) Delete(id uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	return err
}

// List returns all presets ordered by id.
func (s *SQLiteStore) List() ([]*Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, state, updated_at FROM presets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		var p Preset
		var state string
		var updatedAt int64
		if err := rows.Scan(&p.ID, &p.Name, &state, &updatedAt); err != nil {
			return nil, err
		}
		p.State = []byte(state)
		p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		presets = append(presets, &p)
	}
	return presets, rows.Err()
}

// MemoryStore is an in-memory Store (not persisted).
type MemoryStore struct {
	presets map[uint8]Preset
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[uint8]Preset)}
}

// Get retrieves a preset by id.
func (m *MemoryStore) Get(id uint8) (*Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.presets[id]
	if !ok {
		return nil, nil
	}
	p.State = append([]byte(nil), p.State...)
	return &p, nil
}

// Save creates or replaces a preset.
func (m *MemoryStore) Save(p Preset) error {
	if !validID(p.ID) {
		return fmt.Errorf("%w: %d", ErrInvalidID, p.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p.State = append([]byte(nil), p.State...)
	p.UpdatedAt = time.Now().UTC()
	m.presets[p.ID] = p
	return nil
}

// Delete removes a preset.
func (m *MemoryStore) Delete(id uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.presets, id)
	return nil
}

// List returns all presets ordered by id.
func (m *MemoryStore) List() ([]*Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	presets := make([]*Preset, 0, len(m.presets))
	for _, p := range m.presets {
		p := p
		presets = append(presets, &p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, nil
}
