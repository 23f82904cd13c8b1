package repositories

import (
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/syllabus/internal/models"
)

// StateKey is the single kv key holding the full syllabus state blob.
const StateKey = "syllabus_state"

// StateRepository stores the whole [models.SyllabusState] as one JSON value
// under one key. Every mutation is a read-modify-write of the full map,
// serialized under an internal mutex: synchronous checkbox writes, debounced
// note timers, and background mirror reads all share one repository.
//
// Failure policy: reads of missing or unparseable state yield an empty map;
// write failures are logged and swallowed, with an in-memory copy keeping
// the session functional (non-persistent) until the process exits.
type StateRepository struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *log.Logger
	// cache is the last state successfully observed or written. It backs the
	// degraded mode when the database is unavailable.
	cache models.SyllabusState
}

// NewStateRepository creates a StateRepository over an open database.
func NewStateRepository(db *sql.DB, logger *log.Logger) *StateRepository {
	return &StateRepository{db: db, logger: logger, cache: models.NewSyllabusState()}
}

// Load returns the full state map. It never fails: a missing key, a closed
// database, an unparseable blob, or an unknown schema version all produce an
// empty state.
func (r *StateRepository) Load() models.SyllabusState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// load reads the blob; callers hold r.mu.
func (r *StateRepository) load() models.SyllabusState {
	if r.db == nil {
		return r.cache.Clone()
	}

	raw, found, err := kvGet(r.db, StateKey)
	if err != nil {
		r.logger.Warn("state read failed, using in-memory copy", "err", err)
		return r.cache.Clone()
	}
	if !found {
		return models.NewSyllabusState()
	}

	var state models.SyllabusState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		r.logger.Warn("stored state is unreadable, treating as empty", "err", err)
		return models.NewSyllabusState()
	}
	if state.Version != models.StateVersion {
		r.logger.Warn("stored state has unknown schema version, treating as empty", "version", state.Version)
		return models.NewSyllabusState()
	}
	if state.Records == nil {
		state.Records = map[string]models.ItemRecord{}
	}

	r.cache = state.Clone()
	return state
}

// Save serializes and overwrites the stored blob unconditionally. Errors are
// swallowed after logging; the in-memory copy is always updated.
func (r *StateRepository) Save(state models.SyllabusState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.save(state)
}

// save writes the blob; callers hold r.mu.
func (r *StateRepository) save(state models.SyllabusState) {
	state.Version = models.StateVersion
	r.cache = state.Clone()

	if r.db == nil {
		return
	}

	raw, err := json.Marshal(state)
	if err != nil {
		r.logger.Warn("failed to serialize state", "err", err)
		return
	}
	if err := kvSet(r.db, StateKey, string(raw)); err != nil {
		r.logger.Warn("state write failed, session is non-persistent", "err", err)
	}
}

// Record returns the record for id, defaulting to an unchecked record with
// empty notes when absent.
func (r *StateRepository) Record(id string) models.ItemRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load().Record(id)
}

// SetRecord performs a read-modify-write of the full state map. The whole
// cycle runs under the mutex so concurrent writers cannot clobber each
// other's records.
func (r *StateRepository) SetRecord(id string, checked bool, notes string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.load()
	state.Set(id, models.ItemRecord{Checked: checked, Notes: notes})
	r.save(state)
}

// Clear deletes the storage key entirely.
func (r *StateRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = models.NewSyllabusState()
	if r.db == nil {
		return
	}
	if err := kvDelete(r.db, StateKey); err != nil {
		r.logger.Warn("state clear failed", "err", err)
	}
}
