// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/syllabus/internal/models"
)

// MockSyncService is a test double for [services.Service]. State operations
// are safe for concurrent use so debounced mirror pushes can be asserted on.
type MockSyncService struct {
	mu sync.Mutex

	Remote    models.SyllabusState // state returned by PullState
	PullErr   error
	PushErr   error
	HealthErr error

	Pushed    []models.SyllabusState // every state received by PushState
	PullCalls int
}

func NewMockSyncService() *MockSyncService {
	return &MockSyncService{Remote: models.NewSyllabusState()}
}

func (m *MockSyncService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockSyncService) PullState(ctx context.Context) (models.SyllabusState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PullCalls++
	if m.PullErr != nil {
		return models.NewSyllabusState(), m.PullErr
	}
	return m.Remote.Clone(), nil
}

func (m *MockSyncService) PushState(ctx context.Context, state models.SyllabusState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PushErr != nil {
		return m.PushErr
	}
	m.Pushed = append(m.Pushed, state.Clone())
	return nil
}

func (m *MockSyncService) Health(ctx context.Context) error { return m.HealthErr }

func (m *MockSyncService) Name() string { return "mock" }

// PushCount returns how many pushes succeeded.
func (m *MockSyncService) PushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Pushed)
}

// LastPushed returns the most recently pushed state.
func (m *MockSyncService) LastPushed() (models.SyllabusState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Pushed) == 0 {
		return models.SyllabusState{}, false
	}
	return m.Pushed[len(m.Pushed)-1], true
}

// MemoryStore is an in-memory test double for the state store interfaces in
// tracker and tasks.
type MemoryStore struct {
	mu    sync.Mutex
	State models.SyllabusState
	Saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{State: models.NewSyllabusState()}
}

func (s *MemoryStore) Load() models.SyllabusState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.Clone()
}

func (s *MemoryStore) Save(state models.SyllabusState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = state.Clone()
	s.Saves++
}

func (s *MemoryStore) Record(id string) models.ItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State.Record(id)
}

func (s *MemoryStore) SetRecord(id string, checked bool, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State.Set(id, models.ItemRecord{Checked: checked, Notes: notes})
	s.Saves++
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = models.NewSyllabusState()
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
