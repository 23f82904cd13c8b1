package models

import "math"

// StateVersion is written into every serialized SyllabusState blob. Blobs
// with a different version are treated as unreadable and replaced with an
// empty state rather than migrated.
const StateVersion = 1

// ItemRecord is the persisted state for a single syllabus work, keyed by the
// work's stable id. Records are created lazily on first write and overwritten
// whole on every mutation.
type ItemRecord struct {
	Checked bool   `json:"checked"`
	Notes   string `json:"notes"`
}

// SyllabusState maps work id -> ItemRecord. The entire map is serialized as
// one JSON value under a single storage key; there are no partial writes.
type SyllabusState struct {
	Version int                   `json:"schema_version"`
	Records map[string]ItemRecord `json:"records"`
}

// NewSyllabusState returns an empty state at the current schema version.
func NewSyllabusState() SyllabusState {
	return SyllabusState{Version: StateVersion, Records: map[string]ItemRecord{}}
}

// Record returns the record for id, or a zero-value default when absent.
func (s SyllabusState) Record(id string) ItemRecord {
	if s.Records == nil {
		return ItemRecord{}
	}
	return s.Records[id]
}

// Set overwrites the record for id.
func (s *SyllabusState) Set(id string, rec ItemRecord) {
	if s.Records == nil {
		s.Records = map[string]ItemRecord{}
	}
	s.Records[id] = rec
}

// Clone returns a deep copy so callers can hand state across goroutines
// without sharing the map.
func (s SyllabusState) Clone() SyllabusState {
	out := SyllabusState{Version: s.Version, Records: make(map[string]ItemRecord, len(s.Records))}
	for id, rec := range s.Records {
		out.Records[id] = rec
	}
	return out
}

// Merge overlays other on top of s, other winning on key conflicts. Used by
// remote sync pull, where remote values take precedence.
func (s SyllabusState) Merge(other SyllabusState) SyllabusState {
	merged := s.Clone()
	merged.Version = StateVersion
	for id, rec := range other.Records {
		merged.Set(id, rec)
	}
	return merged
}

// RenderedItem is the live checklist view over one ItemRecord plus
// presentation metadata. Rendered items exist only while the checklist is
// mounted and are destroyed and recreated whenever content is re-rendered.
type RenderedItem struct {
	ID       string `json:"id"` // stable work id; empty ids are skipped by the binder
	Title    string `json:"title"`
	Era      string `json:"era"` // era key this item belongs to
	EraTitle string `json:"eraTitle"`
	Position int    `json:"position"` // document order across the whole checklist
	Checked  bool   `json:"checked"`
	Notes    string `json:"notes,omitempty"`
}

// ProgressStats are aggregate counters over the currently rendered item set.
// Persisted-but-unrendered records do not count.
type ProgressStats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ComputeStats derives counters from a rendered item set. Percentage is 0
// when the set is empty.
func ComputeStats(items []RenderedItem) ProgressStats {
	stats := ProgressStats{Total: len(items)}
	for _, item := range items {
		if item.Checked {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
