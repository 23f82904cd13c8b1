package models

import "fmt"

// Recording is an optional listening suggestion attached to a work.
type Recording struct {
	Performer string `json:"performer"`
	URL       string `json:"url"`
}

// Work represents one syllabus entry: a piece of music to listen to.
type Work struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Year              string     `json:"year"`
	Composer          string     `json:"composer,omitempty"` // composer reference id
	Notes             []string   `json:"notes"`
	HistoricalContext string     `json:"historicalContext"`
	Recording         *Recording `json:"recording,omitempty"`
}

// Era is a named historical grouping of works, used purely for presentation.
type Era struct {
	Key   string `json:"-"`
	Title string `json:"title"`
	Works []Work `json:"works"`
}

// Composer holds biography data referenced by works.
type Composer struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Years string `json:"years"`
	Image string `json:"image,omitempty"`
	Bio   string `json:"bio"`
}

// Validate checks catalog invariants: every work needs a stable unique id.
func (e Era) Validate() error {
	seen := make(map[string]struct{}, len(e.Works))
	for _, w := range e.Works {
		if w.ID == "" {
			return fmt.Errorf("era %q has a work with no id (%q)", e.Key, w.Title)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("era %q has duplicate work id %q", e.Key, w.ID)
		}
		seen[w.ID] = struct{}{}
	}
	return nil
}
