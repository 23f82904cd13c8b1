package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
)

//go:embed data/syllabus-data.json
var syllabusData []byte

//go:embed data/composer-data.json
var composerData []byte

// EraOrder fixes the presentation order of eras. Eras missing from the data
// are skipped; eras in the data but not listed here are ignored.
var EraOrder = []string{"medieval", "renaissance", "baroque", "classical", "romantic", "modern"}

// Library is the loaded catalog. Construct with Load; a Library is read-only
// after construction.
type Library struct {
	eras      []models.Era
	workIndex map[string]models.Work
	composers map[string]models.Composer
}

// Load reads the embedded catalog, or the files named in cfg when set.
func Load(cfg shared.ContentConfig) (*Library, error) {
	syllabusRaw := syllabusData
	if cfg.SyllabusPath != "" {
		data, err := os.ReadFile(cfg.SyllabusPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrContentUnavailable, err)
		}
		syllabusRaw = data
	}

	composerRaw := composerData
	if cfg.ComposerPath != "" {
		data, err := os.ReadFile(cfg.ComposerPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrContentUnavailable, err)
		}
		composerRaw = data
	}

	return parse(syllabusRaw, composerRaw)
}

func parse(syllabusRaw, composerRaw []byte) (*Library, error) {
	var eraMap map[string]models.Era
	if err := json.Unmarshal(syllabusRaw, &eraMap); err != nil {
		return nil, fmt.Errorf("%w: failed to parse syllabus data: %v", shared.ErrContentUnavailable, err)
	}

	var composerMap map[string]models.Composer
	if err := json.Unmarshal(composerRaw, &composerMap); err != nil {
		return nil, fmt.Errorf("%w: failed to parse composer data: %v", shared.ErrContentUnavailable, err)
	}

	lib := &Library{
		workIndex: map[string]models.Work{},
		composers: map[string]models.Composer{},
	}

	for _, key := range EraOrder {
		era, ok := eraMap[key]
		if !ok {
			continue
		}
		era.Key = key
		if err := era.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrContentUnavailable, err)
		}
		for _, work := range era.Works {
			if _, dup := lib.workIndex[work.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate work id %q across eras", shared.ErrContentUnavailable, work.ID)
			}
			lib.workIndex[work.ID] = work
		}
		lib.eras = append(lib.eras, era)
	}

	for id, composer := range composerMap {
		composer.ID = id
		lib.composers[id] = composer
	}

	return lib, nil
}

// Eras returns the eras in presentation order.
func (l *Library) Eras() []models.Era {
	return l.eras
}

// WorkByID looks up a work anywhere in the catalog.
func (l *Library) WorkByID(id string) (models.Work, error) {
	work, ok := l.workIndex[id]
	if !ok {
		return models.Work{}, fmt.Errorf("%w: %s", shared.ErrWorkNotFound, id)
	}
	return work, nil
}

// ComposerByID looks up a composer biography.
func (l *Library) ComposerByID(id string) (models.Composer, error) {
	composer, ok := l.composers[id]
	if !ok {
		return models.Composer{}, fmt.Errorf("%w: %s", shared.ErrComposerNotFound, id)
	}
	return composer, nil
}

// ComposerForWork resolves the composer biography for a work. Work records
// carry the composer id in their composer field.
func (l *Library) ComposerForWork(workID string) (models.Composer, error) {
	work, err := l.WorkByID(workID)
	if err != nil {
		return models.Composer{}, err
	}
	return l.ComposerByID(work.Composer)
}

// WorkCount reports the total number of works in the catalog.
func (l *Library) WorkCount() int {
	return len(l.workIndex)
}

// Render flattens the catalog into rendered checklist items in document
// order, hydrating checked/notes from state. Every rendered item either has
// a matching record or synthesizes a fresh default.
func (l *Library) Render(state models.SyllabusState) []models.RenderedItem {
	var items []models.RenderedItem
	position := 0
	for _, era := range l.eras {
		for _, work := range era.Works {
			rec := state.Record(work.ID)
			items = append(items, models.RenderedItem{
				ID:       work.ID,
				Title:    work.Title,
				Era:      era.Key,
				EraTitle: era.Title,
				Position: position,
				Checked:  rec.Checked,
				Notes:    rec.Notes,
			})
			position++
		}
	}
	return items
}
