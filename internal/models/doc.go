// package models defines the data model for the listening syllabus: the
// persisted per-work state, the rendered checklist view over it, and the
// catalog types (eras, works, composers) the checklist is built from.
package models
