// package tracker implements progress tracking over the rendered checklist.
//
// The Registry holds the live rendered item set, replaced wholesale whenever
// content is re-rendered. The Tracker binds registry entries to persisted
// records, debounces note edits, recomputes aggregate counters, and fans
// events out to observers. The Coordinator re-synchronizes dependent
// components in a fixed order after a content replacement.
package tracker
