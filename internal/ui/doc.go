// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the syllabus checklist:
//  1. [ChecklistView] : Browse works, toggle completion, jump to the next unheard work
//  2. [DetailView] : Read composer context and edit listening notes
//  3. [MenuView] : Collapsible era outline with completion markers
//  4. [ConfirmResetView] : Guard the destructive reset behind an explicit y/n
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Checkbox toggles persist synchronously through the tracker; note edits ride
// the tracker's debounce so a typing burst becomes one write.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
