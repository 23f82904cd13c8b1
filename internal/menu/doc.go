// package menu derives a collapsible outline from the rendered checklist:
// sections per era, entries tagged completed, pending, or next-incomplete.
// The model is rebuilt from scratch on every checkbox change — correctness
// over efficiency, fine at checklist scale.
package menu
