// Package ui implements an interactive terminal catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the score library:
//  1. [ListView] : Browse the collection with live wildcard search and sort cycling
//  2. [DetailView] : Inspect a single score's full record
//  3. [ConfirmDeleteView] : Confirm removal of the selected score
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Search input re-applies the collection view on every keystroke, so the list
// narrows as the pattern is typed.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
