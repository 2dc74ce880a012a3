// Package ui implements the interactive terminal front-end of the anime tracker using bubbletea's Elm architecture.
//
// The TUI has three screens, cycled with tab:
//  1. Browse : the full list, a weekday grid (1-7 selects a day) and its own filters
//  2. Today : the store's releases for today
//  3. Admin : a creation form and a managed list with edit and delete
//
// The (view) [Model] implements Init/Update/View and delegates all view state to a [state.State].
// Store calls run as tea.Cmds through a [tasks.Tracker] and come back as [Msg] values, so every mutation
// happens on the Update loop.
//
// The creation form and the edit modal render from one package-level field table. A single
// textinput edits the focused field and writes through to the form on every keystroke; enum fields
// cycle with ←/→. The modal closes on esc or a click outside its box.
package ui
