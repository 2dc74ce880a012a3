// Package state holds the front-end's view state and applies command outcomes to it.
//
// A [State] is owned by a single event loop. Commands run elsewhere and report back
// through [State.Loaded], [State.Created], [State.Updated], [State.Deleted] or [State.Failed].
package state

import (
	"github.com/desertthunder/zhuifan/internal/editor"
	"github.com/desertthunder/zhuifan/internal/filter"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/tasks"
)

// Screen is the top-level view.
type Screen int

const (
	Browse Screen = iota
	Today
	Admin
)

func (s Screen) String() string {
	switch s {
	case Browse:
		return "browse"
	case Today:
		return "today"
	case Admin:
		return "admin"
	default:
		return ""
	}
}

// AdminTab is the active tab of the admin screen.
type AdminTab int

const (
	AdminCreate AdminTab = iota
	AdminList
)

// State holds what the front-end shows, apart from widget state.
type State struct {
	Screen   Screen
	AdminTab AdminTab

	// Filter criteria, one isolated set per screen.
	BrowseFilter filter.Criteria
	DayFilter    filter.Criteria
	AdminFilter  filter.Criteria

	// SelectedDay narrows the browse screen to one weekday; "" shows the full list.
	SelectedDay models.Weekday

	// Form is the admin creation form.
	Form   models.Form
	Editor *editor.Controller

	Busy bool
	Err  error

	Animes     []models.Anime
	Today      []models.Anime
	TodayLabel models.Weekday
}

// New returns a State on the browse screen with empty caches.
func New() *State {
	return &State{
		Screen: Browse,
		Form:   models.NewForm(),
		Editor: editor.New(),
	}
}

// Begin marks a command as in flight.
func (s *State) Begin() {
	s.Busy = true
}

// Loaded replaces the caches present in snap and clears Busy.
func (s *State) Loaded(snap *tasks.Snapshot) {
	s.Busy = false
	if snap == nil {
		return
	}
	s.Err = nil
	if snap.Animes != nil {
		s.Animes = snap.Animes
	}
	if snap.Today != nil {
		s.Today = snap.Today
		s.TodayLabel = snap.TodayLabel
	}
}

// Created applies a successful create: caches refresh and the creation form resets.
func (s *State) Created(snap *tasks.Snapshot) {
	s.Loaded(snap)
	s.Form.Reset()
}

// Updated applies a successful edit of record id and shows the admin list.
// The modal closes only if it is still editing id; a session opened on another record is left alone.
func (s *State) Updated(id int64, snap *tasks.Snapshot) {
	s.Loaded(snap)
	if s.editing(id) {
		s.Editor.Succeeded()
	}
	s.Screen = Admin
	s.AdminTab = AdminList
}

// Deleted applies a successful delete.
func (s *State) Deleted(snap *tasks.Snapshot) {
	s.Loaded(snap)
}

// Failed records err and clears Busy. Forms, the modal and the screen are left as they were.
func (s *State) Failed(err error) {
	s.Busy = false
	s.Err = err
}

// UpdateFailed is [State.Failed] for a submit of record id from the edit modal; the modal stays open with its draft.
// The error is attached to the modal only if it is still editing id.
func (s *State) UpdateFailed(id int64, err error) {
	s.Failed(err)
	if s.editing(id) {
		s.Editor.Failed(err)
	}
}

func (s *State) editing(id int64) bool {
	return s.Editor.IsOpen() && s.Editor.TargetID() == id
}

// SelectDay toggles the selected weekday and clears the browse weekday criterion.
func (s *State) SelectDay(day models.Weekday) {
	if s.SelectedDay == day {
		s.SelectedDay = ""
	} else {
		s.SelectedDay = day
	}
	s.BrowseFilter.UpdateDay = ""
}

// GoHome returns to the browse screen with no day selected and no browse criteria.
func (s *State) GoHome() {
	s.Screen = Browse
	s.SelectedDay = ""
	s.BrowseFilter = filter.Criteria{}
}

// DayCount returns how many cached animes release on day.
func (s *State) DayCount(day models.Weekday) int {
	return len(filter.ByDay(s.Animes, day))
}

// BrowseAnimes returns the browse list under the browse criteria.
func (s *State) BrowseAnimes() []models.Anime {
	return filter.Apply(s.Animes, s.BrowseFilter)
}

// DayAnimes returns the selected day's animes under the day criteria. It is empty when no day is selected.
func (s *State) DayAnimes() []models.Anime {
	if s.SelectedDay == "" {
		return nil
	}
	c := s.DayFilter
	c.UpdateDay = s.SelectedDay
	return filter.Apply(s.Animes, c)
}

// AdminAnimes returns the admin list under the admin criteria.
func (s *State) AdminAnimes() []models.Anime {
	return filter.Apply(s.Animes, s.AdminFilter)
}
