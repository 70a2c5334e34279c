// Package session holds per-run application state: the current view, its
// list options and the display handles of images being shown.
package session

import (
	"maps"

	"github.com/mesh-intelligence/huntbook/internal/lists"
)

// View names a screen of the record book.
type View string

// Views.
const (
	ViewTraps     View = "traps"
	ViewCatches   View = "catches"
	ViewGuns      View = "guns"
	ViewGunLogs   View = "gun_logs"
	ViewSpecies   View = "species"
	ViewChecklist View = "checklists"
	ViewProfile   View = "profile"
	ViewSettings  View = "settings"
)

// State is the explicit replacement for page-global variables. Navigating
// to a view resets that view's options and releases every display handle.
type State struct {
	current View
	options map[View]lists.Options
	handles *Handles
}

// New returns a State with no current view.
func New() *State {
	return &State{options: make(map[View]lists.Options), handles: NewHandles()}
}

// Current returns the active view.
func (s *State) Current() View { return s.current }

// Navigate switches to view with fresh options.
func (s *State) Navigate(view View) {
	s.handles.ReleaseAll()
	s.current = view
	s.options[view] = lists.Options{Filters: map[string]string{}}
}

// Options returns a copy of the active view's options.
func (s *State) Options() lists.Options {
	o := s.options[s.current]
	return lists.Options{Filters: maps.Clone(o.Filters), Sort: o.Sort}
}

// SetOptions replaces the active view's options.
func (s *State) SetOptions(o lists.Options) {
	s.options[s.current] = lists.Options{Filters: maps.Clone(o.Filters), Sort: o.Sort}
}

// SetFilter sets one filter on the active view.
func (s *State) SetFilter(key, value string) {
	o := s.options[s.current]
	if o.Filters == nil {
		o.Filters = map[string]string{}
	}
	o.Filters[key] = value
	s.options[s.current] = o
}

// Handles returns the display handles of this session.
func (s *State) Handles() *Handles { return s.handles }

// Close releases everything the session holds.
func (s *State) Close() {
	s.handles.ReleaseAll()
}
