// Package nav decides which navigation entry is active and owns the
// transient state of the mobile menu.
package nav

import (
	"slices"

	"github.com/commanderxa/alphalabs/internal/content"
)

// Item is a navigation entry annotated with its active state.
type Item struct {
	content.NavEntry
	Active bool
}

// Controller resolves the active entry for a location. Primary and mobile
// menus are both built from the same entries.
type Controller struct {
	entries []content.NavEntry
}

// NewController creates a Controller over entries, in display order.
func NewController(entries []content.NavEntry) *Controller {
	return &Controller{entries: slices.Clone(entries)}
}

// Active returns the index of the entry whose path equals location exactly.
// A location outside the known paths has no active entry.
func (c *Controller) Active(location string) (int, bool) {
	for i, e := range c.entries {
		if e.Path == location {
			return i, true
		}
	}
	return -1, false
}

// Items returns every entry with at most one marked active.
func (c *Controller) Items(location string) []Item {
	active, ok := c.Active(location)
	items := make([]Item, len(c.entries))
	for i, e := range c.entries {
		items[i] = Item{NavEntry: e, Active: ok && i == active}
	}
	return items
}

// Session is the navigation state of one visitor: the current location and
// whether the mobile menu is expanded. It has a single owner and is not safe
// for concurrent use.
type Session struct {
	ctrl     *Controller
	location string
	menuOpen bool
}

// NewSession starts a session at location with the menu collapsed.
func (c *Controller) NewSession(location string) *Session {
	return &Session{ctrl: c, location: location}
}

// Location returns the current page location.
func (s *Session) Location() string { return s.location }

// MenuOpen reports whether the mobile menu is expanded.
func (s *Session) MenuOpen() bool { return s.menuOpen }

// ToggleMenu flips the menu state and returns the new value.
func (s *Session) ToggleMenu() bool {
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// SetMenuOpen sets the menu state.
func (s *Session) SetMenuOpen(open bool) { s.menuOpen = open }

// Select completes navigation to path: the location changes and the menu
// collapses. It returns the entries as seen from the new location.
func (s *Session) Select(path string) []Item {
	s.location = path
	s.menuOpen = false
	return s.ctrl.Items(path)
}

// Items returns the entries as seen from the current location.
func (s *Session) Items() []Item {
	return s.ctrl.Items(s.location)
}

// MenuLabel is the accessible label of the menu toggle.
func (s *Session) MenuLabel() string {
	if s.menuOpen {
		return "Close menu"
	}
	return "Open menu"
}
