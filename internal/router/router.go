package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/recallkit/internal/screen"
)

// ReplaceScreenMsg asks the router to make Screen the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the active screen. Screens hand off to their successor by
// returning a command that yields ReplaceScreenMsg, e.g. study to summary.
type Router struct {
	active screen.Screen
}

// New creates a Router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace makes s active and returns its Init command. A nil s is ignored.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if s == nil {
		return nil
	}
	r.active = s
	return s.Init()
}

// Active returns the screen currently shown.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Update handles ReplaceScreenMsg and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
