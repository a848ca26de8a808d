// Package router keeps the stack of open screens. The home screen sits at
// the bottom and is never popped.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zoomerslab/hsclab/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen and returns to the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the current screen and opens Screen in its place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The root stays.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	release(r.stack[r.top()])
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	release(r.stack[r.top()])
	r.stack[r.top()] = s
	return s.Init()
}

// CloseAll releases every open screen, top first. It runs on quit so that
// in-flight requests are abandoned rather than delivered to a dead program.
func (r *Router) CloseAll() {
	for i := r.top(); i >= 0; i-- {
		release(r.stack[i])
	}
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and sends everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
