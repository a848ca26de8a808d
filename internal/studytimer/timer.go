// Package studytimer counts study time for the header clock.
package studytimer

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
)

// Timer is a whole-second counter started at zero. It has no pause or reset.
type Timer struct {
	seconds int64
}

// Tick adds one second.
func (t *Timer) Tick() {
	t.seconds++
}

// Seconds returns the elapsed count.
func (t *Timer) Seconds() int64 {
	return t.seconds
}

func (t *Timer) String() string {
	return Format(t.seconds)
}

// Format renders seconds as HH:MM:SS. Hours are not capped at 24.
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// TickMsg is delivered once per second by Cmd.
type TickMsg struct{}

// Cmd schedules the next tick.
func Cmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
