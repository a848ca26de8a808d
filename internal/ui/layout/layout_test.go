package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.False(t, IsTooSmall(80, 24))
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
}

func TestRenderHeaderLabel(t *testing.T) {
	st := Status{Elapsed: "01:02:03", Stealth: true}

	wide := RenderHeader("Home", st, 120)
	assert.Contains(t, wide, "Lab Environment: STEALTH")
	assert.Contains(t, wide, "01:02:03")

	narrow := RenderHeader("Home", st, 90)
	assert.NotContains(t, narrow, "Lab Environment")
	assert.Contains(t, narrow, "STEALTH")
}

func TestRenderFooterKeepsQuit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Tab", Description: "Focus"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Search"},
		{Key: "A", Description: "AI Tutor"},
		{Key: "H", Description: "History"},
		{Key: "Ctrl+T", Description: "Stealth"},
		{Key: "Ctrl+C", Description: "Quit"},
	}

	wide := RenderFooter(hints, 200)
	assert.Contains(t, wide, "History")

	narrow := RenderFooter(hints, 50)
	assert.Contains(t, narrow, "Quit")
	assert.Contains(t, narrow, "Focus")
	assert.NotContains(t, narrow, "Stealth")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", Status{Elapsed: "00:00:00"}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Ctrl+C", Description: "Quit"}}, 80)

	frame := RenderFrame(header, "body", footer, 80, 30)
	assert.Equal(t, 30, lipgloss.Height(frame))
	assert.True(t, strings.Contains(frame, "body"))
	assert.Equal(t, 30-lipgloss.Height(header)-lipgloss.Height(footer), BodyHeight(header, footer, 30))
}
