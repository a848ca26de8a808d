package components

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoiceCursorAndPick(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})

	mc, _ = mc.Update(key("down"))
	mc, _ = mc.Update(key("down"))
	assert.Equal(t, 2, mc.Cursor)

	mc, cmd := mc.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Index: 2}, cmd())
}

func TestMultiChoiceLetterShortcut(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})

	mc, cmd := mc.Update(key("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Index: 3}, cmd())
	assert.Equal(t, 3, mc.Cursor)

	_, cmd = mc.Update(key("2"))
	require.NotNil(t, cmd)
	assert.Equal(t, ChoiceMsg{Index: 1}, cmd())

	_, cmd = mc.Update(key("x"))
	assert.Nil(t, cmd)
}

func TestMultiChoiceRevealedIgnoresKeys(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc.Reveal(1, 2)

	_, cmd := mc.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, mc.View(40), "✓")
	assert.Contains(t, mc.View(40), "✗")
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two"},
		{Label: "three", Disabled: true},
		{Label: "four"},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
}

func TestMenuSetItemsClampsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "x"}})
	assert.Equal(t, 0, m.Selected)

	m.SetItems(nil)
	assert.Equal(t, 0, m.Selected)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, NewProgressBar("", 0, 0, 20).Percent())
	assert.Equal(t, 0.5, NewProgressBar("", 5, 10, 20).Percent())
	assert.Equal(t, 1.0, NewProgressBar("", 12, 10, 20).Percent())
	assert.Contains(t, NewProgressBar("Q", 3, 10, 30).View(), "3/10")
}

func TestMenuViewScrollsToCursor(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: fmt.Sprintf("chapter-%d", i)}
	}
	m := NewMenu(items)
	m.Selected = 9

	out := m.View(4)
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "▸ chapter-9")
	assert.NotContains(t, out, "chapter-5")

	assert.Equal(t, 10, strings.Count(m.View(0), "\n"))
}
