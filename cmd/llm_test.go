package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomerslab/hsclab/internal/store"
)

func TestModelCosts(t *testing.T) {
	rows, total, unknown := modelCosts([]store.LLMUsage{
		{Model: "gemini-3-flash-preview", Calls: 4, InputTokens: 1_000_000, OutputTokens: 1_000_000},
		{Model: "mock", Calls: 2, InputTokens: 10, OutputTokens: 10},
	})

	require.Len(t, rows, 2)
	assert.True(t, rows[0].known)
	assert.InDelta(t, 3.5, rows[0].usd, 1e-9)
	assert.False(t, rows[1].known)
	assert.InDelta(t, 3.5, total, 1e-9)
	assert.Equal(t, []string{"mock"}, unknown)
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, &store.LLMEvent{
		ID:        7,
		Timestamp: time.Now(),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider:     "gemini",
			Model:        "gemini-3-flash-preview",
			Purpose:      "tutor",
			RequestBody:  "[user]\nত্বরণ কী?",
			ErrorMessage: "rate limited: 429",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Provider:  gemini (gemini-3-flash-preview)")
	assert.Contains(t, out, "Error:     rate limited: 429")
	assert.Contains(t, out, "ত্বরণ কী?")
	assert.Contains(t, out, "(empty)")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0035", formatCost(0.0035))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
