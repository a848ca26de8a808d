package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-3-flash-preview", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-3-pro-preview", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Solve this board question.", Images: []Image{{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}}},
		{Role: RoleAssistant, Content: "Use the work-energy theorem."},
	})
	require.Len(t, contents, 2)

	first := contents[0]
	assert.Equal(t, "user", first.Role)
	require.Len(t, first.Parts, 2)
	require.NotNil(t, first.Parts[0].InlineData, "image goes first")
	assert.Equal(t, "image/jpeg", first.Parts[0].InlineData.MIMEType)
	assert.Equal(t, "Solve this board question.", first.Parts[1].Text)

	assert.Equal(t, "model", contents[1].Role)
	require.Len(t, contents[1].Parts, 1)
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "description": "stem"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3.0},
						"level":         map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
					},
					"required": []any{"question", "options", "correct_index"},
				},
			},
		},
		"required": []any{"questions"},
	}

	s := buildGeminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"questions"}, s.Required)

	qs := s.Properties["questions"]
	require.NotNil(t, qs)
	assert.Equal(t, genai.TypeArray, qs.Type)
	require.NotNil(t, qs.MinItems)
	assert.EqualValues(t, 1, *qs.MinItems)
	assert.Nil(t, qs.MaxItems)

	item := qs.Items
	require.NotNil(t, item)
	assert.Len(t, item.Properties, 4)
	assert.Equal(t, []string{"question", "options", "correct_index"}, item.Required)
	assert.Equal(t, "stem", item.Properties["question"].Description)

	opts := item.Properties["options"]
	assert.Equal(t, genai.TypeString, opts.Items.Type)
	require.NotNil(t, opts.MinItems)
	require.NotNil(t, opts.MaxItems)
	assert.EqualValues(t, 4, *opts.MinItems)
	assert.EqualValues(t, 4, *opts.MaxItems)

	idx := item.Properties["correct_index"]
	assert.Equal(t, genai.TypeInteger, idx.Type)
	require.NotNil(t, idx.Minimum)
	require.NotNil(t, idx.Maximum)
	assert.Equal(t, 0.0, *idx.Minimum)
	assert.Equal(t, 3.0, *idx.Maximum)

	assert.Equal(t, []string{"easy", "hard"}, item.Properties["level"].Enum)
}

func TestBuildGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	assert.Equal(t, genai.TypeString, buildGeminiSchema(map[string]any{"type": "null"}).Type)
	assert.Equal(t, genai.TypeString, buildGeminiSchema(map[string]any{}).Type)
}

func TestGeminiConfig(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		cfg := geminiConfig(Request{MaxTokens: 512})
		assert.EqualValues(t, 512, cfg.MaxOutputTokens)
		assert.Nil(t, cfg.Temperature)
		assert.Nil(t, cfg.SystemInstruction)
		assert.Empty(t, cfg.ResponseMIMEType)
		assert.Nil(t, cfg.ResponseSchema)
	})

	t.Run("structured", func(t *testing.T) {
		cfg := geminiConfig(Request{
			System:      "You write HSC formula sheets.",
			MaxTokens:   4096,
			Temperature: 0.4,
			Schema:      &Schema{Name: "sheet", Definition: map[string]any{"type": "object"}},
		})
		require.NotNil(t, cfg.Temperature)
		assert.InDelta(t, 0.4, *cfg.Temperature, 1e-6)
		require.NotNil(t, cfg.SystemInstruction)
		assert.Equal(t, "You write HSC formula sheets.", cfg.SystemInstruction.Parts[0].Text)
		assert.Equal(t, "application/json", cfg.ResponseMIMEType)
		require.NotNil(t, cfg.ResponseSchema)
		assert.Equal(t, genai.TypeObject, cfg.ResponseSchema.Type)
	})
}

func TestGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}}}
	finished := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "STOP"}}}

	assert.Equal(t, "max_tokens", geminiStopReason(truncated))
	assert.Equal(t, "end", geminiStopReason(finished))
	assert.Equal(t, "end", geminiStopReason(&genai.GenerateContentResponse{}))
}

func TestGeminiBlockReason(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{
			name:   "prompt blocked",
			result: &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: "SAFETY"}},
			want:   "SAFETY",
		},
		{
			name:   "candidate withheld",
			result: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "PROHIBITED_CONTENT"}}},
			want:   "PROHIBITED_CONTENT",
		},
		{
			name:   "finished normally",
			result: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: "STOP"}}},
		},
		{
			name:   "no candidates",
			result: &genai.GenerateContentResponse{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geminiBlockReason(tt.result))
		})
	}
}
