package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as a stored
// event and a log line.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	log       zerolog.Logger
}

// WithLogging wraps a Provider with event logging. eventRepo may be nil, in
// which case only the log line is written.
func WithLogging(p Provider, name string, repo store.EventRepo, log zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	label := LabelFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     label.Purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A refused or malformed answer is worth more attention than a busy
	// provider.
	ev := l.log.Info()
	switch {
	case err == nil:
	case Transient(err):
		ev = l.log.Warn().Err(err)
	default:
		ev = l.log.Error().Err(err)
	}
	if label.Topic != "" {
		ev = ev.Str("topic", label.Topic)
	}
	ev.Str("provider", data.Provider).
		Str("model", data.Model).
		Str("purpose", label.Purpose).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Int64("latency_ms", latencyMs).
		Msg("llm request")

	// A failed write is logged, never returned.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Error().Err(logErr).Msg("failed to store LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
// Image bytes are summarized, not copied.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		for _, img := range m.Images {
			fmt.Fprintf(&b, "<image %s, %d bytes>\n", img.MIMEType, len(img.Data))
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
