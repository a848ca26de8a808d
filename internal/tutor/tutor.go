// Package tutor holds the single-turn AI tutor dialog state.
package tutor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zoomerslab/hsclab/internal/gateway"
)

// FailureMessage replaces the response when a turn fails.
const FailureMessage = "AI সার্কিটে সমস্যা হয়েছে! আবার চেষ্টা করো।"

// Session is one open tutor dialog. Like quiz.Session it is driven from a
// single goroutine.
type Session struct {
	query    string
	image    *Attachment
	response string
	failed   bool

	loading bool
	epoch   uint64
	closed  bool

	log zerolog.Logger
}

// New opens an empty dialog.
func New(log zerolog.Logger) *Session {
	return &Session{log: log}
}

// Query is the question text not yet sent.
func (s *Session) Query() string { return s.query }

// Response is the last answer or failure message shown.
func (s *Session) Response() string { return s.response }

// Loading reports whether a turn is waiting on the gateway.
func (s *Session) Loading() bool { return s.loading }

// Closed reports whether the dialog was dismissed.
func (s *Session) Closed() bool { return s.closed }

// Failed reports whether the last turn ended in FailureMessage.
func (s *Session) Failed() bool { return s.failed }

// SetQuery replaces the pending question text.
func (s *Session) SetQuery(q string) {
	s.query = q
}

// Image returns the staged attachment, if any.
func (s *Session) Image() (Attachment, bool) {
	if s.image == nil {
		return Attachment{}, false
	}
	return *s.image, true
}

// AttachImage stages img, replacing any earlier one.
func (s *Session) AttachImage(img Attachment) {
	s.image = &img
}

// RemoveImage drops the staged attachment.
func (s *Session) RemoveImage() {
	s.image = nil
}

// Ticket identifies one tutor turn.
type Ticket struct {
	owner   *Session
	epoch   uint64
	Request gateway.TutorRequest
}

// Result is the outcome of Fetch.
type Result struct {
	Ticket Ticket
	Text   string
	Err    error
}

// Ask starts a turn. It is a no-op with a blank query and no image, while a
// turn is in flight, or after Close.
func (s *Session) Ask() (Ticket, bool) {
	if s.closed || s.loading {
		return Ticket{}, false
	}
	if strings.TrimSpace(s.query) == "" && s.image == nil {
		return Ticket{}, false
	}

	s.loading = true
	req := gateway.TutorRequest{Prompt: s.query}
	if s.image != nil {
		req.Image = &gateway.Image{MIMEType: s.image.MIMEType, Data: s.image.Data}
	}
	return Ticket{owner: s, epoch: s.epoch, Request: req}, true
}

// Fetch sends the turn to the gateway. It does not touch the session.
func Fetch(ctx context.Context, gw gateway.Gateway, t Ticket) Result {
	text, err := gw.AnswerTutorQuery(ctx, t.Request)
	return Result{Ticket: t, Text: text, Err: err}
}

// Apply is Complete for a Result.
func (s *Session) Apply(r Result) bool {
	return s.Complete(r.Ticket, r.Text, r.Err)
}

// Complete lands a turn. Results for a closed dialog or an old ticket are
// dropped. On success the answer is shown and the query and image are
// cleared; on failure the fixed failure message is shown and both are kept
// for resubmission.
func (s *Session) Complete(t Ticket, text string, err error) bool {
	if t.owner != s || s.closed || !s.loading || t.epoch != s.epoch {
		s.log.Debug().Msg("discarding stale tutor answer")
		return false
	}
	s.loading = false
	s.epoch++

	if err != nil {
		s.log.Warn().Err(err).Msg("tutor query failed")
		s.response = FailureMessage
		s.failed = true
		return true
	}

	s.response = text
	s.failed = false
	s.query = ""
	s.image = nil
	return true
}

// Close tears the dialog down. A turn still in flight is dropped on arrival.
func (s *Session) Close() {
	s.closed = true
	s.loading = false
	s.epoch++
}
