// Package formula tracks one opened formula sheet, generating the text when
// the catalog has none.
package formula

import (
	"context"

	"github.com/zoomerslab/hsclab/internal/catalog"
	"github.com/zoomerslab/hsclab/internal/gateway"
)

// FailureMessage is shown when a sheet cannot be generated.
const FailureMessage = "ফর্মুলা শিট তৈরি করা যায়নি। আবার চেষ্টা করো।"

// Status is the sheet's loading status.
type Status int

const (
	StatusPending Status = iota // needs generation, nothing requested yet
	StatusLoading
	StatusReady
	StatusFailed
	StatusClosed
)

// Sheet is the viewer state for one formula resource.
type Sheet struct {
	resource catalog.ResourceInfo
	status   Status
	text     string
	err      error
	epoch    uint64
}

// Open starts a sheet. Stored content makes it ready immediately.
func Open(r catalog.Resource) *Sheet {
	info := r.Info()
	s := &Sheet{resource: info}
	if info.Content != "" {
		s.status = StatusReady
		s.text = info.Content
	}
	return s
}

func (s *Sheet) Resource() catalog.ResourceInfo { return s.resource }
func (s *Sheet) Status() Status                 { return s.status }
func (s *Sheet) Err() error                     { return s.err }

// Text returns the sheet body, or FailureMessage after a failure.
func (s *Sheet) Text() string {
	if s.status == StatusFailed {
		return FailureMessage
	}
	return s.text
}

// Ticket identifies one generation request.
type Ticket struct {
	owner   *Sheet
	epoch   uint64
	Request gateway.FormulaRequest
}

// Result is the outcome of Fetch.
type Result struct {
	Ticket Ticket
	Text   string
	Err    error
}

// Begin requests generation. Only valid while pending.
func (s *Sheet) Begin() (Ticket, bool) {
	if s.status != StatusPending {
		return Ticket{}, false
	}
	s.status = StatusLoading
	return Ticket{
		owner: s,
		epoch: s.epoch,
		Request: gateway.FormulaRequest{
			Subject: s.resource.Category,
			Chapter: s.chapter(),
			Paper:   s.resource.Paper,
		},
	}, true
}

// chapter falls back to the title for resources filed without a chapter.
func (s *Sheet) chapter() string {
	if s.resource.Chapter != "" {
		return s.resource.Chapter
	}
	return s.resource.Title
}

// Fetch runs the gateway call for t.
func Fetch(ctx context.Context, gw gateway.Gateway, t Ticket) Result {
	text, err := gw.GenerateFormulaSheet(ctx, t.Request)
	return Result{Ticket: t, Text: text, Err: err}
}

// Apply is Complete for a Result.
func (s *Sheet) Apply(r Result) bool {
	return s.Complete(r.Ticket, r.Text, r.Err)
}

// Complete stores the generated text or the failure. Results for a closed
// sheet or an old ticket are dropped.
func (s *Sheet) Complete(t Ticket, text string, err error) bool {
	if t.owner != s || s.status != StatusLoading || t.epoch != s.epoch {
		return false
	}
	s.epoch++
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return true
	}
	s.status = StatusReady
	s.text = text
	return true
}

// Retry puts a failed sheet back to pending so Begin can run again.
func (s *Sheet) Retry() bool {
	if s.status != StatusFailed {
		return false
	}
	s.status = StatusPending
	s.err = nil
	return true
}

// Close drops any generation still in flight.
func (s *Sheet) Close() {
	s.status = StatusClosed
	s.epoch++
}
