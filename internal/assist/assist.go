// Package assist orchestrates AI transformations of draft text. It holds
// at most one result at a time: issuing a new request discards whatever
// was displayed, and a response is only accepted if it belongs to the
// most recently issued request. In-flight requests are never cancelled;
// a stale response that loses the sequence race is simply dropped.
package assist

import (
	"context"
	"errors"
)

// Kind names one of the supported transformations.
type Kind int

const (
	KindOutline Kind = iota
	KindPolish
	KindSuggestions
)

func (k Kind) String() string {
	switch k {
	case KindOutline:
		return "Outline"
	case KindPolish:
		return "Polish"
	case KindSuggestions:
		return "Suggestions"
	}
	return "Unknown"
}

// Precondition failures, reported before any request is issued.
var (
	ErrNeedTitle = errors.New("enter a title first")
	ErrNeedBody  = errors.New("write some content first")
)

// Transformer issues one transformation request against the AI
// collaborator. Implemented by client.Client.
type Transformer interface {
	GenerateOutline(ctx context.Context, title string) (string, error)
	PolishContent(ctx context.Context, body string) (string, error)
	GenerateSuggestions(ctx context.Context, body string) (string, error)
}

// Result is one accepted transformation result.
type Result struct {
	Kind Kind
	Text string
}

// Orchestrator tracks issued requests and the single displayed result.
// It is owned by one editing session and must only be driven from that
// session's event loop; the network call itself (Run) is the only part
// that executes off-loop.
type Orchestrator struct {
	tr     Transformer
	seq    uint64
	result *Result
}

// New returns an orchestrator backed by tr.
func New(tr Transformer) *Orchestrator {
	return &Orchestrator{tr: tr}
}

// Begin validates the per-kind precondition and registers a new request,
// returning its sequence number. Outline operates on the title; Polish
// and Suggestions operate on the body, and only Suggestions tolerates an
// empty one.
func (o *Orchestrator) Begin(kind Kind, title, body string) (uint64, error) {
	switch kind {
	case KindOutline:
		if title == "" {
			return 0, ErrNeedTitle
		}
	case KindPolish:
		if body == "" {
			return 0, ErrNeedBody
		}
	}
	o.seq++
	return o.seq, nil
}

// Input returns the draft text a kind operates on.
func Input(kind Kind, title, body string) string {
	if kind == KindOutline {
		return title
	}
	return body
}

// Run performs the transformation request. Safe to call from a worker
// goroutine: it touches no orchestrator state.
func (o *Orchestrator) Run(ctx context.Context, kind Kind, input string) (string, error) {
	switch kind {
	case KindOutline:
		return o.tr.GenerateOutline(ctx, input)
	case KindPolish:
		return o.tr.PolishContent(ctx, input)
	default:
		return o.tr.GenerateSuggestions(ctx, input)
	}
}

// Accept installs a completed result if seq still identifies the latest
// issued request, and reports whether it was installed. Late responses
// from superseded requests return false and leave the slot alone.
func (o *Orchestrator) Accept(seq uint64, kind Kind, text string) bool {
	if seq != o.seq {
		return false
	}
	o.result = &Result{Kind: kind, Text: text}
	return true
}

// Result returns the currently displayed result, if any.
func (o *Orchestrator) Result() (Result, bool) {
	if o.result == nil {
		return Result{}, false
	}
	return *o.result, true
}

// Clear dismisses the displayed result. Requests already in flight are
// unaffected; their responses may still win Accept later. That
// last-write-wins race is deliberate.
func (o *Orchestrator) Clear() {
	o.result = nil
}

// Merge applies a result to a draft body. Outlines are scaffolding and
// append to what is already written; Polish and Suggestions are full
// replacement drafts. The asymmetry is intentional and load-bearing.
func Merge(body string, r Result) string {
	if r.Kind == KindOutline {
		if body == "" {
			return r.Text
		}
		return body + "\n\n" + r.Text
	}
	return r.Text
}
