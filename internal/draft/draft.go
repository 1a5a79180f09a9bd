// Package draft holds the client-local state machine for one authoring
// session. The session owns the in-memory draft; nothing else writes it.
//
// Phases:
//
//	Blank ──────────────► Editing            (new record, immediately)
//	Loading ──hydrate───► Editing            (edit mode)
//	Loading ──fetch err─► abandoned          (no partial edit session)
//	Editing ──submit────► Submitting         (only when Validate passes)
//	Submitting ──ok─────► Succeeded          (draft discarded, navigate)
//	Submitting ──err────► Editing            (draft kept verbatim)
//
// AI requests run while Editing without changing the phase; they only
// touch the body on merge.
package draft

import (
	"fmt"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/model"
)

// Phase is the session's position in the workflow.
type Phase int

const (
	PhaseBlank Phase = iota
	PhaseLoading
	PhaseEditing
	PhaseSubmitting
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseBlank:
		return "blank"
	case PhaseLoading:
		return "loading"
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// TransitionError reports an operation applied in the wrong phase.
type TransitionError struct {
	Op   string
	From Phase
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.From)
}

// Draft is the editable copy of a record. The edit key lives here in
// plaintext for the lifetime of the session and nowhere else.
type Draft struct {
	RecordID   string // empty while creating a new record
	Title      string
	Body       string
	AuthorName string
	EditKey    string
}

// Editing reports whether the draft targets an existing record.
func (d Draft) Editing() bool { return d.RecordID != "" }

// Session is one authoring session's authoritative state.
type Session struct {
	phase Phase
	draft Draft
}

// NewBlank starts a session for a new record. There is nothing to load,
// so it is immediately editable.
func NewBlank() *Session {
	return &Session{phase: PhaseEditing}
}

// NewForRecord starts a session that edits an existing record; the
// caller fetches the record and calls Hydrate (or abandons the session
// on fetch failure).
func NewForRecord(id string) *Session {
	return &Session{phase: PhaseLoading, draft: Draft{RecordID: id}}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft { return s.draft }

// Hydrate populates the draft from a fetched record and opens it for
// editing. The edit key is never part of a fetched record, so it starts
// empty and the user re-supplies it on submit.
func (s *Session) Hydrate(rec model.Record) error {
	if s.phase != PhaseLoading {
		return TransitionError{Op: "hydrate", From: s.phase}
	}
	s.draft.Title = rec.Title
	s.draft.Body = rec.Body
	s.draft.AuthorName = rec.AuthorName
	s.draft.EditKey = ""
	s.phase = PhaseEditing
	return nil
}

// SetTitle updates the draft title.
func (s *Session) SetTitle(v string) { s.draft.Title = v }

// SetBody updates the draft body.
func (s *Session) SetBody(v string) { s.draft.Body = v }

// SetEditKey updates the session-local edit key.
func (s *Session) SetEditKey(v string) { s.draft.EditKey = v }

// SetAuthorName updates the author name. Ignored when editing an
// existing record: the store fixes author identity at creation.
func (s *Session) SetAuthorName(v string) {
	if s.draft.Editing() {
		return
	}
	s.draft.AuthorName = v
}

// Validate returns the empty required fields, keyed by field name. An
// empty map means the draft may be submitted.
func (s *Session) Validate() map[string]string {
	missing := map[string]string{}
	if s.draft.Title == "" {
		missing["title"] = "title is required"
	}
	if s.draft.Body == "" {
		missing["body"] = "content is required"
	}
	if s.draft.AuthorName == "" {
		missing["authorName"] = "author name is required"
	}
	if s.draft.EditKey == "" {
		missing["editKey"] = "edit key is required"
	}
	if len(missing) == 0 {
		return nil
	}
	return missing
}

// BeginSubmit moves Editing → Submitting. It refuses to start the
// network call while any required field is empty, leaving the draft
// untouched.
func (s *Session) BeginSubmit() error {
	if s.phase != PhaseEditing {
		return TransitionError{Op: "submit", From: s.phase}
	}
	if missing := s.Validate(); missing != nil {
		// Same error class the server would return, so callers surface
		// local and remote validation failures identically.
		return client.ValidationError{Fields: missing}
	}
	s.phase = PhaseSubmitting
	return nil
}

// SubmitFailed returns to Editing with the draft — including the typed
// edit key — preserved verbatim, so a wrong key can be corrected and
// resubmitted without retyping anything.
func (s *Session) SubmitFailed() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseEditing
	}
}

// SubmitSucceeded is terminal; the caller navigates away and discards
// the session.
func (s *Session) SubmitSucceeded() {
	if s.phase == PhaseSubmitting {
		s.phase = PhaseSucceeded
	}
}

// Fields returns the submission payload for the current draft.
func (s *Session) Fields() model.Fields {
	return model.Fields{
		Title:      s.draft.Title,
		Body:       s.draft.Body,
		AuthorName: s.draft.AuthorName,
		EditKey:    s.draft.EditKey,
	}
}

// MergeAssist folds an accepted AI result into the body. Only legal
// while editing; a merge never changes the phase.
func (s *Session) MergeAssist(r assist.Result) error {
	if s.phase != PhaseEditing {
		return TransitionError{Op: "merge", From: s.phase}
	}
	s.draft.Body = assist.Merge(s.draft.Body, r)
	return nil
}
