package draft

import (
	"errors"
	"testing"
	"time"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/model"
)

func editableSession(t *testing.T) *Session {
	t.Helper()
	s := NewBlank()
	s.SetTitle("Title")
	s.SetBody("<p>Body</p>")
	s.SetAuthorName("Ada")
	s.SetEditKey("secret")
	return s
}

func TestNewBlankIsImmediatelyEditable(t *testing.T) {
	s := NewBlank()
	if s.Phase() != PhaseEditing {
		t.Fatalf("Phase() = %v; want editing", s.Phase())
	}
	if s.Draft().Editing() {
		t.Fatalf("blank session reports an existing record")
	}
}

func TestHydrateOpensEditingWithEmptyKey(t *testing.T) {
	s := NewForRecord("rec-1")
	if s.Phase() != PhaseLoading {
		t.Fatalf("Phase() = %v; want loading", s.Phase())
	}
	err := s.Hydrate(model.Record{
		ID:         "rec-1",
		Title:      "T",
		Body:       "<p>B</p>",
		AuthorName: "Ada",
		Views:      7,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	d := s.Draft()
	if d.Title != "T" || d.Body != "<p>B</p>" || d.AuthorName != "Ada" {
		t.Fatalf("Draft() = %+v; fields not hydrated", d)
	}
	if d.EditKey != "" {
		t.Fatalf("Hydrate leaked an edit key: %q", d.EditKey)
	}
	if s.Phase() != PhaseEditing {
		t.Fatalf("Phase() after hydrate = %v; want editing", s.Phase())
	}
}

func TestHydrateOutsideLoadingIsRejected(t *testing.T) {
	s := NewBlank()
	err := s.Hydrate(model.Record{ID: "x"})
	var te TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("Hydrate on blank session: got %v, want TransitionError", err)
	}
}

func TestAuthorNameImmutableWhenEditing(t *testing.T) {
	s := NewForRecord("rec-1")
	if err := s.Hydrate(model.Record{ID: "rec-1", Title: "T", Body: "B", AuthorName: "Ada"}); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	s.SetAuthorName("Mallory")
	if got := s.Draft().AuthorName; got != "Ada" {
		t.Fatalf("AuthorName = %q; author must stay fixed once editing", got)
	}

	// Creating new: author is still settable.
	b := NewBlank()
	b.SetAuthorName("Grace")
	if got := b.Draft().AuthorName; got != "Grace" {
		t.Fatalf("AuthorName on new draft = %q", got)
	}
}

func TestBeginSubmitValidatesBeforeAnyNetworkCall(t *testing.T) {
	cases := []struct {
		name  string
		strip func(*Session)
		field string
	}{
		{"empty title", func(s *Session) { s.SetTitle("") }, "title"},
		{"empty body", func(s *Session) { s.SetBody("") }, "body"},
		{"empty author", func(s *Session) { s.SetAuthorName("") }, "authorName"},
		{"empty edit key", func(s *Session) { s.SetEditKey("") }, "editKey"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := editableSession(t)
			tc.strip(s)
			before := s.Draft()
			err := s.BeginSubmit()
			var ve client.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("BeginSubmit: got %v, want ValidationError", err)
			}
			if _, ok := ve.Fields[tc.field]; !ok {
				t.Fatalf("ValidationError.Fields = %v; missing %q", ve.Fields, tc.field)
			}
			if s.Phase() != PhaseEditing {
				t.Fatalf("Phase() = %v; rejected submit must not leave editing", s.Phase())
			}
			if s.Draft() != before {
				t.Fatalf("draft mutated by failed validation")
			}
		})
	}
}

func TestSubmitFailurePreservesDraftVerbatim(t *testing.T) {
	s := editableSession(t)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if s.Phase() != PhaseSubmitting {
		t.Fatalf("Phase() = %v; want submitting", s.Phase())
	}
	before := s.Draft()

	// Unauthorized from the store: back to editing, nothing lost.
	s.SubmitFailed()
	if s.Phase() != PhaseEditing {
		t.Fatalf("Phase() after failure = %v; want editing", s.Phase())
	}
	if s.Draft() != before {
		t.Fatalf("draft changed across a failed submit:\nbefore %+v\nafter  %+v", before, s.Draft())
	}
}

func TestSubmitSucceededIsTerminal(t *testing.T) {
	s := editableSession(t)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	s.SubmitSucceeded()
	if s.Phase() != PhaseSucceeded {
		t.Fatalf("Phase() = %v; want succeeded", s.Phase())
	}
	if err := s.BeginSubmit(); err == nil {
		t.Fatalf("BeginSubmit after success: expected transition error")
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	s := editableSession(t)
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	err := s.BeginSubmit()
	var te TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("second BeginSubmit: got %v, want TransitionError", err)
	}
}

func TestMergeAssist(t *testing.T) {
	s := editableSession(t)
	s.SetBody("draft text")

	if err := s.MergeAssist(assist.Result{Kind: assist.KindOutline, Text: "## outline"}); err != nil {
		t.Fatalf("MergeAssist outline: %v", err)
	}
	if got := s.Draft().Body; got != "draft text\n\n## outline" {
		t.Fatalf("outline merge = %q; want append", got)
	}

	if err := s.MergeAssist(assist.Result{Kind: assist.KindPolish, Text: "rewritten"}); err != nil {
		t.Fatalf("MergeAssist polish: %v", err)
	}
	if got := s.Draft().Body; got != "rewritten" {
		t.Fatalf("polish merge = %q; want full replacement", got)
	}

	// No merging while a submit is in flight.
	if err := s.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := s.MergeAssist(assist.Result{Kind: assist.KindOutline, Text: "x"}); err == nil {
		t.Fatalf("MergeAssist while submitting: expected transition error")
	}
}

func TestFieldsCarriesEditKey(t *testing.T) {
	s := editableSession(t)
	f := s.Fields()
	if f.EditKey != "secret" || f.Title != "Title" || f.AuthorName != "Ada" {
		t.Fatalf("Fields() = %+v", f)
	}
}
