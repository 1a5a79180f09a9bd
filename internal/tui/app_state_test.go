package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/draft"
	"inkwell/internal/model"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	m := newAppModel(client.New("http://127.0.0.1:0"), "Ada")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(appModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func sampleRecords() []model.Record {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Record{
		{ID: "r2", Title: "Second", Body: "<p>two</p>", AuthorName: "Ada", CreatedAt: now},
		{ID: "r1", Title: "First", Body: "<p>one</p>", AuthorName: "Ada", CreatedAt: now.Add(-time.Hour)},
	}
}

func TestRecordsLoadedPopulatesHome(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(recordsLoadedMsg{records: sampleRecords()})
	m = next.(appModel)

	if got := len(m.homeList.Items()); got != 2 {
		t.Fatalf("home list has %d items, want 2", got)
	}
	if m.loadErr != "" {
		t.Fatalf("loadErr = %q", m.loadErr)
	}
}

func TestNewPostOpensBlankComposer(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyMsg("n"))
	m = next.(appModel)

	if m.view != viewComposer {
		t.Fatalf("view = %v, want composer", m.view)
	}
	d := m.session.Draft()
	if d.Editing() {
		t.Fatal("blank composer should not target an existing record")
	}
	if d.AuthorName != "Ada" {
		t.Fatalf("author not pre-filled: %q", d.AuthorName)
	}
}

func TestSubmitWithEmptyFieldsShowsErrorsWithoutNetwork(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyMsg("n"))
	m = next.(appModel)

	next, cmd := m.Update(keyMsg("ctrl+s"))
	m = next.(appModel)

	if cmd != nil {
		t.Fatal("invalid draft must not issue a network command")
	}
	for _, field := range []string{"body", "editKey"} {
		if _, ok := m.fieldErrs[field]; !ok {
			t.Fatalf("missing validation error for %q: %v", field, m.fieldErrs)
		}
	}
	if m.session.Phase().String() != "editing" {
		t.Fatalf("phase = %s after rejected submit", m.session.Phase())
	}
}

func TestFailedSubmitKeepsDraft(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyMsg("n"))
	m = next.(appModel)

	m.titleInput.SetValue("T")
	m.bodyArea.SetValue("<p>B</p>")
	m.keyInput.SetValue("wrong")
	m.pullComposerInputs()

	next, cmd := m.Update(keyMsg("ctrl+s"))
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("valid draft should issue a submit command")
	}

	next, _ = m.Update(submitDoneMsg{err: client.ErrInvalidEditKey})
	m = next.(appModel)

	if m.view != viewComposer {
		t.Fatal("failed submit must stay on the composer")
	}
	if m.submitErr != "Invalid edit key" {
		t.Fatalf("submitErr = %q", m.submitErr)
	}
	d := m.session.Draft()
	if d.Title != "T" || d.Body != "<p>B</p>" || d.EditKey != "wrong" {
		t.Fatalf("draft not preserved: %+v", d)
	}
}

func TestStaleAssistResponseIsDropped(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyMsg("n"))
	m = next.(appModel)

	m.titleInput.SetValue("My Post")
	m.bodyArea.SetValue("draft body")
	m.pullComposerInputs()

	next, _ = m.beginAssist(assist.KindOutline)
	m = next.(appModel)
	firstSeq := m.assistSeq

	next, _ = m.beginAssist(assist.KindPolish)
	m = next.(appModel)

	// The outline response arrives after polish was requested.
	next, _ = m.Update(assistDoneMsg{seq: firstSeq, kind: assist.KindOutline, text: "## stale"})
	m = next.(appModel)
	if _, ok := m.orch.Result(); ok {
		t.Fatal("stale response must not install a result")
	}
	if !m.assistBusy {
		t.Fatal("latest request is still in flight")
	}

	next, _ = m.Update(assistDoneMsg{seq: m.assistSeq, kind: assist.KindPolish, text: "polished"})
	m = next.(appModel)
	r, ok := m.orch.Result()
	if !ok || r.Text != "polished" {
		t.Fatalf("latest response not installed: %+v ok=%v", r, ok)
	}
}

func TestApplyOutlineAppendsToBody(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyMsg("n"))
	m = next.(appModel)

	m.titleInput.SetValue("My Post")
	m.bodyArea.SetValue("existing")
	m.pullComposerInputs()

	next, _ = m.beginAssist(assist.KindOutline)
	m = next.(appModel)
	next, _ = m.Update(assistDoneMsg{seq: m.assistSeq, kind: assist.KindOutline, text: "## outline"})
	m = next.(appModel)

	next, _ = m.Update(keyMsg("ctrl+y"))
	m = next.(appModel)

	if got := m.session.Draft().Body; got != "existing\n\n## outline" {
		t.Fatalf("body after outline apply = %q", got)
	}
	if _, ok := m.orch.Result(); ok {
		t.Fatal("applied result should be cleared")
	}
}

func TestDeleteModalSurvivesWrongKey(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(recordsLoadedMsg{records: sampleRecords()})
	m = next.(appModel)

	next, _ = m.Update(keyMsg("d"))
	m = next.(appModel)
	if m.modal != modalConfirmDelete {
		t.Fatal("delete modal not opened")
	}

	// Enter with no key: local error, no network.
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(appModel)
	if cmd != nil {
		t.Fatal("empty key must not issue a delete command")
	}
	if m.deleteErr == "" {
		t.Fatal("expected a prompt for the edit key")
	}

	m.deleteKeyInpt.SetValue("wrong")
	next, cmd = m.Update(keyMsg("enter"))
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("expected a delete command")
	}

	next, _ = m.Update(deleteDoneMsg{id: m.deleteID, err: client.ErrInvalidEditKey})
	m = next.(appModel)
	if m.modal != modalConfirmDelete {
		t.Fatal("modal must stay open after a rejected delete")
	}
	if m.deleteErr != "Invalid edit key" {
		t.Fatalf("deleteErr = %q", m.deleteErr)
	}

	next, _ = m.Update(deleteDoneMsg{id: m.deleteID})
	m = next.(appModel)
	if m.modal != modalNone {
		t.Fatal("modal should close after a successful delete")
	}
}

func TestEditSessionFreezesAuthor(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(recordsLoadedMsg{records: sampleRecords()})
	m = next.(appModel)
	next, _ = m.Update(keyMsg("e"))
	m = next.(appModel)

	next, _ = m.Update(editLoadedMsg{rec: sampleRecords()[0]})
	m = next.(appModel)

	m.session.SetAuthorName("Impostor")
	if got := m.session.Draft().AuthorName; got != "Ada" {
		t.Fatalf("author changed while editing: %q", got)
	}

	// Tab order skips the frozen author field.
	m.setComposerFocus(focusTitle)
	if next := m.nextComposerFocus(); next != focusBody {
		t.Fatalf("focus after title = %v, want body", next)
	}
}

func TestLateEditFetchAfterLeavingComposer(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(recordsLoadedMsg{records: sampleRecords()})
	m = next.(appModel)

	next, _ = m.Update(keyMsg("e"))
	m = next.(appModel)
	if m.session == nil || m.session.Phase() != draft.PhaseLoading {
		t.Fatalf("edit session not loading: %+v", m.session)
	}

	// Leave the composer while the fetch is still in flight.
	next, _ = m.Update(keyMsg("esc"))
	m = next.(appModel)
	if m.view != viewHome || m.session != nil {
		t.Fatalf("esc did not abandon the session: view=%v session=%v", m.view, m.session)
	}

	// The abandoned fetch resolves afterwards; it must change nothing.
	next, _ = m.Update(editLoadedMsg{rec: sampleRecords()[0]})
	m = next.(appModel)
	if m.view != viewHome {
		t.Fatalf("late edit response moved the view: %v", m.view)
	}
	if m.session != nil {
		t.Fatal("late edit response revived the session")
	}
}

func TestReaderErrorReturnsHome(t *testing.T) {
	m := newTestModel(t)
	m.view = viewReader
	next, _ := m.Update(recordLoadedMsg{err: errors.New("boom")})
	m = next.(appModel)

	if m.view != viewHome {
		t.Fatalf("view = %v, want home after a failed load", m.view)
	}
	if m.minibufferText == "" {
		t.Fatal("expected an error notice")
	}
}
