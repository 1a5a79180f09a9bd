package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/draft"
	"inkwell/internal/model"
)

type appModel struct {
	api *client.Client
	// author pre-fills the author field on new drafts.
	author string

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user-driven
	// resize.
	seenWindowSize bool

	view view

	homeList list.Model
	loading  bool
	loadErr  string

	// Reader state. The rendered body is cached per width because HTML
	// layout is not free and scrolling re-renders the view.
	readerID    string
	reader      *model.Record
	readerLines []string
	readerViewW int
	readerTop   int

	// Composer state. The session owns the draft; the inputs mirror it.
	session     *draft.Session
	orch        *assist.Orchestrator
	titleInput  textinput.Model
	authorInput textinput.Model
	keyInput    textinput.Model
	bodyArea    textarea.Model
	focus       composerFocus
	fieldErrs   map[string]string
	submitErr   string
	assistBusy  bool
	assistKind  assist.Kind
	assistSeq   uint64

	// Delete confirmation modal. It survives a failed delete so the key
	// can be retyped.
	modal         modalKind
	deleteID      string
	deleteTitle   string
	deleteBusy    bool
	deleteErr     string
	deleteKeyInpt textinput.Model

	externalEditorPath   string
	externalEditorBefore string

	minibufferText string
	minibufferSeq  int
}

func newAppModel(api *client.Client, author string) appModel {
	m := appModel{
		api:     api,
		author:  author,
		view:    viewHome,
		loading: true,
	}

	m.homeList = list.New([]list.Item{}, newRecordDelegate(), 0, 0)
	m.homeList.Title = "Posts"
	// The app renders its own header and footer, so keep list chrome
	// minimal.
	m.homeList.SetShowTitle(false)
	m.homeList.SetShowHelp(false)
	m.homeList.SetShowStatusBar(false)
	m.homeList.SetShowPagination(false)
	m.homeList.SetFilteringEnabled(true)
	m.homeList.SetStatusBarItemName("post", "posts")
	// The bubbles list quits on ESC by default; here ESC means back.
	m.homeList.KeyMap.Quit.SetKeys("q")

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 60

	m.authorInput = textinput.New()
	m.authorInput.Placeholder = "Author"
	m.authorInput.CharLimit = 100
	m.authorInput.Width = 40

	m.keyInput = textinput.New()
	m.keyInput.Placeholder = "Edit key"
	m.keyInput.EchoMode = textinput.EchoPassword
	m.keyInput.CharLimit = 200
	m.keyInput.Width = 40

	m.bodyArea = textarea.New()
	m.bodyArea.Placeholder = "Write…"
	m.bodyArea.CharLimit = 0
	m.bodyArea.SetWidth(72)
	m.bodyArea.SetHeight(12)
	m.bodyArea.ShowLineNumbers = false

	m.deleteKeyInpt = textinput.New()
	m.deleteKeyInpt.Placeholder = "Edit key"
	m.deleteKeyInpt.EchoMode = textinput.EchoPassword
	m.deleteKeyInpt.CharLimit = 200
	m.deleteKeyInpt.Width = 32

	return m
}

// openComposer starts an authoring session. An empty id means a new
// record; otherwise the record is fetched and the session hydrated from
// the response.
func (m *appModel) openComposer(id string) {
	m.view = viewComposer
	m.orch = assist.New(m.api)
	m.fieldErrs = nil
	m.submitErr = ""
	m.assistBusy = false

	if id == "" {
		m.session = draft.NewBlank()
		m.session.SetAuthorName(m.author)
	} else {
		m.session = draft.NewForRecord(id)
	}
	m.syncComposerInputs()
	m.setComposerFocus(focusTitle)
}

// syncComposerInputs pushes the session draft into the widgets.
func (m *appModel) syncComposerInputs() {
	d := m.session.Draft()
	m.titleInput.SetValue(d.Title)
	m.authorInput.SetValue(d.AuthorName)
	m.keyInput.SetValue(d.EditKey)
	m.bodyArea.SetValue(d.Body)
}

// pullComposerInputs folds widget values back into the session. The
// author write is a no-op while editing an existing record.
func (m *appModel) pullComposerInputs() {
	m.session.SetTitle(m.titleInput.Value())
	m.session.SetAuthorName(m.authorInput.Value())
	m.session.SetBody(m.bodyArea.Value())
	m.session.SetEditKey(m.keyInput.Value())
}

func (m *appModel) setComposerFocus(f composerFocus) {
	m.focus = f
	m.titleInput.Blur()
	m.authorInput.Blur()
	m.keyInput.Blur()
	m.bodyArea.Blur()
	switch f {
	case focusTitle:
		m.titleInput.Focus()
	case focusAuthor:
		m.authorInput.Focus()
	case focusBody:
		m.bodyArea.Focus()
	case focusEditKey:
		m.keyInput.Focus()
	}
}

func (m *appModel) nextComposerFocus() composerFocus {
	next := focusTitle
	switch m.focus {
	case focusTitle:
		next = focusAuthor
	case focusAuthor:
		next = focusBody
	case focusBody:
		next = focusEditKey
	}
	// The author field is frozen once a record exists; skip over it.
	if next == focusAuthor && m.session.Draft().Editing() {
		next = focusBody
	}
	return next
}

func (m *appModel) prevComposerFocus() composerFocus {
	prev := focusBody
	switch m.focus {
	case focusTitle:
		prev = focusEditKey
	case focusAuthor:
		prev = focusTitle
	case focusBody:
		prev = focusAuthor
	}
	if prev == focusAuthor && m.session.Draft().Editing() {
		prev = focusTitle
	}
	return prev
}

func (m *appModel) openDeleteModal(id, title string) {
	m.modal = modalConfirmDelete
	m.deleteID = id
	m.deleteTitle = title
	m.deleteErr = ""
	m.deleteBusy = false
	m.deleteKeyInpt.SetValue("")
	m.deleteKeyInpt.Focus()
}

func (m *appModel) closeDeleteModal() {
	m.modal = modalNone
	m.deleteID = ""
	m.deleteTitle = ""
	m.deleteErr = ""
	m.deleteBusy = false
	m.deleteKeyInpt.SetValue("")
	m.deleteKeyInpt.Blur()
}

func (m *appModel) setRecords(records []model.Record) {
	curID := ""
	if it, ok := m.homeList.SelectedItem().(recordItem); ok {
		curID = it.rec.ID
	}
	items := make([]list.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, recordItem{rec: rec})
	}
	m.homeList.SetItems(items)
	if curID != "" {
		for i, it := range m.homeList.Items() {
			if ri, ok := it.(recordItem); ok && ri.rec.ID == curID {
				m.homeList.Select(i)
				break
			}
		}
	}
}
