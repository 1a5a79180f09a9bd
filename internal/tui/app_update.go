package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/draft"
	"inkwell/internal/sanitize"
)

func (m appModel) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resize()
		return m, nil

	case recordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = friendlyError(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.setRecords(msg.records)
		return m, nil

	case recordLoadedMsg:
		if msg.err != nil {
			m.view = viewHome
			return m.showMinibuffer(friendlyError(msg.err))
		}
		rec := msg.rec
		m.reader = &rec
		m.readerID = rec.ID
		m.readerTop = 0
		m.readerLines = nil
		return m, nil

	case editLoadedMsg:
		// The session is gone if the composer was abandoned while the
		// fetch was in flight; the late response changes nothing.
		if m.session == nil {
			return m, nil
		}
		if msg.err != nil {
			m.view = viewHome
			m.session = nil
			return m.showMinibuffer(friendlyError(msg.err))
		}
		if err := m.session.Hydrate(msg.rec); err != nil {
			m.view = viewHome
			m.session = nil
			return m.showMinibuffer(err.Error())
		}
		m.syncComposerInputs()
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case deleteDoneMsg:
		m.deleteBusy = false
		if msg.err != nil {
			// The modal stays open so the key can be corrected.
			m.deleteErr = friendlyError(msg.err)
			return m, nil
		}
		m.closeDeleteModal()
		if m.view == viewReader && m.readerID == msg.id {
			m.view = viewHome
			m.reader = nil
		}
		mm, cmd := m.showMinibuffer("Post deleted")
		return mm, tea.Batch(cmd, mm.loadRecordsCmd())

	case assistDoneMsg:
		return m.handleAssistDone(msg)

	case externalEditorDoneMsg:
		return m, m.applyExternalEditorResult(msg)

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal == modalConfirmDelete {
			return m.updateDeleteModal(msg)
		}
		switch m.view {
		case viewHome:
			return m.updateHome(msg)
		case viewReader:
			return m.updateReader(msg)
		case viewComposer:
			return m.updateComposer(msg)
		}
	}
	return m, nil
}

func (m appModel) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is active, all keys belong to it.
	if !m.homeList.SettingFilter() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadRecordsCmd()
		case "n":
			m.openComposer("")
			return m, nil
		case "enter":
			if it, ok := m.homeList.SelectedItem().(recordItem); ok {
				m.view = viewReader
				m.reader = nil
				m.readerID = it.rec.ID
				return m, m.loadRecordCmd(it.rec.ID)
			}
			return m, nil
		case "e":
			if it, ok := m.homeList.SelectedItem().(recordItem); ok {
				m.openComposer(it.rec.ID)
				return m, m.loadForEditCmd(it.rec.ID)
			}
			return m, nil
		case "d":
			if it, ok := m.homeList.SelectedItem().(recordItem); ok {
				m.openDeleteModal(it.rec.ID, it.rec.Title)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

func (m appModel) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewHome
		m.reader = nil
		return m, m.loadRecordsCmd()
	case "e":
		if m.reader != nil {
			m.openComposer(m.reader.ID)
			return m, m.loadForEditCmd(m.reader.ID)
		}
	case "d":
		if m.reader != nil {
			m.openDeleteModal(m.reader.ID, m.reader.Title)
		}
	case "up", "k":
		m.scrollReader(-1)
	case "down", "j":
		m.scrollReader(1)
	case "pgup":
		m.scrollReader(-m.readerPageSize())
	case "pgdown", " ":
		m.scrollReader(m.readerPageSize())
	case "home", "g":
		m.readerTop = 0
	}
	return m, nil
}

func (m appModel) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// First escape dismisses an assist result; the second leaves.
		if _, ok := m.orch.Result(); ok {
			m.orch.Clear()
			return m, nil
		}
		m.view = viewHome
		m.session = nil
		m.loading = true
		return m, m.loadRecordsCmd()
	case "tab":
		m.pullComposerInputs()
		m.setComposerFocus(m.nextComposerFocus())
		return m, nil
	case "shift+tab":
		m.pullComposerInputs()
		m.setComposerFocus(m.prevComposerFocus())
		return m, nil
	case "ctrl+s":
		return m.beginSubmit()
	case "ctrl+o":
		return m.beginAssist(assist.KindOutline)
	case "ctrl+r":
		return m.beginAssist(assist.KindPolish)
	case "ctrl+t":
		return m.beginAssist(assist.KindSuggestions)
	case "ctrl+y":
		return m.applyAssistResult()
	case "ctrl+e":
		cmd, err := m.openExternalEditorForBody()
		if err != nil {
			return m.showMinibuffer("Editor failed: " + err.Error())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusAuthor:
		m.authorInput, cmd = m.authorInput.Update(msg)
	case focusBody:
		m.bodyArea, cmd = m.bodyArea.Update(msg)
	case focusEditKey:
		m.keyInput, cmd = m.keyInput.Update(msg)
	}
	m.pullComposerInputs()
	return m, cmd
}

func (m appModel) updateDeleteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleteBusy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeDeleteModal()
		return m, nil
	case "enter":
		key := m.deleteKeyInpt.Value()
		if key == "" {
			m.deleteErr = "Enter the edit key"
			return m, nil
		}
		m.deleteBusy = true
		m.deleteErr = ""
		return m, m.deleteCmd(m.deleteID, key)
	}
	var cmd tea.Cmd
	m.deleteKeyInpt, cmd = m.deleteKeyInpt.Update(msg)
	return m, cmd
}

func (m appModel) beginSubmit() (tea.Model, tea.Cmd) {
	if m.session == nil || m.session.Phase() != draft.PhaseEditing {
		return m, nil
	}
	m.pullComposerInputs()
	m.fieldErrs = nil
	m.submitErr = ""

	if err := m.session.BeginSubmit(); err != nil {
		var ve client.ValidationError
		if errors.As(err, &ve) {
			m.fieldErrs = ve.Fields
			return m, nil
		}
		m.submitErr = err.Error()
		return m, nil
	}
	d := m.session.Draft()
	return m, m.submitCmd(d.RecordID, m.session.Fields())
}

func (m appModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if msg.err != nil {
		m.session.SubmitFailed()
		var ve client.ValidationError
		if errors.As(msg.err, &ve) {
			m.fieldErrs = ve.Fields
			return m, nil
		}
		m.submitErr = friendlyError(msg.err)
		return m, nil
	}
	m.session.SubmitSucceeded()
	m.session = nil
	m.view = viewReader
	m.reader = nil
	m.readerID = msg.rec.ID
	mm, cmd := m.showMinibuffer("Saved")
	return mm, tea.Batch(cmd, mm.loadRecordCmd(msg.rec.ID))
}

func (m appModel) beginAssist(kind assist.Kind) (tea.Model, tea.Cmd) {
	m.pullComposerInputs()
	d := m.session.Draft()
	seq, err := m.orch.Begin(kind, d.Title, d.Body)
	if err != nil {
		return m.showMinibuffer(err.Error())
	}
	m.assistBusy = true
	m.assistKind = kind
	m.assistSeq = seq
	return m, m.assistCmd(seq, kind, assist.Input(kind, d.Title, d.Body))
}

func (m appModel) handleAssistDone(msg assistDoneMsg) (tea.Model, tea.Cmd) {
	// A superseded request's response changes nothing, success or not.
	if m.orch == nil || msg.seq != m.assistSeq {
		return m, nil
	}
	m.assistBusy = false
	if msg.err != nil {
		return m.showMinibuffer(msg.kind.String() + " failed: " + friendlyError(msg.err))
	}
	m.orch.Accept(msg.seq, msg.kind, msg.text)
	return m, nil
}

func (m appModel) applyAssistResult() (tea.Model, tea.Cmd) {
	r, ok := m.orch.Result()
	if !ok {
		return m, nil
	}
	m.pullComposerInputs()
	if err := m.session.MergeAssist(r); err != nil {
		return m.showMinibuffer(err.Error())
	}
	m.orch.Clear()
	m.syncComposerInputs()
	m.setComposerFocus(focusBody)
	return m, nil
}

func (m appModel) showMinibuffer(text string) (appModel, tea.Cmd) {
	cmd := m.setMinibuffer(text)
	return m, cmd
}

func (m *appModel) setMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	return clearMinibufferCmd(m.minibufferSeq)
}

func (m *appModel) scrollReader(delta int) {
	m.ensureReaderLines()
	m.readerTop += delta
	max := len(m.readerLines) - m.readerPageSize()
	if m.readerTop > max {
		m.readerTop = max
	}
	if m.readerTop < 0 {
		m.readerTop = 0
	}
}

func (m *appModel) readerPageSize() int {
	h := m.height - 8
	if h < 4 {
		h = 4
	}
	return h
}

// ensureReaderLines lays out the sanitized body at the current width.
func (m *appModel) ensureReaderLines() {
	if m.reader == nil {
		m.readerLines = nil
		return
	}
	w := m.contentWidth()
	if m.readerLines != nil && m.readerViewW == w {
		return
	}
	rendered := renderHTML(sanitize.Clean(m.reader.Body), w)
	m.readerLines = splitLines(rendered)
	m.readerViewW = w
	m.readerTop = 0
}

const maxContentW = 96

func (m *appModel) contentWidth() int {
	w := m.width - 4
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *appModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width - 2
	if w < 40 {
		w = 40
	}
	m.homeList.SetSize(w, h)

	bodyW := m.contentWidth()
	m.titleInput.Width = bodyW - 10
	m.bodyArea.SetWidth(bodyW)
	bodyH := m.height - 16
	if bodyH < 6 {
		bodyH = 6
	}
	m.bodyArea.SetHeight(bodyH)
	m.readerLines = nil
}
