package tui

import (
	"inkwell/internal/assist"
	"inkwell/internal/model"
)

type view int

const (
	viewHome view = iota
	viewReader
	viewComposer
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
)

type composerFocus int

const (
	focusTitle composerFocus = iota
	focusAuthor
	focusBody
	focusEditKey
)

// Messages delivered back into the event loop by commands.

type recordsLoadedMsg struct {
	records []model.Record
	err     error
}

// recordLoadedMsg carries a full record for the reader view.
type recordLoadedMsg struct {
	rec model.Record
	err error
}

// editLoadedMsg carries a record fetched to hydrate an edit session.
type editLoadedMsg struct {
	rec model.Record
	err error
}

type submitDoneMsg struct {
	rec model.Record
	err error
}

type deleteDoneMsg struct {
	id  string
	err error
}

// assistDoneMsg reports a finished AI request. seq identifies the
// request; stale responses lose the sequence check and are dropped.
type assistDoneMsg struct {
	seq  uint64
	kind assist.Kind
	text string
	err  error
}

type minibufferClearMsg struct{ seq int }

type externalEditorDoneMsg struct{ err error }
