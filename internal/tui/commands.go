package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/assist"
	"inkwell/internal/client"
	"inkwell/internal/model"
)

// Commands wrap client calls so all network work happens off the event
// loop. Each command resolves to exactly one message.

func (m appModel) loadRecordsCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		records, err := api.List(context.Background())
		return recordsLoadedMsg{records: records, err: err}
	}
}

func (m appModel) loadRecordCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		rec, err := api.Get(context.Background(), id)
		return recordLoadedMsg{rec: rec, err: err}
	}
}

func (m appModel) loadForEditCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		rec, err := api.Get(context.Background(), id)
		return editLoadedMsg{rec: rec, err: err}
	}
}

// submitCmd creates or updates depending on whether the draft targets
// an existing record.
func (m appModel) submitCmd(recordID string, fields model.Fields) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		var (
			rec model.Record
			err error
		)
		if recordID == "" {
			rec, err = api.Create(context.Background(), fields)
		} else {
			rec, err = api.Update(context.Background(), recordID, fields)
		}
		return submitDoneMsg{rec: rec, err: err}
	}
}

func (m appModel) deleteCmd(id, editKey string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		err := api.Delete(context.Background(), id, editKey)
		return deleteDoneMsg{id: id, err: err}
	}
}

// assistCmd runs one AI transformation. The sequence number travels
// with the response so late results from superseded requests can be
// recognized and dropped.
func (m appModel) assistCmd(seq uint64, kind assist.Kind, input string) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		text, err := orch.Run(context.Background(), kind, input)
		return assistDoneMsg{seq: seq, kind: kind, text: text, err: err}
	}
}

func clearMinibufferCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}

// friendlyError turns a client error into one line of feedback.
func friendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case client.IsInvalidEditKey(err):
		return "Invalid edit key"
	case client.IsNotFound(err):
		return "Post not found; it may have been deleted"
	default:
		return err.Error()
	}
}
