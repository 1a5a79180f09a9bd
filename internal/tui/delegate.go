package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"inkwell/internal/model"
)

type recordItem struct {
	rec model.Record
}

func (i recordItem) FilterValue() string {
	return strings.TrimSpace(i.rec.Title)
}

// recordDelegate renders one record as a title line plus a muted meta
// line.
type recordDelegate struct {
	title    lipgloss.Style
	titleSel lipgloss.Style
	meta     lipgloss.Style
	metaSel  lipgloss.Style
}

func newRecordDelegate() recordDelegate {
	return recordDelegate{
		title:    lipgloss.NewStyle().Bold(true),
		titleSel: lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg),
		meta:     styleMuted(),
		metaSel:  lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg),
	}
}

func (d recordDelegate) Height() int  { return 2 }
func (d recordDelegate) Spacing() int { return 1 }
func (d recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(recordItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 8 {
		return
	}

	titleStyle, metaStyle := d.title, d.meta
	if index == m.Index() {
		titleStyle, metaStyle = d.titleSel, d.metaSel
	}

	title := strings.TrimSpace(it.rec.Title)
	if title == "" {
		title = "(untitled)"
	}
	meta := recordMeta(it.rec)

	fmt.Fprint(w, titleStyle.Render(padLine(title, contentW)))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, metaStyle.Render(padLine(meta, contentW)))
}

func recordMeta(rec model.Record) string {
	parts := []string{"by " + rec.AuthorName}
	if rec.ReadingTime != "" {
		parts = append(parts, rec.ReadingTime)
	}
	parts = append(parts, fmt.Sprintf("%d views", rec.Views))
	if !rec.CreatedAt.IsZero() {
		parts = append(parts, rec.CreatedAt.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

// padLine forces a line to exactly width columns, ANSI-aware.
func padLine(s string, width int) string {
	w := xansi.StringWidth(s)
	if w > width {
		if width <= 1 {
			return xansi.Cut(s, 0, width)
		}
		return xansi.Cut(s, 0, width-1) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}
