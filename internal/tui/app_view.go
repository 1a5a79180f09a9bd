package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/draft"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}

	var body string
	switch m.view {
	case viewHome:
		body = m.viewHome()
	case viewReader:
		body = m.viewReader()
	case viewComposer:
		body = m.viewComposer()
	}

	if m.modal == modalConfirmDelete {
		return m.viewDeleteModal()
	}
	return strings.Join([]string{m.viewHeader(), body, m.viewFooter()}, "\n\n")
}

func (m appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Inkwell")
	crumb := ""
	switch m.view {
	case viewReader:
		crumb = "reading"
	case viewComposer:
		if m.session != nil && m.session.Draft().Editing() {
			crumb = "editing"
		} else {
			crumb = "new post"
		}
	}
	if crumb != "" {
		return title + styleMuted().Render("  ›  "+crumb)
	}
	return title
}

func (m appModel) viewFooter() string {
	if m.minibufferText != "" {
		return lipgloss.NewStyle().Foreground(colorSurfaceFg).Render(m.minibufferText)
	}
	var hints string
	switch m.view {
	case viewHome:
		hints = "enter: read  n: new  e: edit  d: delete  /: filter  r: reload  q: quit"
	case viewReader:
		hints = "↑/↓: scroll  e: edit  d: delete  esc: back  q: quit"
	case viewComposer:
		hints = "tab: next field  ctrl+s: save  ctrl+o: outline  ctrl+r: polish  ctrl+t: suggestions  ctrl+e: editor  esc: back"
		if _, ok := m.orch.Result(); ok {
			hints = "ctrl+y: apply result  esc: dismiss result  " + hints
		}
	}
	return styleMuted().Render(hints)
}

func (m appModel) viewHome() string {
	if m.loading {
		return styleMuted().Render("Loading posts…")
	}
	if m.loadErr != "" {
		return styleError().Render("Could not load posts: "+m.loadErr) + "\n" +
			styleMuted().Render("r: retry")
	}
	if len(m.homeList.Items()) == 0 {
		return styleMuted().Render("No posts yet. Press n to write the first one.")
	}
	return m.homeList.View()
}

func (m appModel) viewReader() string {
	if m.reader == nil {
		return styleMuted().Render("Loading…")
	}
	rec := *m.reader
	w := m.contentWidth()

	title := lipgloss.NewStyle().Bold(true).Width(w).Render(rec.Title)

	meta := recordMeta(rec)
	if rec.Sentiment != "" {
		meta += " · " + sentimentStyle(rec.Sentiment).Render(rec.Sentiment)
	}
	metaLine := styleMuted().Render(meta)

	var summary string
	if rec.Summary != "" && rec.Summary != rec.Body {
		summary = faintIfDark(lipgloss.NewStyle().Italic(true).Foreground(colorMuted)).
			Width(w).Render(rec.Summary)
	}

	mm := m
	mm.ensureReaderLines()
	lines := mm.readerLines
	page := mm.readerPageSize()
	top := mm.readerTop
	if top > len(lines) {
		top = len(lines)
	}
	end := top + page
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[top:end], "\n")

	scroll := ""
	if len(lines) > page {
		scroll = styleMuted().Render(fmt.Sprintf("— %d/%d —", end, len(lines)))
	}

	parts := []string{title, metaLine}
	if summary != "" {
		parts = append(parts, summary)
	}
	parts = append(parts, "", body)
	if scroll != "" {
		parts = append(parts, scroll)
	}
	return strings.Join(parts, "\n")
}

func (m appModel) viewComposer() string {
	if m.session == nil {
		return ""
	}
	if m.session.Phase() == draft.PhaseLoading {
		return styleMuted().Render("Loading post…")
	}
	w := m.contentWidth()
	editing := m.session.Draft().Editing()

	var b strings.Builder

	b.WriteString(m.fieldLabel("Title", focusTitle))
	b.WriteString("\n" + m.titleInput.View() + "\n")
	b.WriteString(m.fieldError("title"))

	if editing {
		b.WriteString(m.fieldLabel("Author", focusAuthor))
		b.WriteString("\n" + styleMuted().Render(m.authorInput.Value()+"  (fixed)") + "\n")
	} else {
		b.WriteString(m.fieldLabel("Author", focusAuthor))
		b.WriteString("\n" + m.authorInput.View() + "\n")
		b.WriteString(m.fieldError("authorName"))
	}

	b.WriteString(m.fieldLabel("Content (HTML)", focusBody))
	b.WriteString("\n" + m.bodyArea.View() + "\n")
	b.WriteString(m.fieldError("body"))

	b.WriteString(m.fieldLabel("Edit key", focusEditKey))
	b.WriteString("\n" + m.keyInput.View() + "\n")
	b.WriteString(m.fieldError("editKey"))

	if m.submitErr != "" {
		b.WriteString("\n" + styleError().Render(m.submitErr) + "\n")
	}
	if m.session.Phase() == draft.PhaseSubmitting {
		b.WriteString("\n" + styleMuted().Render("Saving…") + "\n")
	}

	if panel := m.viewAssistPanel(w); panel != "" {
		b.WriteString("\n" + panel)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) fieldLabel(name string, f composerFocus) string {
	st := styleMuted()
	if m.focus == f {
		st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	}
	return st.Render(name)
}

func (m appModel) fieldError(field string) string {
	if msg, ok := m.fieldErrs[field]; ok {
		return styleError().Render(msg) + "\n"
	}
	return ""
}

// viewAssistPanel renders the single assist slot: a progress line while
// a request is in flight, the rendered result once one is accepted.
func (m appModel) viewAssistPanel(width int) string {
	if m.assistBusy {
		return styleMuted().Render("Generating " + m.assistKind.String() + "…")
	}
	r, ok := m.orch.Result()
	if !ok {
		return ""
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Padding(0, 1).
		Render("AI " + r.Kind.String())
	body := renderMarkdown(r.Text, width-4)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
	hint := styleMuted().Render("ctrl+y: apply  esc: dismiss")
	return strings.Join([]string{header, box, hint}, "\n")
}

func (m appModel) viewDeleteModal() string {
	w := 48
	if w > m.width-4 {
		w = m.width - 4
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(w).
		Padding(0, 1).
		Render("Delete post")

	name := m.deleteTitle
	if name == "" {
		name = "this post"
	}
	lines := []string{
		"Delete \"" + name + "\"? This cannot be undone.",
		"",
		"Edit key: " + m.deleteKeyInpt.View(),
	}
	if m.deleteBusy {
		lines = append(lines, "", styleMuted().Render("Deleting…"))
	}
	if m.deleteErr != "" {
		lines = append(lines, "", styleError().Render(m.deleteErr))
	}
	lines = append(lines, "", styleMuted().Render("enter: delete  esc: cancel"))

	body := lipgloss.NewStyle().
		Width(w).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	box := lipgloss.JoinVertical(lipgloss.Left, title, body)
	boxed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(box)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
