package tui

import (
	"os"
	"os/exec"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

func externalEditorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openExternalEditorForBody hands the draft body to $VISUAL/$EDITOR via
// a temp file. The TUI suspends until the editor exits.
func (m *appModel) openExternalEditorForBody() (tea.Cmd, error) {
	args := splitShellWords(externalEditorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "inkwell-body-*.html")
	if err != nil {
		return nil, err
	}
	path := f.Name()

	if _, err := f.WriteString(m.bodyArea.Value()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	_ = f.Close()

	m.externalEditorPath = path
	m.externalEditorBefore = m.bodyArea.Value()

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) tea.Cmd {
	path := m.externalEditorPath
	before := m.externalEditorBefore

	m.externalEditorPath = ""
	m.externalEditorBefore = ""
	defer func() { _ = os.Remove(path) }()

	if strings.TrimSpace(path) == "" {
		return nil
	}
	if msg.err != nil {
		return m.setMinibuffer("Editor failed: " + msg.err.Error())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return m.setMinibuffer("Editor read failed: " + err.Error())
	}

	after := string(b)
	m.bodyArea.SetValue(after)
	m.pullComposerInputs()

	if strings.TrimSpace(after) == strings.TrimSpace(before) {
		return m.setMinibuffer("No changes from " + externalEditorName())
	}
	return m.setMinibuffer("Updated from " + externalEditorName())
}

// splitShellWords splits a shell-like command string into argv,
// handling single quotes, double quotes, and backslash escaping
// (outside single quotes).
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		if r == '\\' && !inSingle {
			escaped = true
			continue
		}
		if r == '\'' && !inDouble {
			inSingle = !inSingle
			continue
		}
		if r == '"' && !inSingle {
			inDouble = !inDouble
			continue
		}
		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}
		cur = append(cur, r)
	}

	flush()
	return out
}
