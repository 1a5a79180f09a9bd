package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

// HTML-to-terminal rendering for record bodies. Input must already be
// sanitized; this renderer still skips script/style subtrees outright so
// a policy gap can never surface executable text in the reader.

type htmlRenderer struct {
	width  int
	blocks []string

	// Inline state for the block currently being built.
	cur      strings.Builder
	bold     int
	italic   int
	underln  int
	code     int
	quote    int
	listKind []string // "ul" or "ol" per nesting level
	listIdx  []int
}

// renderHTML lays out sanitized HTML as styled terminal text wrapped to
// width. Unparseable input degrades to its raw form rather than hiding
// the content.
func renderHTML(src string, width int) string {
	if width < 10 {
		width = 10
	}
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return strings.TrimSpace(src)
	}
	r := &htmlRenderer{width: width}
	r.walk(doc)
	r.flushBlock()
	return strings.TrimRight(strings.Join(r.blocks, "\n\n"), "\n")
}

func (r *htmlRenderer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			r.flushBlock()
			r.bold++
			r.walkChildren(n)
			r.bold--
			r.heading(n.Data)
			return
		case "p", "div":
			r.flushBlock()
			r.walkChildren(n)
			r.flushBlock()
			return
		case "br":
			r.cur.WriteByte('\n')
			return
		case "hr":
			r.flushBlock()
			r.blocks = append(r.blocks, styleMuted().Render(strings.Repeat("─", r.width)))
			return
		case "ul", "ol":
			r.flushBlock()
			r.listKind = append(r.listKind, n.Data)
			r.listIdx = append(r.listIdx, 0)
			r.walkChildren(n)
			r.listKind = r.listKind[:len(r.listKind)-1]
			r.listIdx = r.listIdx[:len(r.listIdx)-1]
			r.flushBlock()
			return
		case "li":
			r.flushBlock()
			r.cur.WriteString(r.bullet())
			r.walkChildren(n)
			r.flushBlock()
			return
		case "blockquote":
			r.flushBlock()
			r.quote++
			r.walkChildren(n)
			// Flush while still inside the quote so bare text nodes get
			// the prefix too.
			r.flushBlock()
			r.quote--
			return
		case "pre":
			r.flushBlock()
			r.code++
			r.walkChildren(n)
			r.code--
			r.flushPre()
			return
		case "strong", "b":
			r.bold++
			r.walkChildren(n)
			r.bold--
			return
		case "em", "i":
			r.italic++
			r.walkChildren(n)
			r.italic--
			return
		case "u":
			r.underln++
			r.walkChildren(n)
			r.underln--
			return
		case "code":
			r.code++
			r.walkChildren(n)
			r.code--
			return
		case "a":
			r.underln++
			r.walkChildren(n)
			r.underln--
			return
		case "img":
			if alt := attr(n, "alt"); alt != "" {
				r.cur.WriteString(styleMuted().Render("[image: " + alt + "]"))
			}
			return
		}
	}
	r.walkChildren(n)
}

func (r *htmlRenderer) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *htmlRenderer) text(s string) {
	// Collapse runs of whitespace outside preformatted blocks, the way
	// a browser lays out text nodes.
	if r.code == 0 {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			return
		}
		// No joining space right after a newline or a bullet/number
		// marker, which already ends in a space.
		if prev := r.cur.String(); prev != "" &&
			!strings.HasSuffix(prev, "\n") && !strings.HasSuffix(prev, " ") {
			s = " " + s
		}
	}
	r.cur.WriteString(r.inlineStyle().Render(s))
}

func (r *htmlRenderer) inlineStyle() lipgloss.Style {
	st := lipgloss.NewStyle()
	if r.bold > 0 {
		st = st.Bold(true)
	}
	if r.italic > 0 {
		st = st.Italic(true)
	}
	if r.underln > 0 {
		st = st.Underline(true).Foreground(colorAccent)
	}
	if r.code > 0 {
		st = st.Background(colorControlBg)
	}
	return st
}

func (r *htmlRenderer) bullet() string {
	depth := len(r.listKind)
	if depth == 0 {
		return "• "
	}
	indent := strings.Repeat("  ", depth-1)
	if r.listKind[depth-1] == "ol" {
		r.listIdx[depth-1]++
		return indent + strconv.Itoa(r.listIdx[depth-1]) + ". "
	}
	return indent + "• "
}

func (r *htmlRenderer) heading(tag string) {
	text := strings.TrimSpace(r.cur.String())
	r.cur.Reset()
	if text == "" {
		return
	}
	st := lipgloss.NewStyle().Bold(true).Width(r.width)
	if tag == "h1" || tag == "h2" {
		st = st.Foreground(colorAccent)
	}
	r.blocks = append(r.blocks, st.Render(text))
}

func (r *htmlRenderer) flushBlock() {
	text := strings.TrimSpace(r.cur.String())
	r.cur.Reset()
	if text == "" {
		return
	}
	if r.quote > 0 {
		wrapped := lipgloss.NewStyle().Width(r.width - 2).Render(text)
		var quoted []string
		for _, ln := range strings.Split(wrapped, "\n") {
			quoted = append(quoted, styleMuted().Render("│ ")+ln)
		}
		r.blocks = append(r.blocks, strings.Join(quoted, "\n"))
		return
	}
	r.blocks = append(r.blocks, lipgloss.NewStyle().Width(r.width).Render(text))
}

func (r *htmlRenderer) flushPre() {
	text := strings.TrimRight(r.cur.String(), "\n")
	r.cur.Reset()
	if strings.TrimSpace(text) == "" {
		return
	}
	r.blocks = append(r.blocks, lipgloss.NewStyle().
		Background(colorControlBg).
		Padding(0, 1).
		Render(text))
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
