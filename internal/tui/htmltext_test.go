package tui

import (
	"strings"
	"testing"
)

func TestRenderHTMLBasicStructure(t *testing.T) {
	src := `<h1>Welcome</h1><p>First paragraph.</p><p>Second paragraph.</p>`
	out := renderHTML(src, 60)

	for _, want := range []string{"Welcome", "First paragraph.", "Second paragraph."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Paragraphs are separate blocks.
	if !strings.Contains(out, "\n\n") {
		t.Fatalf("expected blank line between blocks:\n%s", out)
	}
}

func TestRenderHTMLLists(t *testing.T) {
	src := `<ul><li>alpha</li><li>beta</li></ul><ol><li>one</li><li>two</li></ol>`
	out := renderHTML(src, 60)

	for _, want := range []string{"• alpha", "• beta", "1. one", "2. two"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHTMLBlockquote(t *testing.T) {
	out := renderHTML(`<blockquote>quoted words</blockquote>`, 60)
	if !strings.Contains(out, "│ ") {
		t.Fatalf("blockquote lines not prefixed:\n%s", out)
	}
	if !strings.Contains(out, "quoted words") {
		t.Fatalf("blockquote text missing:\n%s", out)
	}
}

func TestRenderHTMLPreservesPreformattedText(t *testing.T) {
	out := renderHTML("<pre><code>line one\n  line two</code></pre>", 60)
	if !strings.Contains(out, "line one") || !strings.Contains(out, "  line two") {
		t.Fatalf("preformatted content mangled:\n%s", out)
	}
}

func TestRenderHTMLSkipsScriptAndStyle(t *testing.T) {
	src := `<p>before</p><script>alert("xss")</script><style>p{color:red}</style><p>after</p>`
	out := renderHTML(src, 60)

	if strings.Contains(out, "alert") || strings.Contains(out, "color:red") {
		t.Fatalf("script/style content leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Fatalf("surrounding text lost:\n%s", out)
	}
}

func TestRenderHTMLWrapsLongParagraphs(t *testing.T) {
	long := strings.Repeat("word ", 40)
	out := renderHTML("<p>"+long+"</p>", 30)

	for _, ln := range strings.Split(out, "\n") {
		if len(ln) > 40 {
			t.Fatalf("line exceeds wrap width: %q", ln)
		}
	}
}

func TestRenderHTMLToleratesMalformedMarkup(t *testing.T) {
	out := renderHTML(`<p>unclosed <b>bold and <i>nested`, 60)
	for _, want := range []string{"unclosed", "bold and", "nested"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHTMLImageAltText(t *testing.T) {
	out := renderHTML(`<p>see <img src="x.png" alt="a diagram"> here</p>`, 60)
	if !strings.Contains(out, "[image: a diagram]") {
		t.Fatalf("image alt text not rendered:\n%s", out)
	}
}

func TestRenderHTMLCollapsesWhitespace(t *testing.T) {
	out := renderHTML("<p>spaced\n\n\t  out</p>", 60)
	if !strings.Contains(out, "spaced out") {
		t.Fatalf("whitespace not collapsed:\n%s", out)
	}
}
