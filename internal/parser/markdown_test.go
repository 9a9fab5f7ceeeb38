package parser

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_HeadingsAndBody(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.
`
	p := &MarkdownExtractor{}
	got, err := p.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Title", "Intro text.", "Section A", "Section A content."} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
}

func TestMarkdownExtractor_StripsMarkup(t *testing.T) {
	p := &MarkdownExtractor{}
	got, err := p.Extract(strings.NewReader("Some **bold** and *italic* text."), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "**") {
		t.Errorf("expected markup stripped, got %q", got)
	}
	if !strings.Contains(got, "bold") || !strings.Contains(got, "italic") {
		t.Errorf("expected inline text preserved, got %q", got)
	}
}

func TestMarkdownExtractor_EmitsEachParagraphOnce(t *testing.T) {
	p := &MarkdownExtractor{}
	got, err := p.Extract(strings.NewReader("Some **bold** and *italic* text."), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Some bold and italic text." {
		t.Errorf("got %q, want the paragraph text exactly once with markup stripped", got)
	}
}

func TestMarkdownExtractor_ListsAndCode(t *testing.T) {
	input := `Requirements:

- first item
- second **key** item

` + "```\nraw code line\n```\n"
	p := &MarkdownExtractor{}
	got, err := p.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"first item", "second key item", "raw code line"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
	if strings.Count(got, "first item") != 1 {
		t.Errorf("list item duplicated in %q", got)
	}
	if strings.Contains(got, "**") || strings.Contains(got, "- ") {
		t.Errorf("expected markup stripped, got %q", got)
	}
}

func TestHTMLExtractor_SkipsScriptAndNav(t *testing.T) {
	input := `<html><head><title>T</title></head><body>
<nav>menu items</nav>
<h1>Requirements</h1>
<p>Deliver by June.</p>
<script>alert("x")</script>
</body></html>`
	p := &HTMLExtractor{}
	got, err := p.Extract(strings.NewReader(input), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Requirements") || !strings.Contains(got, "Deliver by June.") {
		t.Errorf("expected headings and paragraphs, got %q", got)
	}
	if strings.Contains(got, "menu items") || strings.Contains(got, "alert") {
		t.Errorf("expected nav/script skipped, got %q", got)
	}
}
