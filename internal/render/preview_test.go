package render

import (
	"strings"
	"testing"
)

func TestPreviewer_RendersHTML(t *testing.T) {
	p, err := NewPreviewer(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html, err := p.HTML("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("expected h1 in output, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected strong span in output, got %q", html)
	}
}

func TestPreviewer_CacheHitReturnsSameHTML(t *testing.T) {
	p, err := NewPreviewer(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft := "- item one\n- item two"
	first, err := p.HTML(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.HTML(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("repeated render of the same draft must return identical HTML")
	}
}
