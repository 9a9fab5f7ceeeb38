package render

import (
	"strings"
	"testing"
)

func TestParseDraft_HeadingLevelAndSuffixStripping(t *testing.T) {
	nodes := ParseDraft("### Scope [generate by AI]")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	n := nodes[0]
	if n.Kind != KindHeading {
		t.Fatalf("expected heading node, got kind %d", n.Kind)
	}
	if n.Level != 3 {
		t.Errorf("expected level 3, got %d", n.Level)
	}
	if len(n.Runs) != 1 || n.Runs[0].Text != "Scope" {
		t.Errorf("expected label %q, got runs %v", "Scope", n.Runs)
	}
}

func TestParseDraft_HeadingSuffixVariants(t *testing.T) {
	cases := []struct {
		line  string
		label string
	}{
		{"# Introduction [from clause library]", "Introduction"},
		{"## Pricing", "Pricing"},
		{"#### Terms [generate by AI] ", "Terms"},
		{"# Odd [brackets] in middle [suffix]", "Odd [brackets] in middle"},
	}
	for _, c := range cases {
		n := ParseDraft(c.line)[0]
		if n.Kind != KindHeading {
			t.Errorf("%q: expected heading, got kind %d", c.line, n.Kind)
			continue
		}
		var sb strings.Builder
		for _, r := range n.Runs {
			sb.WriteString(r.Text)
		}
		if sb.String() != c.label {
			t.Errorf("%q: expected label %q, got %q", c.line, c.label, sb.String())
		}
	}
}

func TestParseDraft_SevenHashesIsParagraph(t *testing.T) {
	n := ParseDraft("####### Not a heading")[0]
	if n.Kind != KindParagraph {
		t.Errorf("7 hashes must not be a heading, got kind %d", n.Kind)
	}
}

func TestParseDraft_HashWithoutSpaceIsParagraph(t *testing.T) {
	n := ParseDraft("#hashtag")[0]
	if n.Kind != KindParagraph {
		t.Errorf("missing space after # must not be a heading, got kind %d", n.Kind)
	}
}

func TestParseDraft_BulletIndentLevels(t *testing.T) {
	cases := []struct {
		line   string
		indent int
		text   string
	}{
		{"- Top point", 0, "Top point"},
		{"* Star bullet", 0, "Star bullet"},
		{"   - Sub point", 1, "Sub point"},
		{"\t- Tab sub point", 1, "Tab sub point"},
		{"      - Sub-sub point", 2, "Sub-sub point"},
		{"\t\t- Double tab point", 2, "Double tab point"},
	}
	for _, c := range cases {
		n := ParseDraft(c.line)[0]
		if n.Kind != KindBullet {
			t.Errorf("%q: expected bullet, got kind %d", c.line, n.Kind)
			continue
		}
		if n.Indent != c.indent {
			t.Errorf("%q: expected indent %d, got %d", c.line, c.indent, n.Indent)
		}
		if len(n.Runs) != 1 || n.Runs[0].Text != c.text {
			t.Errorf("%q: expected text %q, got runs %v", c.line, c.text, n.Runs)
		}
	}
}

func TestParseDraft_BlankLinesYieldEmptyNodes(t *testing.T) {
	nodes := ParseDraft("First paragraph.\n\nSecond paragraph.")
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].Kind != KindParagraph || nodes[1].Kind != KindEmpty || nodes[2].Kind != KindParagraph {
		t.Errorf("expected paragraph/empty/paragraph, got %d/%d/%d",
			nodes[0].Kind, nodes[1].Kind, nodes[2].Kind)
	}
}

func TestParseDraft_WhitespaceOnlyLineIsEmpty(t *testing.T) {
	n := ParseDraft("   \t  ")[0]
	if n.Kind != KindEmpty {
		t.Errorf("whitespace-only line must be empty node, got kind %d", n.Kind)
	}
}

func TestSplitRuns_BoldSpans(t *testing.T) {
	runs := SplitRuns("Provide **24/7** support")
	want := []Run{
		{Text: "Provide ", Bold: false},
		{Text: "24/7", Bold: true},
		{Text: " support", Bold: false},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %v", len(want), len(runs), runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run[%d]: expected %+v, got %+v", i, want[i], runs[i])
		}
	}
}

func TestSplitRuns_LeadingAndTrailingDelimiters(t *testing.T) {
	runs := SplitRuns("**all bold**")
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %v", len(runs), runs)
	}
	if runs[0].Text != "all bold" || !runs[0].Bold {
		t.Errorf("expected bold run %q, got %+v", "all bold", runs[0])
	}
}

func TestSplitRuns_NoDelimiter(t *testing.T) {
	runs := SplitRuns("plain text")
	if len(runs) != 1 || runs[0].Bold {
		t.Fatalf("expected single plain run, got %v", runs)
	}
}

func TestParseDraft_ParagraphIsTrimmed(t *testing.T) {
	n := ParseDraft("  Deliver within 30 days.  ")[0]
	if n.Kind != KindParagraph {
		t.Fatalf("expected paragraph, got kind %d", n.Kind)
	}
	if n.Runs[0].Text != "Deliver within 30 days." {
		t.Errorf("paragraph text must be trimmed, got %q", n.Runs[0].Text)
	}
}

func TestParseDraft_BoldInsideBulletAndHeading(t *testing.T) {
	nodes := ParseDraft("## Support **SLA**\n- Respond within **4 hours**")
	h := nodes[0]
	if h.Kind != KindHeading || len(h.Runs) != 2 || !h.Runs[1].Bold || h.Runs[1].Text != "SLA" {
		t.Errorf("heading runs wrong: %v", h.Runs)
	}
	b := nodes[1]
	if b.Kind != KindBullet || len(b.Runs) != 2 || !b.Runs[1].Bold || b.Runs[1].Text != "4 hours" {
		t.Errorf("bullet runs wrong: %v", b.Runs)
	}
}
