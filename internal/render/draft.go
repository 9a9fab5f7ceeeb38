package render

import (
	"regexp"
	"strings"
)

// NodeKind distinguishes the structural units built from a draft line.
type NodeKind int

const (
	KindEmpty NodeKind = iota
	KindHeading
	KindBullet
	KindParagraph
)

// Run is a contiguous styled span within a node. Runs are owned by their node
// and never shared.
type Run struct {
	Text string
	Bold bool
}

// Node is one export-time structural unit: an empty paragraph, a heading
// (level 1-6), a bullet item (indent 0-2), or a plain paragraph. Nodes are
// transient — built during export, discarded once the artifact is written.
type Node struct {
	Kind   NodeKind
	Level  int // heading level, 1-6
	Indent int // bullet indent, 0-2
	Runs   []Run
}

// Trailing provenance suffix on headings, e.g. "[from clause library]" or
// "[generate by AI]". Display-only: stripped from the exported heading label,
// never from the stored draft.
var headingSuffixRe = regexp.MustCompile(`\s*\[[^\]]*\]\s*$`)

// ParseDraft converts a markdown-flavored draft into export nodes, one node
// per line. Lines are classified independently of their neighbors.
func ParseDraft(draft string) []Node {
	lines := strings.Split(draft, "\n")
	nodes := make([]Node, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, parseLine(line))
	}
	return nodes
}

func parseLine(line string) Node {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Node{Kind: KindEmpty}
	}

	if level, rest, ok := headingLine(trimmed); ok {
		label := strings.TrimSpace(headingSuffixRe.ReplaceAllString(rest, ""))
		return Node{Kind: KindHeading, Level: level, Runs: SplitRuns(label)}
	}

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return Node{
			Kind:   KindBullet,
			Indent: bulletIndent(line),
			Runs:   SplitRuns(trimmed[2:]),
		}
	}

	return Node{Kind: KindParagraph, Runs: SplitRuns(trimmed)}
}

// headingLine reports whether the trimmed line is a heading: 1-6 '#' followed
// by a space. Seven or more hashes is not a heading.
func headingLine(trimmed string) (level int, rest string, ok bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n < 1 || n > 6 || n >= len(trimmed) || trimmed[n] != ' ' {
		return 0, "", false
	}
	return n, trimmed[n+1:], true
}

// bulletIndent derives the indent level from the untrimmed line's leading
// whitespace: two tabs or six spaces for level 2, one tab or three spaces for
// level 1.
func bulletIndent(line string) int {
	tabs, spaces := 0, 0
	for _, r := range line {
		if r == '\t' {
			tabs++
		} else if r == ' ' {
			spaces++
		} else {
			break
		}
	}
	switch {
	case tabs >= 2 || spaces >= 6:
		return 2
	case tabs >= 1 || spaces >= 3:
		return 1
	default:
		return 0
	}
}

// SplitRuns splits text on the "**" delimiter: odd split positions are bold.
// Empty fragments (leading/trailing delimiters) produce no run.
func SplitRuns(text string) []Run {
	parts := strings.Split(text, "**")
	runs := make([]Run, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		runs = append(runs, Run{Text: part, Bold: i%2 == 1})
	}
	return runs
}
