package outline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Direction selects which neighbor a section swaps with.
type Direction string

const (
	DirUp   Direction = "up"
	DirDown Direction = "down"
)

// Outline is an ordered list of section strings forming a tender's table of
// contents. A section is a small text blob whose first line usually carries a
// numeric prefix ("2. Scope of Work") and whose later lines carry deeper
// prefixes ("2.1 Deliverables"). Only the top-level digit is kept consistent
// with position; deeper numbering is the user's responsibility.
type Outline struct {
	sections []string
}

// New builds an Outline from an initial section list. The slice is copied.
func New(sections []string) *Outline {
	o := &Outline{sections: make([]string, len(sections))}
	copy(o.sections, sections)
	return o
}

// Sections returns a copy of the section list in display order.
func (o *Outline) Sections() []string {
	out := make([]string, len(o.sections))
	copy(out, o.sections)
	return out
}

// Len returns the number of sections.
func (o *Outline) Len() int {
	return len(o.sections)
}

// Append adds a skeleton section numbered for its new position. Append never
// renumbers: the skeleton is already consistent by construction.
func (o *Outline) Append() string {
	n := len(o.sections) + 1
	s := fmt.Sprintf("%d. New Section Title\n%d.1 Sub-section\n%d.1.1 Detailed requirement", n, n, n)
	o.sections = append(o.sections, s)
	return s
}

// Delete removes the section at index and renumbers the remainder.
// An out-of-range index is a caller contract violation and fails fast.
func (o *Outline) Delete(index int) error {
	if index < 0 || index >= len(o.sections) {
		return fmt.Errorf("delete: index %d out of range [0,%d)", index, len(o.sections))
	}
	o.sections = append(o.sections[:index], o.sections[index+1:]...)
	o.renumber()
	return nil
}

// Move swaps the section at index with its neighbor in the given direction,
// then renumbers. Moving the first section up or the last section down is a
// silent no-op (the boundary, not an error).
func (o *Outline) Move(index int, dir Direction) error {
	if index < 0 || index >= len(o.sections) {
		return fmt.Errorf("move: index %d out of range [0,%d)", index, len(o.sections))
	}
	switch dir {
	case DirUp:
		if index == 0 {
			return nil
		}
		o.sections[index-1], o.sections[index] = o.sections[index], o.sections[index-1]
	case DirDown:
		if index == len(o.sections)-1 {
			return nil
		}
		o.sections[index], o.sections[index+1] = o.sections[index+1], o.sections[index]
	default:
		return fmt.Errorf("move: unknown direction %q", dir)
	}
	o.renumber()
	return nil
}

// Edit replaces the section text verbatim. Manual edits are trusted as-is and
// never trigger renumbering, so a user may freely break numbering while typing.
func (o *Outline) Edit(index int, text string) error {
	if index < 0 || index >= len(o.sections) {
		return fmt.Errorf("edit: index %d out of range [0,%d)", index, len(o.sections))
	}
	o.sections[index] = text
	return nil
}

var leadNumberRe = regexp.MustCompile(`^\s*(\d+)\.`)

// renumber rewrites each section's top-level number to match its 1-based
// position. Sections whose first line has no leading "N." prefix pass through
// untouched. The rewrite is a text patch: every line of the section starting
// with the old top-level number gets that number (and only that number)
// substituted, leading whitespace preserved. Deeper components of sub-line
// numbers are never re-derived, so "2.1" under a section moved to position 1
// becomes "1.1", but a sub-line already out of step with its parent stays out
// of step.
func (o *Outline) renumber() {
	for i, section := range o.sections {
		first := section
		if nl := strings.IndexByte(section, '\n'); nl >= 0 {
			first = section[:nl]
		}
		m := leadNumberRe.FindStringSubmatch(first)
		if m == nil {
			continue
		}
		current, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		expected := i + 1
		if current == expected {
			continue
		}
		re := regexp.MustCompile(`(?m)^(\s*)` + strconv.Itoa(current) + `\.`)
		o.sections[i] = re.ReplaceAllString(section, "${1}"+strconv.Itoa(expected)+".")
	}
}
