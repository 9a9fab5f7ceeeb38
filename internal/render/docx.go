package render

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

var headingStyles = [...]string{"Heading1", "Heading2", "Heading3", "Heading4", "Heading5", "Heading6"}

var bulletStyles = [...]string{"ListBullet", "ListBullet2", "ListBullet3"}

// WriteDocx builds a Word document from export nodes and writes the binary
// artifact to w. Heading levels map to native heading styles, bullets to the
// bulleted-list styles at their indent level, bold runs to bold character
// runs. Any packing failure aborts the export with no partial output offered.
func WriteDocx(nodes []Node, w io.Writer) error {
	doc := docx.New().WithDefaultTheme()

	for _, node := range nodes {
		para := doc.AddParagraph()
		switch node.Kind {
		case KindEmpty:
			// One empty paragraph per blank line.
			continue
		case KindHeading:
			level := node.Level
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}
			para.Style(headingStyles[level-1])
		case KindBullet:
			indent := node.Indent
			if indent < 0 {
				indent = 0
			}
			if indent > 2 {
				indent = 2
			}
			para.Style(bulletStyles[indent])
		}
		for _, run := range node.Runs {
			r := para.AddText(run.Text)
			if run.Bold {
				r.Bold()
			}
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
