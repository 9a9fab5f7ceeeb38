package render

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
)

// Previewer renders a draft to HTML for the live preview pane, memoizing by
// draft content so repeated polls of an unchanged draft cost nothing.
type Previewer struct {
	md    goldmark.Markdown
	cache *lru.Cache[string, string]
}

func NewPreviewer(cacheSize int) (*Previewer, error) {
	if cacheSize <= 0 {
		cacheSize = 64
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("preview cache: %w", err)
	}
	return &Previewer{
		md:    goldmark.New(),
		cache: cache,
	}, nil
}

// HTML converts markdown-flavored draft text to HTML.
func (p *Previewer) HTML(draft string) (string, error) {
	key := fmt.Sprintf("%x", sha256.Sum256([]byte(draft)))
	if html, ok := p.cache.Get(key); ok {
		return html, nil
	}

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(draft), &buf); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	html := buf.String()
	p.cache.Add(key, html)
	return html, nil
}
