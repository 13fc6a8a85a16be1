package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// markdownCache keeps one glamour renderer per wrap width so View does not
// rebuild them on every frame.
type markdownCache struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{renderers: make(map[int]*glamour.TermRenderer)}
}

func (c *markdownCache) renderer(wrap int) (*glamour.TermRenderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.renderers[wrap]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	c.renderers[wrap] = r
	return r, nil
}

// render renders md for the terminal, wrapped to width. The raw text is
// returned if rendering fails.
func (c *markdownCache) render(md string, width int) string {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := c.renderer(wrap)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
