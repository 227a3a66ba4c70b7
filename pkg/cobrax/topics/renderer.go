package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for terminal display. The ext argument is
// the topic file's extension; a renderer passes through any extension it
// does not handle.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged regardless of extension.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other extensions
// pass through untouched.
type GlamourRenderer struct {
	Style string // "auto", "dark", "light", "notty", or a style file path
	Width int    // wrap width, 0 means auto
}

// NewGlamourRenderer creates a markdown renderer that adapts to the terminal.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
