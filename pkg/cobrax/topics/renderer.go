package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Renderer formats topic content for display. ext is the topic file
// extension including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render implements Renderer
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour and leaves other
// formats alone
type GlamourRenderer struct {
	Width int
}

// NewGlamourRenderer creates a markdown renderer with an auto-detected style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Width: 100}
}

// Render implements Renderer. Rendering errors fall back to the raw content.
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithColorProfile(termenv.ColorProfile()),
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
