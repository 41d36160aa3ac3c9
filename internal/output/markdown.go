package output

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders content for a terminal. Any renderer error returns
// the content unchanged.
func RenderMarkdown(content string, width int) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
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

// Preview writes a settings document to w, styled on a terminal and raw
// otherwise so it can be redirected into a file.
func Preview(w io.Writer, content string) {
	if writerIsTTY(w) && IsColorEnabled() {
		io.WriteString(w, RenderMarkdown(content, 80))
		return
	}
	io.WriteString(w, content)
}
