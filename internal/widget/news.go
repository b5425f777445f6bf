package widget

import (
	"fmt"
	"html/template"
	"strings"
)

// NewsWidget embeds a fixed external news page in a frame. Purely templated.
type NewsWidget struct {
	feedURL       string
	defaultHeight string
}

func NewNewsWidget(feedURL, defaultHeight string) *NewsWidget {
	if defaultHeight == "" {
		defaultHeight = "1000px"
	}
	return &NewsWidget{
		feedURL:       feedURL,
		defaultHeight: defaultHeight,
	}
}

// Render emits the news frame with the given height, falling back to the
// configured default when the height is empty.
func (n *NewsWidget) Render(height string) template.HTML {
	if strings.TrimSpace(height) == "" {
		height = n.defaultHeight
	}
	return template.HTML(fmt.Sprintf(
		`<iframe src="%s" width="100%%" height="%s" style="border:none;" title="News Feed"></iframe>`,
		template.HTMLEscapeString(n.feedURL),
		template.HTMLEscapeString(height),
	))
}
