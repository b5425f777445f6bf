package widget

import (
	"context"
	"regexp"
)

// Embed tags consumed by page content: [site_weather], optionally with a
// city attribute, and [news_feed], optionally with a height attribute.
var (
	weatherTag = regexp.MustCompile(`\[site_weather(?:\s+city="([^"]*)")?\s*\]`)
	newsTag    = regexp.MustCompile(`\[news_feed(?:\s+height="([^"]*)")?\s*\]`)
)

// TagExpander substitutes embed tags in page content with widget markup.
type TagExpander struct {
	weather *WeatherWidget
	news    *NewsWidget
}

func NewTagExpander(weather *WeatherWidget, news *NewsWidget) *TagExpander {
	return &TagExpander{
		weather: weather,
		news:    news,
	}
}

// ContainsTag reports whether the content uses any embed tag. Pages without
// one skip the widget stylesheet.
func ContainsTag(content string) bool {
	return weatherTag.MatchString(content) || newsTag.MatchString(content)
}

// Expand replaces every embed tag in content with the rendered widget.
func (e *TagExpander) Expand(ctx context.Context, content string) string {
	content = weatherTag.ReplaceAllStringFunc(content, func(tag string) string {
		city := ""
		if m := weatherTag.FindStringSubmatch(tag); len(m) > 1 {
			city = m[1]
		}
		return string(e.weather.Render(ctx, city))
	})

	content = newsTag.ReplaceAllStringFunc(content, func(tag string) string {
		height := ""
		if m := newsTag.FindStringSubmatch(tag); len(m) > 1 {
			height = m[1]
		}
		return string(e.news.Render(height))
	})

	return content
}
