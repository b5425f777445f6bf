package weather

import (
	"html/template"
	"strings"
)

// GlyphKey selects which icon to render for a weather condition.
type GlyphKey string

const (
	GlyphClearDay   GlyphKey = "clear-day"
	GlyphClearNight GlyphKey = "clear-night"
	GlyphCloudy     GlyphKey = "cloudy"
	GlyphRainy      GlyphKey = "rainy"
	GlyphSnowy      GlyphKey = "snowy"
	GlyphStormy     GlyphKey = "stormy"
	GlyphFoggy      GlyphKey = "foggy"
	GlyphDefault    GlyphKey = "default"
)

// MapGlyph maps a weather category and provider icon code to a glyph key.
// The provider marks night variants with an "n" in the icon code. Total:
// unrecognized categories map to the default glyph.
func MapGlyph(cond Condition, icon string) GlyphKey {
	isNight := strings.Contains(icon, "n")

	switch cond {
	case ConditionClear:
		if isNight {
			return GlyphClearNight
		}
		return GlyphClearDay
	case ConditionClouds:
		return GlyphCloudy
	case ConditionRain, ConditionDrizzle:
		return GlyphRainy
	case ConditionSnow:
		return GlyphSnowy
	case ConditionThunderstorm:
		return GlyphStormy
	case ConditionMist, ConditionFog, ConditionHaze:
		return GlyphFoggy
	default:
		return GlyphDefault
	}
}

// Compact inline SVGs sized for a 300px sidebar.
var glyphSVG = map[GlyphKey]template.HTML{
	GlyphClearDay:   `<svg viewBox="0 0 24 24" fill="currentColor" stroke="currentColor" stroke-width="0.5"><circle cx="12" cy="12" r="4"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/></svg>`,
	GlyphClearNight: `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/></svg>`,
	GlyphCloudy:     `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M19.35 10.04A7.49 7.49 0 0 0 12 4C9.11 4 6.6 5.64 5.35 8.04A5.994 5.994 0 0 0 0 14c0 3.31 2.69 6 6 6h13c2.76 0 5-2.24 5-5 0-2.64-2.05-4.78-4.65-4.96z"/></svg>`,
	GlyphRainy:      `<svg viewBox="0 0 24 24" fill="currentColor" stroke="currentColor" stroke-width="1.5"><path fill="currentColor" stroke="none" d="M19.35 10.04A7.49 7.49 0 0 0 12 4C9.11 4 6.6 5.64 5.35 8.04A5.994 5.994 0 0 0 0 14c0 3.31 2.69 6 6 6h13c2.76 0 5-2.24 5-5 0-2.64-2.05-4.78-4.65-4.96z"/><line x1="8" y1="19" x2="8" y2="21"/><line x1="11" y1="19" x2="11" y2="21"/><line x1="14" y1="19" x2="14" y2="21"/></svg>`,
	GlyphSnowy:      `<svg viewBox="0 0 24 24" fill="currentColor" stroke="currentColor" stroke-width="1"><path fill="currentColor" stroke="none" d="M19.35 10.04A7.49 7.49 0 0 0 12 4C9.11 4 6.6 5.64 5.35 8.04A5.994 5.994 0 0 0 0 14c0 3.31 2.69 6 6 6h13c2.76 0 5-2.24 5-5 0-2.64-2.05-4.78-4.65-4.96z"/><circle cx="8" cy="19" r="0.5"/><circle cx="11" cy="19" r="0.5"/><circle cx="14" cy="19" r="0.5"/></svg>`,
	GlyphStormy:     `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M19.35 10.04A7.49 7.49 0 0 0 12 4C9.11 4 6.6 5.64 5.35 8.04A5.994 5.994 0 0 0 0 14c0 3.31 2.69 6 6 6h13c2.76 0 5-2.24 5-5 0-2.64-2.05-4.78-4.65-4.96z"/><path fill="#FFD700" d="M14 13h-3l2 5v-3h2l-2-5v3z"/></svg>`,
	GlyphFoggy:      `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round"><line x1="3" y1="9" x2="21" y2="9"/><line x1="3" y1="13" x2="21" y2="13"/><line x1="3" y1="17" x2="21" y2="17"/></svg>`,
	GlyphDefault:    `<svg viewBox="0 0 24 24" fill="currentColor"><path d="M19.35 10.04A7.49 7.49 0 0 0 12 4C9.11 4 6.6 5.64 5.35 8.04A5.994 5.994 0 0 0 0 14c0 3.31 2.69 6 6 6h13c2.76 0 5-2.24 5-5 0-2.64-2.05-4.78-4.65-4.96z"/></svg>`,
}

// GlyphSVG returns the inline markup for a glyph key, falling back to the
// default glyph for unknown keys.
func GlyphSVG(key GlyphKey) template.HTML {
	if svg, ok := glyphSVG[key]; ok {
		return svg
	}
	return glyphSVG[GlyphDefault]
}
