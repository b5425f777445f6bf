package widget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"math"
	"strings"
	"time"

	"site-widgets/internal/settings"
	"site-widgets/internal/weather"
)

// ForecastSource supplies raw forecast data. Satisfied by *weather.Gateway.
type ForecastSource interface {
	Forecast(ctx context.Context) (*weather.ForecastResponse, error)
}

// WeatherWidget composes settings, forecast data and icon glyphs into the
// embeddable weather markup. Every failure path still produces valid markup;
// no error escapes Render.
type WeatherWidget struct {
	settings *settings.Store
	source   ForecastSource
	now      func() time.Time
}

func NewWeatherWidget(settings *settings.Store, source ForecastSource) *WeatherWidget {
	return &WeatherWidget{
		settings: settings,
		source:   source,
		now:      time.Now,
	}
}

var weatherTmpl = template.Must(template.New("weather").Funcs(template.FuncMap{
	"round":     func(v float64) int { return int(math.Round(v)) },
	"glyph":     func(cond weather.Condition, icon string) template.HTML { return weather.GlyphSVG(weather.MapGlyph(cond, icon)) },
	"upper":     strings.ToUpper,
	"ucfirst":   upperFirst,
	"shortDate": shortDate,
	"dayName":   dayName,
	"clock":     func(t time.Time) string { return t.Format("15:04") },
}).Parse(`<div class="sw-weather-widget">
    <div class="sw-weather-current">
        <div class="sw-location">{{upper .Location}}</div>
        <div class="sw-current-main">
            <div class="sw-icon-main">{{glyph .Current.Condition .Current.Icon}}</div>
            <div class="sw-temp-main">{{round .Current.Temp}}<span>°</span></div>
        </div>
        <div class="sw-description">{{ucfirst .Current.Description}}</div>
        <div class="sw-meta">
            <span class="sw-date">{{shortDate .Current.At}}</span>
            <span class="sw-minmax">{{round .Current.TempMin}}° / {{round .Current.TempMax}}°</span>
        </div>
    </div>
{{- if .Days}}
    <div class="sw-weather-forecast">
{{- range .Days}}
        <div class="sw-forecast-day">
            <div class="sw-day-name">{{dayName .Date}}</div>
            <div class="sw-day-icon">{{glyph .Condition .Icon}}</div>
            <div class="sw-day-temp">{{round .TempMin}}°/{{round .TempMax}}°</div>
        </div>
{{- end}}
    </div>
{{- end}}
    <div class="sw-footer">
        <small><a href="https://openweathermap.org/" target="_blank" rel="noopener">OpenWeatherMap</a> • {{clock .RenderedAt}}</small>
    </div>
</div>
`))

type weatherView struct {
	Location   string
	Current    *weather.CurrentSnapshot
	Days       []weather.DayForecast
	RenderedAt time.Time
}

// Render produces the weather widget markup for an optional per-render city
// override.
func (w *WeatherWidget) Render(ctx context.Context, city string) template.HTML {
	cfg := w.settings.Current()

	if cfg.APIKey == "" {
		return errorMarkup("Bitte konfigurieren Sie den OpenWeatherMap API-Key in den Einstellungen.")
	}

	resp, err := w.source.Forecast(ctx)
	if err != nil {
		var parseErr *weather.ParseError
		if errors.As(err, &parseErr) {
			return errorMarkup("Fehler: Ungültige API-Antwort")
		}
		return errorMarkup("Fehler: " + err.Error())
	}

	now := w.now()
	current := weather.DeriveCurrent(resp, now)
	if current == nil {
		return errorMarkup("Keine Wetterdaten verfügbar.")
	}

	view := weatherView{
		Location:   weather.ResolveLocationLabel(resp, city, cfg.LocationName),
		Current:    current,
		Days:       weather.DeriveNextDays(resp, cfg.ForecastDays, now),
		RenderedAt: now,
	}

	var buf bytes.Buffer
	if err := weatherTmpl.Execute(&buf, view); err != nil {
		log.Printf("weather widget template failed: %v", err)
		return errorMarkup("Fehler: Widget konnte nicht gerendert werden")
	}
	return template.HTML(buf.String())
}

func errorMarkup(msg string) template.HTML {
	return template.HTML(fmt.Sprintf(`<div class="sw-error">%s</div>`, template.HTMLEscapeString(msg)))
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

var germanDays = map[time.Weekday]string{
	time.Monday:    "Mo",
	time.Tuesday:   "Di",
	time.Wednesday: "Mi",
	time.Thursday:  "Do",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
	time.Sunday:    "So",
}

var germanMonths = [...]string{
	"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
	"Jul", "Aug", "Sep", "Okt", "Nov", "Dez",
}

func dayName(t time.Time) string {
	return germanDays[t.Weekday()]
}

// shortDate renders "Di, 2. Sep" style dates.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%s, %d. %s", germanDays[t.Weekday()], t.Day(), germanMonths[t.Month()-1])
}
