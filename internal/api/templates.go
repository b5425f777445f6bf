package api

// Widget stylesheet, served only to pages that actually embed a widget.
const widgetStylesheet = `/* Site Widgets - optimiert für 300px Sidebar */
.sw-weather-widget {
    max-width: 300px;
    padding: 16px;
    border-radius: 8px;
    background: #f7f9fb;
    color: #1f2d3d;
    font-family: inherit;
}
.sw-location {
    font-size: 0.8em;
    letter-spacing: 0.12em;
    font-weight: 600;
}
.sw-current-main {
    display: flex;
    align-items: center;
    gap: 12px;
    margin: 8px 0;
}
.sw-icon-main svg {
    width: 56px;
    height: 56px;
}
.sw-temp-main {
    font-size: 2.4em;
    font-weight: 300;
}
.sw-description {
    margin-bottom: 6px;
}
.sw-meta {
    display: flex;
    justify-content: space-between;
    font-size: 0.85em;
    color: #5a6b7b;
}
.sw-weather-forecast {
    display: flex;
    gap: 8px;
    margin-top: 12px;
    padding-top: 12px;
    border-top: 1px solid #e0e6ec;
}
.sw-forecast-day {
    flex: 1;
    text-align: center;
    font-size: 0.8em;
}
.sw-day-icon svg {
    width: 28px;
    height: 28px;
}
.sw-footer {
    margin-top: 10px;
    text-align: right;
    color: #8a99a8;
}
.sw-error {
    max-width: 300px;
    padding: 10px 12px;
    border-radius: 6px;
    background: #fdecea;
    color: #8a1f11;
    font-size: 0.9em;
}
`

const settingsPage = `{{define "settings.html"}}<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="utf-8">
    <title>Site Widgets - Einstellungen</title>
    <style>
        body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #1f2d3d; }
        th { text-align: left; padding: 8px 16px 8px 0; vertical-align: top; }
        td { padding: 8px 0; }
        input { padding: 4px 6px; }
        .notice { padding: 10px 14px; border-radius: 4px; margin-bottom: 1em; }
        .notice-warning { background: #fff4d6; border-left: 4px solid #dba617; }
        .notice-success { background: #e6f4ea; border-left: 4px solid #1e8e3e; }
        .description { font-size: 0.85em; color: #5a6b7b; }
    </style>
</head>
<body>
    <h1>Site Widgets Einstellungen</h1>

{{- if not .HasAPIKey}}
    <div class="notice notice-warning">
        <strong>Kein API-Key konfiguriert!</strong><br>
        Das Wetter-Widget benötigt einen gültigen OpenWeatherMap API-Key.<br>
        <a href="https://openweathermap.org/api" target="_blank">Hier kostenlos registrieren</a>
    </div>
{{- end}}
{{- if .CacheCleared}}
    <div class="notice notice-success">
        <strong>Cache erfolgreich gelöscht!</strong> Die Daten werden beim nächsten Aufruf neu geladen.
    </div>
{{- end}}
{{- if .Saved}}
    <div class="notice notice-success">
        <strong>Einstellungen erfolgreich gespeichert.</strong>
    </div>
{{- end}}

    <h2>Wetter-Widget Einstellungen</h2>
    <form method="post" action="/admin/settings">
        <table>
            <tr>
                <th><label for="api_key">OpenWeatherMap API-Key *</label></th>
                <td>
                    <input type="password" id="api_key" name="api_key" value="{{.Settings.DisplayAPIKey}}" size="32" placeholder="Ihren API-Key hier eintragen">
                    <p class="description">
                        <a href="https://openweathermap.org/api" target="_blank">Kostenlosen API-Key erhalten</a>
{{- if .HasAPIKey}}
                        <br><span style="color: green;">✓ API-Key ist gesetzt</span>
{{- end}}
                    </p>
                </td>
            </tr>
            <tr>
                <th><label for="latitude">Breitengrad *</label></th>
                <td>
                    <input type="text" id="latitude" name="latitude" value="{{.Settings.Latitude}}" placeholder="z.B. 53.822">
                    <p class="description">Zwischen -90 und 90</p>
                </td>
            </tr>
            <tr>
                <th><label for="longitude">Längengrad *</label></th>
                <td>
                    <input type="text" id="longitude" name="longitude" value="{{.Settings.Longitude}}" placeholder="z.B. 12.788">
                    <p class="description">Zwischen -180 und 180</p>
                </td>
            </tr>
            <tr>
                <th><label for="location_name">Ortsname (optional)</label></th>
                <td>
                    <input type="text" id="location_name" name="location_name" value="{{.Settings.LocationName}}">
                </td>
            </tr>
            <tr>
                <th><label for="forecast_days">Anzahl Vorschau-Tage</label></th>
                <td>
                    <input type="number" id="forecast_days" name="forecast_days" value="{{.Settings.ForecastDays}}" min="1" max="5">
                    <p class="description">1-5 Tage (Standard: 3)</p>
                </td>
            </tr>
            <tr>
                <th><label for="cache_duration">Cache-Dauer (Minuten)</label></th>
                <td>
                    <input type="number" id="cache_duration" name="cache_duration" value="{{.Settings.CacheDuration}}" min="5" max="1440" step="5">
                    <p class="description">5-1440 Minuten (Standard: 30)</p>
                </td>
            </tr>
        </table>
        <p><button type="submit">Einstellungen speichern</button></p>
    </form>

    <hr>
    <h2>Embed-Tags</h2>
    <p><code>[site_weather]</code> oder <code>[site_weather city="Neukalen"]</code></p>
    <p><code>[news_feed]</code> oder <code>[news_feed height="800px"]</code></p>

    <form method="post" action="/admin/cache/clear">
        <button type="submit">Cache jetzt löschen</button>
    </form>
</body>
</html>
{{end}}`

const previewPage = `{{define "preview.html"}}<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="utf-8">
    <title>Site Widgets - Vorschau</title>
{{- if .IncludeStylesheet}}
    <link rel="stylesheet" href="/static/widgets.css">
{{- end}}
</head>
<body>
{{.Content}}
</body>
</html>
{{end}}`
