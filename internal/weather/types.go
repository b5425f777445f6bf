package weather

import (
	"time"
)

// Condition is the high-level weather category as reported by the provider.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionMist         Condition = "Mist"
	ConditionFog          Condition = "Fog"
	ConditionHaze         Condition = "Haze"
)

// ForecastEntry is one 3-hour forecast record from the provider. Entries come
// ordered by timestamp ascending; the order is trusted, not re-sorted.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// Time returns the entry timestamp in the process-local zone.
func (e ForecastEntry) Time() time.Time {
	return time.Unix(e.Dt, 0)
}

// Condition returns the entry's weather category, empty when the provider
// sent no weather element.
func (e ForecastEntry) Condition() Condition {
	if len(e.Weather) == 0 {
		return ""
	}
	return Condition(e.Weather[0].Main)
}

func (e ForecastEntry) Description() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Description
}

func (e ForecastEntry) Icon() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Icon
}

// ForecastResponse is the decoded provider payload.
type ForecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// CurrentSnapshot is the derived "right now / today" view.
type CurrentSnapshot struct {
	Temp        float64
	TempMin     float64
	TempMax     float64
	Description string
	Condition   Condition
	Icon        string
	At          time.Time
}

// DayForecast is the derived aggregate for one future calendar date.
type DayForecast struct {
	Date        time.Time
	TempMin     float64
	TempMax     float64
	Description string
	Condition   Condition
	Icon        string
}

// APIError reports a transport failure or a non-200 upstream status. The
// detail is shown to the user verbatim.
type APIError struct {
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// ParseError reports a malformed or structurally unexpected upstream payload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Ungültige API-Antwort"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
