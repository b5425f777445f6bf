package weather

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DeriveCurrent builds the "today" snapshot from the raw entry list, or nil
// when the list is empty.
//
// The instantaneous temperature, description, condition, icon and timestamp
// all come from the first entry, even when its date is not today (the feed
// may start slightly in the past). Today's min/max pool over every entry
// sharing the current process-local calendar date; when no entry falls on
// today the first entry's own extremes are used.
func DeriveCurrent(resp *ForecastResponse, now time.Time) *CurrentSnapshot {
	if resp == nil || len(resp.List) == 0 {
		return nil
	}

	first := resp.List[0]
	today := now.Format(dateLayout)

	snap := &CurrentSnapshot{
		Temp:        first.Main.Temp,
		TempMin:     first.Main.TempMin,
		TempMax:     first.Main.TempMax,
		Description: first.Description(),
		Condition:   first.Condition(),
		Icon:        first.Icon(),
		At:          first.Time(),
	}

	pooled := false
	for _, entry := range resp.List {
		if entry.Time().Format(dateLayout) != today {
			continue
		}
		lo, hi := entry.Main.TempMin, entry.Main.TempMax
		if !pooled {
			snap.TempMin, snap.TempMax = lo, hi
			pooled = true
			continue
		}
		if lo < snap.TempMin {
			snap.TempMin = lo
		}
		if hi > snap.TempMax {
			snap.TempMax = hi
		}
	}

	return snap
}

// DeriveNextDays groups entries into at most days future calendar dates, in
// the order the dates are first encountered (ascending, since entries are
// time-ordered).
//
// A new date is opened with the first entry's values only while fewer than
// days dates are open; later entries for an already-open date keep folding
// min/max even after the cap, but never touch description, condition or icon.
// Entries for dates beyond the cap are silently ignored.
func DeriveNextDays(resp *ForecastResponse, days int, now time.Time) []DayForecast {
	if resp == nil || len(resp.List) == 0 {
		return nil
	}

	today := now.Format(dateLayout)
	open := make(map[string]int)
	var grouped []DayForecast

	for _, entry := range resp.List {
		date := entry.Time().Format(dateLayout)

		if idx, ok := open[date]; ok {
			if entry.Main.TempMin < grouped[idx].TempMin {
				grouped[idx].TempMin = entry.Main.TempMin
			}
			if entry.Main.TempMax > grouped[idx].TempMax {
				grouped[idx].TempMax = entry.Main.TempMax
			}
			continue
		}

		if date > today && len(grouped) < days {
			open[date] = len(grouped)
			grouped = append(grouped, DayForecast{
				Date:        entry.Time(),
				TempMin:     entry.Main.TempMin,
				TempMax:     entry.Main.TempMax,
				Description: entry.Description(),
				Condition:   entry.Condition(),
				Icon:        entry.Icon(),
			})
		}
	}

	return grouped
}

// ResolveLocationLabel picks the displayed location name: the per-render
// override wins, then the configured name, then the provider's city name,
// then a fixed fallback.
func ResolveLocationLabel(resp *ForecastResponse, override, configured string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if s := strings.TrimSpace(configured); s != "" {
		return s
	}
	if resp != nil && resp.City.Name != "" {
		return resp.City.Name
	}
	return "Unbekannter Ort"
}
