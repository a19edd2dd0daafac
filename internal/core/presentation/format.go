// Package presentation derives the strings and view models the dashboard
// renders from normalized itineraries.
package presentation

import (
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata" // Europe/Vienna must resolve on minimal images

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// Vienna is the zone all clock times are shown in.
var Vienna = mustLoad("Europe/Vienna")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

const defaultColor = "#667eea"

var colors = map[domain.TransportType]string{
	domain.TypeSubway:   "#e74c3c",
	domain.TypeTram:     "#e67e22",
	domain.TypeBus:      "#9b59b6",
	domain.TypeSuburban: "#3498db",
	domain.TypeRegional: "#27ae60",
	domain.TypeNational: "#2c3e50",
	domain.TypeWalking:  "#95a5a6",
}

var icons = map[domain.StationType]string{
	domain.StationSubway:   "🚇",
	domain.StationTram:     "🚊",
	domain.StationBus:      "🚌",
	domain.StationSuburban: "🚈",
	domain.StationNational: "🚄",
	domain.StationRegional: "🚆",
	domain.StationGeneric:  "🚉",
}

// FormatClock renders t as HH:MM in Vienna local time.
func FormatClock(t time.Time) string {
	return t.In(Vienna).Format("15:04")
}

// FormatDuration renders a minute count as "1h 5min" or "25min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dmin", m)
}

// SwitchLabel describes the number of changes. Negative counts come from
// journeys without transit legs and read as direct.
func SwitchLabel(switches int) string {
	switch {
	case switches <= 0:
		return "Direkte Verbindung"
	case switches == 1:
		return "1 Umstieg"
	default:
		return fmt.Sprintf("%d Umstiege", switches)
	}
}

// DelayText is empty unless the delay is known and positive.
func DelayText(delay *int) string {
	if delay == nil || *delay <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d min Verspätung", *delay)
}

// Color returns the badge color of a transport type.
func Color(t domain.TransportType) string {
	if c, ok := colors[t]; ok {
		return c
	}
	return defaultColor
}

// StationIcon returns the autocomplete icon of a station type.
func StationIcon(t domain.StationType) string {
	if i, ok := icons[t]; ok {
		return i
	}
	return icons[domain.StationGeneric]
}

// DeepLink points at the provider's own journey view for a station pair.
func DeepLink(base, from, to string, when time.Time) string {
	local := when.In(Vienna)
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("date", local.Format("2006-01-02"))
	q.Set("time", local.Format("15:04"))
	return base + "?" + q.Encode()
}
