package presentation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/presentation"
)

func ptr[T any](v T) *T { return &v }

// 07:30 UTC is 08:30 in Vienna during winter time.
var t0 = time.Date(2025, 1, 20, 7, 30, 0, 0, time.UTC)

func TestFormatClock(t *testing.T) {
	if got := presentation.FormatClock(t0); got != "08:30" {
		t.Errorf("expected 08:30, got %s", got)
	}
	summer := time.Date(2025, 7, 1, 7, 30, 0, 0, time.UTC)
	if got := presentation.FormatClock(summer); got != "09:30" {
		t.Errorf("expected 09:30, got %s", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:   "0min",
		25:  "25min",
		60:  "1h 0min",
		65:  "1h 5min",
		134: "2h 14min",
		-3:  "0min",
	}
	for in, want := range tests {
		if got := presentation.FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestSwitchLabel(t *testing.T) {
	tests := map[int]string{
		-1: "Direkte Verbindung",
		0:  "Direkte Verbindung",
		1:  "1 Umstieg",
		3:  "3 Umstiege",
	}
	for in, want := range tests {
		if got := presentation.SwitchLabel(in); got != want {
			t.Errorf("SwitchLabel(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestDelayText(t *testing.T) {
	if got := presentation.DelayText(nil); got != "" {
		t.Errorf("expected empty for absent delay, got %q", got)
	}
	if got := presentation.DelayText(ptr(0)); got != "" {
		t.Errorf("expected empty for zero delay, got %q", got)
	}
	if got := presentation.DelayText(ptr(4)); got != "+4 min Verspätung" {
		t.Errorf("unexpected delay text %q", got)
	}
}

func TestColorAndIcon(t *testing.T) {
	if got := presentation.Color(domain.TypeSubway); got != "#e74c3c" {
		t.Errorf("expected subway red, got %s", got)
	}
	if got := presentation.Color(domain.TypeUnknownTrain); got != "#667eea" {
		t.Errorf("expected default color, got %s", got)
	}
	if got := presentation.StationIcon(domain.StationTram); got != "🚊" {
		t.Errorf("expected tram icon, got %s", got)
	}
	if got := presentation.StationIcon("Fähre"); got != "🚉" {
		t.Errorf("expected generic icon, got %s", got)
	}
}

func TestDeepLink(t *testing.T) {
	got := presentation.DeepLink("https://live.oebb.at/journey-view", "1290401", "8100002", t0)
	for _, part := range []string{"from=1290401", "to=8100002", "date=2025-01-20", "time=08%3A30"} {
		if !strings.Contains(got, part) {
			t.Errorf("expected %q in %s", part, got)
		}
	}
	if !strings.HasPrefix(got, "https://live.oebb.at/journey-view?") {
		t.Errorf("unexpected base in %s", got)
	}
}

func TestTime_StrikesPlannedOnlyWhenDelayed(t *testing.T) {
	planned := t0
	actual := t0.Add(3 * time.Minute)

	delayed := presentation.Time(domain.Endpoint{ActualTime: actual, PlannedTime: &planned, DelayMinutes: ptr(3)})
	if !delayed.Delayed || delayed.Planned != "08:30" || delayed.Actual != "08:33" {
		t.Errorf("unexpected delayed view %+v", delayed)
	}

	onTime := presentation.Time(domain.Endpoint{ActualTime: planned, PlannedTime: &planned, DelayMinutes: ptr(0)})
	if onTime.Delayed || onTime.Planned != "" {
		t.Errorf("on-time endpoint must not strike planned time: %+v", onTime)
	}

	noPlan := presentation.Time(domain.Endpoint{ActualTime: actual, DelayMinutes: ptr(3)})
	if noPlan.Delayed || noPlan.Planned != "" {
		t.Errorf("endpoint without planned time must show actual only: %+v", noPlan)
	}
}

func TestSegment_Train(t *testing.T) {
	seg := domain.Segment{
		Mode:     domain.ModeTransit,
		Category: domain.Category{Name: "REX", Type: domain.TypeRegional, LineNumber: "REX 7"},
		From:     domain.Endpoint{Name: "Wien Hbf", ActualTime: t0, DelayMinutes: ptr(2)},
		To:       domain.Endpoint{Name: "Wiener Neustadt Hbf", ActualTime: t0.Add(40 * time.Minute)},
		Transit: &domain.TransitInfo{
			Direction: "Payerbach-Reichenau",
			FromLabel: domain.Label{Kind: domain.LabelPlatform, Value: "9"},
			ToLabel:   domain.Label{Kind: domain.LabelPlatform, Value: "3"},
		},
	}
	v := presentation.Segment(seg)
	if v.Badge != "REX" || v.Color != "#27ae60" {
		t.Errorf("unexpected badge %+v", v)
	}
	if v.From.Info != "Gleis 9" || v.To.Info != "Gleis 3" {
		t.Errorf("unexpected platform info %q / %q", v.From.Info, v.To.Info)
	}
	if v.Direction != "Richtung Payerbach-Reichenau" {
		t.Errorf("unexpected direction %q", v.Direction)
	}
	if v.From.Delay != "+2 min Verspätung" {
		t.Errorf("unexpected delay %q", v.From.Delay)
	}
}

func TestSegment_WienerLinien(t *testing.T) {
	seg := domain.Segment{
		Mode:     domain.ModeTransit,
		Category: domain.Category{Name: "U-Bahn U1", Type: domain.TypeSubway},
		From:     domain.Endpoint{Name: "Stephansplatz", ActualTime: t0},
		To:       domain.Endpoint{Name: "Praterstern", ActualTime: t0.Add(4 * time.Minute)},
		Transit: &domain.TransitInfo{
			Direction: "Leopoldau",
			FromLabel: domain.Label{Kind: domain.LabelDirection, Value: "Leopoldau"},
			ToLabel:   domain.Label{Kind: domain.LabelNone},
		},
	}
	v := presentation.Segment(seg)
	if v.From.Info != "Richtung Leopoldau" || v.To.Info != "" {
		t.Errorf("unexpected info %q / %q", v.From.Info, v.To.Info)
	}
	if v.Direction != "" {
		t.Errorf("direction must not be repeated, got %q", v.Direction)
	}
}

func TestSegment_Walking(t *testing.T) {
	seg := domain.Segment{
		Mode:     domain.ModeWalking,
		Category: domain.Category{Name: "Fußweg", Type: domain.TypeWalking},
		From:     domain.Endpoint{Name: "A", ActualTime: t0},
		To:       domain.Endpoint{Name: "B", ActualTime: t0.Add(5 * time.Minute)},
		Walking:  &domain.WalkingInfo{DurationMinutes: ptr(5)},
	}
	v := presentation.Segment(seg)
	if !v.Walking || v.Walk != "Fußweg (5 min)" {
		t.Errorf("unexpected walking view %+v", v)
	}

	seg.Walking.DurationMinutes = nil
	if v := presentation.Segment(seg); v.Walk != "Fußweg" {
		t.Errorf("expected bare label without duration, got %q", v.Walk)
	}
}

func TestItinerary(t *testing.T) {
	it := domain.Itinerary{
		Departure:       t0,
		Arrival:         t0.Add(65 * time.Minute),
		DurationMinutes: 65,
		SwitchCount:     -1,
		Segments: []domain.Segment{{
			Mode:     domain.ModeWalking,
			Category: domain.Category{Name: "Fußweg", Type: domain.TypeWalking},
			From:     domain.Endpoint{ActualTime: t0},
			To:       domain.Endpoint{ActualTime: t0.Add(65 * time.Minute)},
			Walking:  &domain.WalkingInfo{},
		}},
	}
	v := presentation.Itinerary(it)
	if v.Departure != "08:30" || v.Arrival != "09:35" {
		t.Errorf("unexpected times %s-%s", v.Departure, v.Arrival)
	}
	if v.Duration != "1h 5min" || v.Switches != "Direkte Verbindung" {
		t.Errorf("unexpected summary %+v", v)
	}
	if len(v.Segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(v.Segments))
	}
}
