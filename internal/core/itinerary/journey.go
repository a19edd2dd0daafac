package itinerary

import (
	"math"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// Stats counts what Normalize discarded.
type Stats struct {
	Journeys        int
	SkippedJourneys int
	SkippedLegs     int
}

// Normalize builds an itinerary for every journey with at least one usable
// leg, keeping provider order.
func Normalize(journeys []domain.RawJourney) ([]domain.Itinerary, Stats) {
	stats := Stats{Journeys: len(journeys)}
	out := make([]domain.Itinerary, 0, len(journeys))
	for _, j := range journeys {
		it, skipped, ok := build(j)
		stats.SkippedLegs += skipped
		if !ok {
			stats.SkippedJourneys++
			continue
		}
		out = append(out, it)
	}
	return out, stats
}

// Build normalizes a single journey. It reports false when no leg of the
// journey yields a segment.
func Build(j domain.RawJourney) (domain.Itinerary, bool) {
	it, _, ok := build(j)
	return it, ok
}

func build(j domain.RawJourney) (domain.Itinerary, int, bool) {
	segments := make([]domain.Segment, 0, len(j.Legs))
	skipped := 0
	for _, leg := range j.Legs {
		seg, ok := MapLeg(leg)
		if !ok {
			skipped++
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return domain.Itinerary{}, skipped, false
	}
	fillTimes(segments)

	dep := segments[0].From.ActualTime
	arr := segments[len(segments)-1].To.ActualTime
	return domain.Itinerary{
		Departure:       dep,
		Arrival:         arr,
		DurationMinutes: DurationMinutes(dep, arr),
		SwitchCount:     SwitchCount(j.Legs),
		Segments:        segments,
	}, skipped, true
}

// fillTimes gives segments the provider left without a time the nearest
// neighbouring one: a missing arrival takes the next departure, a missing
// departure the previous arrival, and a leg with one known end uses it for
// both.
func fillTimes(segments []domain.Segment) {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i].To.ActualTime.IsZero() && i+1 < len(segments) {
			segments[i].To.ActualTime = segments[i+1].From.ActualTime
		}
	}
	for i := range segments {
		if segments[i].From.ActualTime.IsZero() && i > 0 {
			segments[i].From.ActualTime = segments[i-1].To.ActualTime
		}
	}
	for i := range segments {
		s := &segments[i]
		switch {
		case s.From.ActualTime.IsZero():
			s.From.ActualTime = s.To.ActualTime
		case s.To.ActualTime.IsZero():
			s.To.ActualTime = s.From.ActualTime
		}
	}
}

// DurationMinutes is the whole-minute span between departure and arrival,
// never negative.
func DurationMinutes(dep, arr time.Time) int {
	m := int(math.Round(float64(arr.Sub(dep).Milliseconds()) / 60000))
	if m < 0 {
		return 0
	}
	return m
}

// SwitchCount is the number of line-carrying non-walking legs minus one. These
// are exactly the legs that map to transit segments. A journey with no such
// leg yields -1; clamping is left to the presentation.
func SwitchCount(legs []domain.RawLeg) int {
	n := 0
	for _, leg := range legs {
		if !leg.Walking && leg.Line != nil {
			n++
		}
	}
	return n - 1
}
