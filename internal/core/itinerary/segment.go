package itinerary

import (
	"math"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// MapLeg converts one raw leg into a segment. It reports false only for legs
// that are neither walking nor carry a line. A leg without actual or planned
// times keeps a zero ActualTime for the aggregator to fill in.
func MapLeg(leg domain.RawLeg) (domain.Segment, bool) {
	dep := firstTime(leg.Departure, leg.PlannedDeparture)
	arr := firstTime(leg.Arrival, leg.PlannedArrival)

	switch {
	case leg.Walking:
		return walkingSegment(leg, dep, arr), true
	case leg.Line != nil:
		return transitSegment(leg, dep, arr), true
	default:
		return domain.Segment{}, false
	}
}

func walkingSegment(leg domain.RawLeg, dep, arr time.Time) domain.Segment {
	info := &domain.WalkingInfo{}
	if leg.Duration != nil {
		m := roundMinutes(*leg.Duration)
		info.DurationMinutes = &m
	}
	return domain.Segment{
		Mode:     domain.ModeWalking,
		Category: domain.Category{Name: walkingName, Type: domain.TypeWalking},
		From:     domain.Endpoint{Name: stopName(leg.Origin), ActualTime: dep},
		To:       domain.Endpoint{Name: stopName(leg.Destination), ActualTime: arr},
		Walking:  info,
	}
}

func transitSegment(leg domain.RawLeg, dep, arr time.Time) domain.Segment {
	line := *leg.Line
	typ := ClassifyLine(line)

	direction := firstNonEmpty(leg.Direction, line.Direction)
	if direction == "" {
		direction = stopName(leg.Destination)
	}

	from := domain.Endpoint{
		Name:            stopName(leg.Origin),
		ActualTime:      dep,
		PlannedTime:     clone(leg.PlannedDeparture),
		DelayMinutes:    delayMinutes(leg.DepartureDelay),
		Platform:        platform(leg.DeparturePlatform, leg.Origin),
		PlannedPlatform: nonEmpty(leg.PlannedDeparturePlatform),
	}
	to := domain.Endpoint{
		Name:            stopName(leg.Destination),
		ActualTime:      arr,
		PlannedTime:     clone(leg.PlannedArrival),
		DelayMinutes:    delayMinutes(leg.ArrivalDelay),
		Platform:        platform(leg.ArrivalPlatform, leg.Destination),
		PlannedPlatform: nonEmpty(leg.PlannedArrivalPlatform),
	}

	info := &domain.TransitInfo{Direction: direction}
	if typ.IsWienerLinien() {
		// Wiener Linien departures show direction only. The arrival platform
		// is kept as data but never labelled.
		from.Platform, from.PlannedPlatform = nil, nil
		info.FromLabel = directionLabel(direction)
		info.ToLabel = domain.Label{Kind: domain.LabelNone}
	} else {
		info.FromLabel = platformLabel(from.Platform)
		if info.FromLabel.Kind == domain.LabelNone {
			info.FromLabel = directionLabel(direction)
		}
		info.ToLabel = platformLabel(to.Platform)
	}

	return domain.Segment{
		Mode:     domain.ModeTransit,
		Category: domain.Category{
			Name:       DisplayName(line),
			Type:       typ,
			LineNumber: line.Name,
		},
		From:    from,
		To:      to,
		Transit: info,
	}
}

func platformLabel(p *string) domain.Label {
	if p == nil {
		return domain.Label{Kind: domain.LabelNone}
	}
	return domain.Label{Kind: domain.LabelPlatform, Value: *p}
}

func directionLabel(direction string) domain.Label {
	if direction == "" {
		return domain.Label{Kind: domain.LabelNone}
	}
	return domain.Label{Kind: domain.LabelDirection, Value: direction}
}

// platform prefers the leg-level actual platform over the stop's own one.
func platform(actual *string, stop *domain.RawStop) *string {
	if p := nonEmpty(actual); p != nil {
		return p
	}
	if stop != nil {
		return nonEmpty(stop.Platform)
	}
	return nil
}

// delayMinutes converts a provider delay in seconds. Early running counts as
// on time; a missing field stays missing.
func delayMinutes(seconds *int) *int {
	if seconds == nil {
		return nil
	}
	m := roundMinutes(*seconds)
	if m < 0 {
		m = 0
	}
	return &m
}

func roundMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}

func stopName(s *domain.RawStop) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func firstTime(ts ...*time.Time) time.Time {
	for _, t := range ts {
		if t != nil && !t.IsZero() {
			return *t
		}
	}
	return time.Time{}
}

func firstNonEmpty(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
