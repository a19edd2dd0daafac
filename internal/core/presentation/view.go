package presentation

import (
	"fmt"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

// TimeView is one rendered endpoint time. Planned is only set when it should
// be shown struck through next to the actual time.
type TimeView struct {
	Actual  string `json:"actual"`
	Planned string `json:"planned,omitempty"`
	Delayed bool   `json:"delayed"`
}

// EndpointView is the rendered side of a segment.
type EndpointView struct {
	Name  string   `json:"name"`
	Time  TimeView `json:"time"`
	Info  string   `json:"info,omitempty"`
	Delay string   `json:"delay,omitempty"`
}

// SegmentView is the rendered form of one segment.
type SegmentView struct {
	Badge     string       `json:"badge"`
	Color     string       `json:"color"`
	Walking   bool         `json:"walking"`
	Walk      string       `json:"walk,omitempty"`
	Direction string       `json:"direction,omitempty"`
	From      EndpointView `json:"from"`
	To        EndpointView `json:"to"`
}

// ItineraryView is the rendered form of an itinerary.
type ItineraryView struct {
	Departure string        `json:"departure"`
	Arrival   string        `json:"arrival"`
	Duration  string        `json:"duration"`
	Switches  string        `json:"switches"`
	Segments  []SegmentView `json:"segments"`
}

// Time renders an endpoint's clock time.
func Time(e domain.Endpoint) TimeView {
	v := TimeView{Actual: FormatClock(e.ActualTime)}
	if e.PlannedTime != nil && e.IsDelayed() {
		v.Planned = FormatClock(*e.PlannedTime)
		v.Delayed = true
	}
	return v
}

// LabelText renders a platform or direction label.
func LabelText(l domain.Label) string {
	switch l.Kind {
	case domain.LabelPlatform:
		return "Gleis " + l.Value
	case domain.LabelDirection:
		return "Richtung " + l.Value
	default:
		return ""
	}
}

// Segment renders one segment.
func Segment(s domain.Segment) SegmentView {
	v := SegmentView{
		Badge: s.Category.Name,
		Color: Color(s.Category.Type),
		From:  EndpointView{Name: s.From.Name, Time: TimeView{Actual: FormatClock(s.From.ActualTime)}},
		To:    EndpointView{Name: s.To.Name, Time: TimeView{Actual: FormatClock(s.To.ActualTime)}},
	}

	if s.Walking != nil {
		v.Walking = true
		v.Walk = "Fußweg"
		if d := s.Walking.DurationMinutes; d != nil {
			v.Walk = fmt.Sprintf("Fußweg (%d min)", *d)
		}
		return v
	}

	v.From.Time = Time(s.From)
	v.To.Time = Time(s.To)
	v.From.Delay = DelayText(s.From.DelayMinutes)
	if s.Transit != nil {
		v.From.Info = LabelText(s.Transit.FromLabel)
		v.To.Info = LabelText(s.Transit.ToLabel)
		// trains show the direction next to the platform as well
		if s.Transit.Direction != "" && s.Transit.FromLabel.Kind == domain.LabelPlatform {
			v.Direction = "Richtung " + s.Transit.Direction
		}
	}
	return v
}

// Itinerary renders a whole itinerary.
func Itinerary(it domain.Itinerary) ItineraryView {
	v := ItineraryView{
		Departure: FormatClock(it.Departure),
		Arrival:   FormatClock(it.Arrival),
		Duration:  FormatDuration(it.DurationMinutes),
		Switches:  SwitchLabel(it.SwitchCount),
		Segments:  make([]SegmentView, 0, len(it.Segments)),
	}
	for _, s := range it.Segments {
		v.Segments = append(v.Segments, Segment(s))
	}
	return v
}
