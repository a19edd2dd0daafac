package domain

import "time"

// Itinerary is the normalized, display-ready form of one journey.
type Itinerary struct {
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"durationMinutes"`
	// SwitchCount is the raw transit-leg count minus one and may be negative
	// for journeys without any transit leg.
	SwitchCount int       `json:"switchCount"`
	Segments    []Segment `json:"segments"`
}

// SegmentMode distinguishes walking from transit segments.
type SegmentMode string

const (
	ModeWalking SegmentMode = "walking"
	ModeTransit SegmentMode = "transit"
)

// Segment is the normalized form of one leg. Exactly one of Walking and
// Transit is set, matching Mode.
type Segment struct {
	Mode     SegmentMode  `json:"mode"`
	Category Category     `json:"category"`
	From     Endpoint     `json:"from"`
	To       Endpoint     `json:"to"`
	Walking  *WalkingInfo `json:"walking,omitempty"`
	Transit  *TransitInfo `json:"transit,omitempty"`
}

// Category is the display name and machine tag of a segment.
type Category struct {
	Name       string        `json:"name"`
	Type       TransportType `json:"type"`
	LineNumber string        `json:"lineNumber,omitempty"`
}

// Endpoint is the departure or arrival side of a segment.
type Endpoint struct {
	Name            string     `json:"name"`
	ActualTime      time.Time  `json:"actualTime"`
	PlannedTime     *time.Time `json:"plannedTime,omitempty"`
	DelayMinutes    *int       `json:"delayMinutes,omitempty"`
	Platform        *string    `json:"platform,omitempty"`
	PlannedPlatform *string    `json:"plannedPlatform,omitempty"`
}

// IsDelayed reports a confirmed positive delay.
func (e Endpoint) IsDelayed() bool {
	return e.DelayMinutes != nil && *e.DelayMinutes > 0
}

// WalkingInfo holds walking-only fields.
type WalkingInfo struct {
	DurationMinutes *int `json:"durationMinutes,omitempty"`
}

// LabelKind selects what an endpoint badge shows.
type LabelKind string

const (
	LabelNone      LabelKind = "none"
	LabelPlatform  LabelKind = "platform"
	LabelDirection LabelKind = "direction"
)

// Label is the platform-or-direction badge of an endpoint.
type Label struct {
	Kind  LabelKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

// TransitInfo holds transit-only fields.
type TransitInfo struct {
	Direction string `json:"direction,omitempty"`
	FromLabel Label  `json:"fromLabel"`
	ToLabel   Label  `json:"toLabel"`
}
