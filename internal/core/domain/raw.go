package domain

import "time"

// RawJourney is one journey as returned by the routing provider.
type RawJourney struct {
	Legs []RawLeg `json:"legs"`
}

// RawLeg is one ride or walk inside a RawJourney. Every pointer field may be
// absent in provider data.
type RawLeg struct {
	Walking     bool     `json:"walking,omitempty"`
	Origin      *RawStop `json:"origin,omitempty"`
	Destination *RawStop `json:"destination,omitempty"`

	Departure        *time.Time `json:"departure,omitempty"`
	PlannedDeparture *time.Time `json:"plannedDeparture,omitempty"`
	DepartureDelay   *int       `json:"departureDelay,omitempty"` // seconds
	Arrival          *time.Time `json:"arrival,omitempty"`
	PlannedArrival   *time.Time `json:"plannedArrival,omitempty"`
	ArrivalDelay     *int       `json:"arrivalDelay,omitempty"` // seconds

	DeparturePlatform        *string `json:"departurePlatform,omitempty"`
	PlannedDeparturePlatform *string `json:"plannedDeparturePlatform,omitempty"`
	ArrivalPlatform          *string `json:"arrivalPlatform,omitempty"`
	PlannedArrivalPlatform   *string `json:"plannedArrivalPlatform,omitempty"`

	Line      *RawLine `json:"line,omitempty"`
	Direction *string  `json:"direction,omitempty"`
	Duration  *int     `json:"duration,omitempty"` // seconds, walking legs
}

// RawStop is a leg endpoint.
type RawStop struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Platform *string `json:"platform,omitempty"`
}

// RawLine describes the vehicle line serving a transit leg.
type RawLine struct {
	Name        string  `json:"name"`
	Product     string  `json:"product,omitempty"`
	Mode        string  `json:"mode,omitempty"`
	Direction   *string `json:"direction,omitempty"`
	ProductName string  `json:"productName,omitempty"`
}
