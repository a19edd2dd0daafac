package domain

import "time"

// SavedConnection is a station pair saved on a board.
type SavedConnection struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"boardId"`
	FromStation string    `json:"fromStation"`
	FromName    string    `json:"fromName"`
	ToStation   string    `json:"toStation"`
	ToName      string    `json:"toName"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PairResult is the refresh outcome of one saved connection. Either
// Itineraries or Error is meaningful; FallbackURL is set on error.
type PairResult struct {
	Connection  SavedConnection `json:"connection"`
	Itineraries []Itinerary     `json:"itineraries"`
	Error       string          `json:"error,omitempty"`
	FallbackURL string          `json:"fallbackUrl,omitempty"`
}

// BoardSnapshot is the refresh result of a whole board.
type BoardSnapshot struct {
	BoardID     string       `json:"boardId"`
	RefreshedAt time.Time    `json:"refreshedAt"`
	Pairs       []PairResult `json:"pairs"`
}

// Failed counts pair results carrying an error.
func (b BoardSnapshot) Failed() int {
	n := 0
	for _, p := range b.Pairs {
		if p.Error != "" {
			n++
		}
	}
	return n
}
