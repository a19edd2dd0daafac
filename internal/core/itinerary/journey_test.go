package itinerary_test

import (
	"testing"
	"time"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/itinerary"
)

func walk(from, to int) domain.RawLeg {
	return domain.RawLeg{
		Walking:     true,
		Origin:      &domain.RawStop{Name: "A"},
		Destination: &domain.RawStop{Name: "B"},
		Departure:   at(from),
		Arrival:     at(to),
	}
}

func ride(name, product string, from, to int) domain.RawLeg {
	return domain.RawLeg{
		Origin:      &domain.RawStop{Name: "A"},
		Destination: &domain.RawStop{Name: "B"},
		Departure:   at(from),
		Arrival:     at(to),
		Line:        &domain.RawLine{Name: name, Product: product},
	}
}

func TestBuild_SuburbanScenario(t *testing.T) {
	dep := t0
	arr := t0.Add(1500000 * time.Millisecond)
	j := domain.RawJourney{Legs: []domain.RawLeg{{
		Line:      &domain.RawLine{Name: "S 80 (Zug-Nr. 25025)", Product: "suburban"},
		Departure: &dep,
		Arrival:   &arr,
	}}}

	it, ok := itinerary.Build(j)
	if !ok {
		t.Fatal("expected itinerary")
	}
	if it.DurationMinutes != 25 {
		t.Errorf("expected 25 minutes, got %d", it.DurationMinutes)
	}
	if it.SwitchCount != 0 {
		t.Errorf("expected 0 switches, got %d", it.SwitchCount)
	}
	seg := it.Segments[0]
	if seg.Category.Type != domain.TypeSuburban || seg.Category.Name != "S-Bahn S 80" {
		t.Errorf("unexpected category %+v", seg.Category)
	}
}

func TestBuild_SwitchCount(t *testing.T) {
	tests := []struct {
		name string
		legs []domain.RawLeg
		want int
	}{
		{"direct with walks", []domain.RawLeg{walk(0, 5), ride("U1", "subway", 5, 15), walk(15, 20)}, 0},
		{"two rides", []domain.RawLeg{ride("U1", "subway", 0, 10), walk(10, 13), ride("S 7", "suburban", 15, 30)}, 1},
		{"three rides", []domain.RawLeg{ride("U1", "subway", 0, 10), ride("13A", "bus", 12, 20), ride("D", "tram", 22, 30)}, 2},
		{"walk only", []domain.RawLeg{walk(0, 10)}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := itinerary.Build(domain.RawJourney{Legs: tt.legs})
			if !ok {
				t.Fatal("expected itinerary")
			}
			if it.SwitchCount != tt.want {
				t.Errorf("expected %d switches, got %d", tt.want, it.SwitchCount)
			}
		})
	}
}

func TestBuild_EndpointsFollowSegments(t *testing.T) {
	legs := []domain.RawLeg{
		{Departure: at(0), Arrival: at(2)}, // neither walking nor line: dropped
		walk(2, 6),
		ride("U3", "", 6, 18),
		walk(18, 21),
	}
	it, ok := itinerary.Build(domain.RawJourney{Legs: legs})
	if !ok {
		t.Fatal("expected itinerary")
	}
	if len(it.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(it.Segments))
	}
	if !it.Departure.Equal(it.Segments[0].From.ActualTime) {
		t.Errorf("departure %v does not match first segment %v", it.Departure, it.Segments[0].From.ActualTime)
	}
	if !it.Arrival.Equal(it.Segments[2].To.ActualTime) {
		t.Errorf("arrival %v does not match last segment %v", it.Arrival, it.Segments[2].To.ActualTime)
	}
	if it.DurationMinutes != 19 {
		t.Errorf("expected 19 minutes, got %d", it.DurationMinutes)
	}
	if it.Segments[1].Category.Type != domain.TypeSubway {
		t.Errorf("expected subway, got %s", it.Segments[1].Category.Type)
	}
}

func TestBuild_RideWithoutTimes(t *testing.T) {
	untimed := ride("REX 1", "regional", 0, 0)
	untimed.Departure, untimed.Arrival = nil, nil

	tests := []struct {
		name     string
		legs     []domain.RawLeg
		switches int
		dep, arr *time.Time
	}{
		{"leading", []domain.RawLeg{untimed, ride("U1", "subway", 10, 20)}, 1, at(10), at(20)},
		{"between", []domain.RawLeg{ride("S 7", "suburban", 0, 10), untimed, ride("U1", "subway", 30, 40)}, 2, at(0), at(40)},
		{"trailing", []domain.RawLeg{walk(0, 5), ride("U1", "subway", 5, 15), untimed}, 1, at(0), at(15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := itinerary.Build(domain.RawJourney{Legs: tt.legs})
			if !ok {
				t.Fatal("expected itinerary")
			}
			if len(it.Segments) != len(tt.legs) {
				t.Fatalf("expected %d segments, got %d", len(tt.legs), len(it.Segments))
			}
			if it.SwitchCount != tt.switches {
				t.Errorf("expected %d switches, got %d", tt.switches, it.SwitchCount)
			}
			if !it.Departure.Equal(*tt.dep) || !it.Arrival.Equal(*tt.arr) {
				t.Errorf("expected %v-%v, got %v-%v", *tt.dep, *tt.arr, it.Departure, it.Arrival)
			}
			for i, seg := range it.Segments {
				if seg.From.ActualTime.IsZero() || seg.To.ActualTime.IsZero() {
					t.Errorf("segment %d left without a time: %+v", i, seg)
				}
			}
		})
	}
}

func TestBuild_SingleRideWithoutTimesIsDirect(t *testing.T) {
	untimed := ride("REX 1", "regional", 0, 0)
	untimed.Departure, untimed.Arrival = nil, nil

	it, ok := itinerary.Build(domain.RawJourney{Legs: []domain.RawLeg{walk(0, 5), untimed}})
	if !ok {
		t.Fatal("expected itinerary")
	}
	if it.SwitchCount != 0 {
		t.Errorf("expected direct connection, got %d switches", it.SwitchCount)
	}
	if len(it.Segments) != 2 || it.Segments[1].Category.Type != domain.TypeRegional {
		t.Errorf("expected the ride to survive, got %+v", it.Segments)
	}
}

func TestNormalize_SkipsEmptyJourneys(t *testing.T) {
	journeys := []domain.RawJourney{
		{Legs: []domain.RawLeg{ride("REX 1", "regional", 0, 40)}},
		{Legs: []domain.RawLeg{{Departure: at(0), Arrival: at(1)}}},
		{},
		{Legs: []domain.RawLeg{ride("RJX 60", "nationalExpress", 10, 70)}},
	}

	its, stats := itinerary.Normalize(journeys)
	if len(its) != 2 {
		t.Fatalf("expected 2 itineraries, got %d", len(its))
	}
	if its[0].Segments[0].Category.Type != domain.TypeRegional || its[1].Segments[0].Category.Type != domain.TypeNational {
		t.Error("expected provider order to be preserved")
	}
	if stats.Journeys != 4 || stats.SkippedJourneys != 2 || stats.SkippedLegs != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestNormalize_Empty(t *testing.T) {
	its, _ := itinerary.Normalize(nil)
	if its == nil || len(its) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", its)
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := itinerary.DurationMinutes(t0, t0.Add(89*time.Second)); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := itinerary.DurationMinutes(t0, t0.Add(90*time.Second)); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := itinerary.DurationMinutes(t0, t0.Add(-time.Hour)); got != 0 {
		t.Errorf("expected clamp to 0, got %d", got)
	}
}
