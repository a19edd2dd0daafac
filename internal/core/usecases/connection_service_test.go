package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
)

func seed(board string, ids ...string) []domain.SavedConnection {
	out := make([]domain.SavedConnection, len(ids))
	for i, id := range ids {
		out[i] = domain.SavedConnection{ID: id, BoardID: board, FromStation: "A" + id, ToStation: "B" + id, Position: i}
	}
	return out
}

func order(conns []domain.SavedConnection) string {
	s := ""
	for _, c := range conns {
		s += c.ID
	}
	return s
}

func TestConnectionService_Add(t *testing.T) {
	repo := newMockConnRepo(seed("home", "a")...)
	svc := usecases.NewConnectionService(repo)

	conn, err := svc.Add(context.Background(), "home", usecases.NewConnection{
		FromStation: "1290401", FromName: "Wien Hbf", ToStation: "8100013",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.ID == "" {
		t.Error("expected generated id")
	}
	if conn.Position != 1 {
		t.Errorf("expected position 1, got %d", conn.Position)
	}
	if conn.ToName != "8100013" {
		t.Errorf("expected station id as default name, got %s", conn.ToName)
	}
}

func TestConnectionService_AddValidation(t *testing.T) {
	svc := usecases.NewConnectionService(newMockConnRepo())
	cases := []struct {
		board string
		in    usecases.NewConnection
	}{
		{"home", usecases.NewConnection{FromStation: "", ToStation: "B"}},
		{"home", usecases.NewConnection{FromStation: "A", ToStation: " "}},
		{"home", usecases.NewConnection{FromStation: "A", ToStation: "A"}},
		{"", usecases.NewConnection{FromStation: "A", ToStation: "B"}},
	}
	for _, c := range cases {
		if _, err := svc.Add(context.Background(), c.board, c.in); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("%+v: expected ErrInvalidQuery, got %v", c, err)
		}
	}
}

func TestConnectionService_RemoveRenumbers(t *testing.T) {
	repo := newMockConnRepo(seed("home", "a", "b", "c")...)
	svc := usecases.NewConnectionService(repo)

	if err := svc.Remove(context.Background(), "home", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conns, _ := svc.List(context.Background(), "home")
	if order(conns) != "bc" {
		t.Errorf("expected bc, got %s", order(conns))
	}
	for i, c := range conns {
		if c.Position != i {
			t.Errorf("expected dense position %d, got %d", i, c.Position)
		}
	}
}

func TestConnectionService_RemoveMissing(t *testing.T) {
	svc := usecases.NewConnectionService(newMockConnRepo())
	if err := svc.Remove(context.Background(), "home", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConnectionService_Move(t *testing.T) {
	tests := []struct {
		id    string
		index int
		want  string
	}{
		{"a", 2, "bca"},
		{"c", 0, "cab"},
		{"b", 1, "abc"},
		{"a", 1, "bac"},
	}
	for _, tt := range tests {
		repo := newMockConnRepo(seed("home", "a", "b", "c")...)
		svc := usecases.NewConnectionService(repo)

		moved, err := svc.Move(context.Background(), "home", tt.id, tt.index)
		if err != nil {
			t.Fatalf("move %s to %d: unexpected error: %v", tt.id, tt.index, err)
		}
		if order(moved) != tt.want {
			t.Errorf("move %s to %d: expected %s, got %s", tt.id, tt.index, tt.want, order(moved))
		}
		stored, _ := svc.List(context.Background(), "home")
		if order(stored) != tt.want {
			t.Errorf("move %s to %d: stored order %s", tt.id, tt.index, order(stored))
		}
	}
}

func TestConnectionService_MoveErrors(t *testing.T) {
	svc := usecases.NewConnectionService(newMockConnRepo(seed("home", "a", "b")...))
	if _, err := svc.Move(context.Background(), "home", "a", 2); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
	if _, err := svc.Move(context.Background(), "home", "x", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSplice_DoesNotMutateInput(t *testing.T) {
	in := seed("home", "a", "b", "c", "d")
	out := usecases.Splice(in, 3, 1)
	if order(out) != "adbc" {
		t.Errorf("expected adbc, got %s", order(out))
	}
	if order(in) != "abcd" {
		t.Errorf("input mutated: %s", order(in))
	}
}
