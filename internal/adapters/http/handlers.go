package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/oebbdash/internal/core/domain"
	"github.com/samirrijal/oebbdash/internal/core/presentation"
	"github.com/samirrijal/oebbdash/internal/core/usecases"
)

// localDateTime is the layout of an HTML datetime-local input.
const localDateTime = "2006-01-02T15:04"

// ConnectionQuery is the body of POST /v1/connections.
type ConnectionQuery struct {
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`
	Datetime    string `json:"datetime"`
}

// ConnectionResult pairs a normalized itinerary with its rendered view.
type ConnectionResult struct {
	Itinerary domain.Itinerary           `json:"itinerary"`
	Display   presentation.ItineraryView `json:"display"`
}

// ConnectionsResponse is the reply to a connection query.
type ConnectionsResponse struct {
	Connections []ConnectionResult `json:"connections"`
	Link        string             `json:"link,omitempty"`
}

// StationResult is one station search hit with its icon.
type StationResult struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	DisplayType domain.StationType `json:"displayType"`
	Icon        string             `json:"icon"`
}

// PairView is one board entry of the dashboard.
type PairView struct {
	Connection  domain.SavedConnection `json:"connection"`
	Connections []ConnectionResult     `json:"connections"`
	Error       string                 `json:"error,omitempty"`
	FallbackURL string                 `json:"fallbackUrl,omitempty"`
}

// DashboardResponse is the refreshed state of a board.
type DashboardResponse struct {
	BoardID     string     `json:"boardId"`
	RefreshedAt time.Time  `json:"refreshedAt"`
	Cached      bool       `json:"cached"`
	Pairs       []PairView `json:"pairs"`
}

type positionUpdate struct {
	Position *int `json:"position"`
}

// parseDatetime accepts RFC 3339 or a Vienna wall-clock time. Empty means now.
func parseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(localDateTime, s, presentation.Vienna)
}

func connectionResults(its []domain.Itinerary) []ConnectionResult {
	out := make([]ConnectionResult, len(its))
	for i, it := range its {
		out[i] = ConnectionResult{Itinerary: it, Display: presentation.Itinerary(it)}
	}
	return out
}

func dashboardResponse(snap *domain.BoardSnapshot, cached bool) DashboardResponse {
	resp := DashboardResponse{
		BoardID:     snap.BoardID,
		RefreshedAt: snap.RefreshedAt,
		Cached:      cached,
		Pairs:       make([]PairView, len(snap.Pairs)),
	}
	for i, p := range snap.Pairs {
		resp.Pairs[i] = PairView{
			Connection:  p.Connection,
			Connections: connectionResults(p.Itineraries),
			Error:       p.Error,
			FallbackURL: p.FallbackURL,
		}
	}
	return resp
}

// QueryConnectionsHandler returns live itineraries between two stations.
func QueryConnectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q ConnectionQuery
		if err := c.BodyParser(&q); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if strings.TrimSpace(q.FromStation) == "" || strings.TrimSpace(q.ToStation) == "" {
			return errBadRequest(c, "fromStation and toStation are required")
		}
		when, err := parseDatetime(q.Datetime)
		if err != nil {
			return errBadRequest(c, "datetime must be RFC 3339 or "+localDateTime)
		}
		if when.IsZero() {
			when = time.Now()
		}

		its, err := deps.Itineraries.PlanConnections(c.UserContext(), q.FromStation, q.ToStation, when)
		if err != nil {
			return respondError(c, err)
		}

		c.Set(fiber.HeaderCacheControl, "private, max-age=30")
		return c.JSON(ConnectionsResponse{
			Connections: connectionResults(its),
			Link:        deps.Itineraries.FallbackURL(q.FromStation, q.ToStation, when),
		})
	}
}

// SearchStationsHandler returns stations matching ?query=.
func SearchStationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stations, err := deps.Stations.Search(c.UserContext(), c.Query("query"))
		if err != nil {
			return respondError(c, err)
		}

		out := make([]StationResult, len(stations))
		for i, s := range stations {
			out[i] = StationResult{
				ID:          s.ID,
				Name:        s.Name,
				Type:        s.Type,
				DisplayType: s.DisplayType,
				Icon:        presentation.StationIcon(s.DisplayType),
			}
		}
		return c.JSON(fiber.Map{"stations": out})
	}
}

// TrafficAlertsHandler returns the latest public-transport disruptions.
func TrafficAlertsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := deps.Alerts.Latest(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"alerts": alerts})
	}
}

// ListSavedConnectionsHandler returns a page of a board's saved pairs.
func ListSavedConnectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conns, err := deps.Connections.List(c.UserContext(), c.Params("board"))
		if err != nil {
			return respondError(c, err)
		}

		offset, limit := pageParams(c)
		page, pg := paginate(conns, offset, limit)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// AddSavedConnectionHandler appends a station pair to a board.
func AddSavedConnectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.NewConnection
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		conn, err := deps.Connections.Add(c.UserContext(), c.Params("board"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(conn)
	}
}

// RemoveSavedConnectionHandler deletes a station pair from a board.
func RemoveSavedConnectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Connections.Remove(c.UserContext(), c.Params("board"), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// MoveSavedConnectionHandler moves a station pair to a new index.
func MoveSavedConnectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body positionUpdate
		if err := c.BodyParser(&body); err != nil || body.Position == nil {
			return errBadRequest(c, "position is required")
		}

		conns, err := deps.Connections.Move(c.UserContext(), c.Params("board"), c.Params("id"), *body.Position)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": conns})
	}
}

// DashboardHandler refreshes every pair of a board, or with ?cached=true
// returns the last snapshot published by the refresher.
func DashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		board := c.Params("board")
		cached := c.QueryBool("cached", false)

		var (
			snap *domain.BoardSnapshot
			err  error
		)
		if cached {
			snap, err = deps.Dashboard.Latest(c.UserContext(), board)
		} else {
			snap, err = deps.Dashboard.RefreshBoard(c.UserContext(), board)
		}
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dashboardResponse(snap, cached))
	}
}
