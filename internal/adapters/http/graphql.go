package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/oebbdash/internal/core/presentation"
)

// buildSchema creates the GraphQL schema wired to our services. Object fields
// resolve through the json tags of the returned structs.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	labelType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Label",
		Fields: graphql.Fields{
			"kind":  &graphql.Field{Type: graphql.String},
			"value": &graphql.Field{Type: graphql.String},
		},
	})

	endpointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Endpoint",
		Fields: graphql.Fields{
			"name":            &graphql.Field{Type: graphql.String},
			"actualTime":      &graphql.Field{Type: graphql.DateTime},
			"plannedTime":     &graphql.Field{Type: graphql.DateTime},
			"delayMinutes":    &graphql.Field{Type: graphql.Int},
			"platform":        &graphql.Field{Type: graphql.String},
			"plannedPlatform": &graphql.Field{Type: graphql.String},
		},
	})

	segmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Segment",
		Fields: graphql.Fields{
			"mode": &graphql.Field{Type: graphql.String},
			"category": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Category",
				Fields: graphql.Fields{
					"name":       &graphql.Field{Type: graphql.String},
					"type":       &graphql.Field{Type: graphql.String},
					"lineNumber": &graphql.Field{Type: graphql.String},
				},
			})},
			"from": &graphql.Field{Type: endpointType},
			"to":   &graphql.Field{Type: endpointType},
			"walking": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Walking",
				Fields: graphql.Fields{
					"durationMinutes": &graphql.Field{Type: graphql.Int},
				},
			})},
			"transit": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Transit",
				Fields: graphql.Fields{
					"direction": &graphql.Field{Type: graphql.String},
					"fromLabel": &graphql.Field{Type: labelType},
					"toLabel":   &graphql.Field{Type: labelType},
				},
			})},
		},
	})

	itineraryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Itinerary",
		Fields: graphql.Fields{
			"departure":       &graphql.Field{Type: graphql.DateTime},
			"arrival":         &graphql.Field{Type: graphql.DateTime},
			"durationMinutes": &graphql.Field{Type: graphql.Int},
			"switchCount":     &graphql.Field{Type: graphql.Int},
			"segments":        &graphql.Field{Type: graphql.NewList(segmentType)},
		},
	})

	displayType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ItineraryDisplay",
		Fields: graphql.Fields{
			"departure": &graphql.Field{Type: graphql.String},
			"arrival":   &graphql.Field{Type: graphql.String},
			"duration":  &graphql.Field{Type: graphql.String},
			"switches":  &graphql.Field{Type: graphql.String},
		},
	})

	connectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Connection",
		Fields: graphql.Fields{
			"itinerary": &graphql.Field{Type: itineraryType},
			"display":   &graphql.Field{Type: displayType},
		},
	})

	stationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Station",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"type":        &graphql.Field{Type: graphql.String},
			"displayType": &graphql.Field{Type: graphql.String},
			"icon":        &graphql.Field{Type: graphql.String},
		},
	})

	alertType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TrafficAlert",
		Fields: graphql.Fields{
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"pubDate":     &graphql.Field{Type: graphql.String},
			"link":        &graphql.Field{Type: graphql.String},
		},
	})

	savedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SavedConnection",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"boardId":     &graphql.Field{Type: graphql.String},
			"fromStation": &graphql.Field{Type: graphql.String},
			"fromName":    &graphql.Field{Type: graphql.String},
			"toStation":   &graphql.Field{Type: graphql.String},
			"toName":      &graphql.Field{Type: graphql.String},
			"position":    &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"connections": &graphql.Field{
				Type:        graphql.NewList(connectionType),
				Description: "Live itineraries between two stations",
				Args: graphql.FieldConfigArgument{
					"from":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"to":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"datetime": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from := p.Args["from"].(string)
					to := p.Args["to"].(string)
					raw, _ := p.Args["datetime"].(string)
					when, err := parseDatetime(raw)
					if err != nil {
						return nil, err
					}
					if when.IsZero() {
						when = time.Now()
					}
					its, err := deps.Itineraries.PlanConnections(p.Context, from, to, when)
					if err != nil {
						return nil, err
					}
					return connectionResults(its), nil
				},
			},
			"stations": &graphql.Field{
				Type:        graphql.NewList(stationType),
				Description: "Search stations by name",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					stations, err := deps.Stations.Search(p.Context, p.Args["query"].(string))
					if err != nil {
						return nil, err
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
					return out, nil
				},
			},
			"trafficAlerts": &graphql.Field{
				Type:        graphql.NewList(alertType),
				Description: "Latest public-transport disruptions",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Alerts.Latest(p.Context)
				},
			},
			"savedConnections": &graphql.Field{
				Type:        graphql.NewList(savedType),
				Description: "Saved station pairs of a board in display order",
				Args: graphql.FieldConfigArgument{
					"board": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Connections.List(p.Context, p.Args["board"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
