package domain

// Products holds the transport products a station supports.
type Products struct {
	Subway          bool `json:"subway"`
	Tram            bool `json:"tram"`
	Bus             bool `json:"bus"`
	Suburban        bool `json:"suburban"`
	Regional        bool `json:"regional"`
	RegionalExp     bool `json:"regionalExp"`
	National        bool `json:"national"`
	NationalExpress bool `json:"nationalExpress"`
}

// StationType is the display label of a station in search results.
type StationType string

const (
	StationSubway   StationType = "U-Bahn"
	StationTram     StationType = "Straßenbahn"
	StationBus      StationType = "Bus"
	StationNational StationType = "Fernzug"
	StationRegional StationType = "Regionalzug"
	StationSuburban StationType = "S-Bahn"
	StationGeneric  StationType = "Station"
)

// Location kinds returned by the provider's location search.
const (
	LocationStation = "station"
	LocationStop    = "stop"
)

// RawLocation is one provider location search hit.
type RawLocation struct {
	Type     string    `json:"type"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products *Products `json:"products,omitempty"`
}

// Station is a station search result enriched with its display type.
type Station struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Products    *Products   `json:"products,omitempty"`
	DisplayType StationType `json:"displayType"`
}
