package itinerary

import "github.com/samirrijal/oebbdash/internal/core/domain"

// StationType picks the display label of a station from its product flags.
// Priority: subway, tram, bus, national, regional, suburban.
func StationType(p *domain.Products) domain.StationType {
	if p == nil {
		return domain.StationGeneric
	}
	switch {
	case p.Subway:
		return domain.StationSubway
	case p.Tram:
		return domain.StationTram
	case p.Bus:
		return domain.StationBus
	case p.NationalExpress || p.National:
		return domain.StationNational
	case p.RegionalExp || p.Regional:
		return domain.StationRegional
	case p.Suburban:
		return domain.StationSuburban
	default:
		return domain.StationGeneric
	}
}

// ClassifyStation enriches a location search hit with its display type.
func ClassifyStation(loc domain.RawLocation) domain.Station {
	st := domain.Station{
		ID:          loc.ID,
		Name:        loc.Name,
		Type:        loc.Type,
		DisplayType: StationType(loc.Products),
	}
	if loc.Products != nil {
		p := *loc.Products
		st.Products = &p
	}
	return st
}

// IsStop reports whether a location hit can be used as a journey endpoint.
func IsStop(loc domain.RawLocation) bool {
	return loc.Type == domain.LocationStation || loc.Type == domain.LocationStop
}
