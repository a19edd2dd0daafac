package domain

// TransportType is the canonical mode tag of a segment.
type TransportType string

const (
	TypeSubway       TransportType = "subway"
	TypeTram         TransportType = "tram"
	TypeBus          TransportType = "bus"
	TypeSuburban     TransportType = "suburban"
	TypeRegional     TransportType = "regional"
	TypeNational     TransportType = "national"
	TypeWalking      TransportType = "walking"
	TypeUnknownTrain TransportType = "unknown-train"
)

// TransportTypes lists every tag in classification order.
var TransportTypes = []TransportType{
	TypeWalking,
	TypeSubway,
	TypeTram,
	TypeBus,
	TypeSuburban,
	TypeRegional,
	TypeNational,
	TypeUnknownTrain,
}

// IsWienerLinien reports whether the type belongs to the subway/tram/bus
// family, which shows direction instead of platform.
func (t TransportType) IsWienerLinien() bool {
	switch t {
	case TypeSubway, TypeTram, TypeBus:
		return true
	default:
		return false
	}
}

// Product codes as reported by the routing provider.
const (
	ProductSubway          = "subway"
	ProductTram            = "tram"
	ProductBus             = "bus"
	ProductSuburban        = "suburban"
	ProductRegional        = "regional"
	ProductRegionalExp     = "regionalExp"
	ProductRegionalExpress = "regionalExpress"
	ProductNational        = "national"
	ProductNationalExpress = "nationalExpress"
)
