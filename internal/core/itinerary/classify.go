// Package itinerary turns raw provider journeys into display-ready
// itineraries. Every function here is pure: no I/O, no logging, no shared
// state.
package itinerary

import (
	"regexp"
	"strings"

	"github.com/samirrijal/oebbdash/internal/core/domain"
)

const (
	walkingName      = "Fußweg"
	genericTrainName = "Zug"
)

var (
	subwayLinePrefix  = regexp.MustCompile(`^U\d`)
	subwayLineName    = regexp.MustCompile(`^U[1-6]$`)
	tramLineName      = regexp.MustCompile(`^\d{1,2}$`)
	busLineName       = regexp.MustCompile(`^\d{1,3}[A-Z]?$`)
	trainNumberSuffix = regexp.MustCompile(`\s*\(.*?\).*$`)
)

// product prefers the explicit product code over the generic mode.
func product(line domain.RawLine) string {
	if line.Product != "" {
		return line.Product
	}
	return line.Mode
}

// ClassifyLeg returns the transport type of a leg.
func ClassifyLeg(leg domain.RawLeg) domain.TransportType {
	if leg.Walking {
		return domain.TypeWalking
	}
	if leg.Line == nil {
		return domain.TypeUnknownTrain
	}
	return ClassifyLine(*leg.Line)
}

// ClassifyLine maps a line descriptor to its transport type. The checks are
// ordered and the first match wins; name fallbacks overlap, so reordering
// changes results.
func ClassifyLine(line domain.RawLine) domain.TransportType {
	p := product(line)
	switch {
	case p == domain.ProductSubway || subwayLinePrefix.MatchString(line.Name):
		return domain.TypeSubway
	case p == domain.ProductTram:
		return domain.TypeTram
	case p == domain.ProductBus:
		return domain.TypeBus
	case p == domain.ProductSuburban || strings.HasPrefix(line.Name, "S"):
		return domain.TypeSuburban
	case p == domain.ProductRegional || p == domain.ProductRegionalExp || p == domain.ProductRegionalExpress:
		return domain.TypeRegional
	case p == domain.ProductNational || p == domain.ProductNationalExpress:
		return domain.TypeNational
	default:
		return domain.TypeUnknownTrain
	}
}

// DisplayName builds the badge text of a transit line, e.g. "U-Bahn U3" or
// "S-Bahn S 80" for "S 80 (Zug-Nr. 25025)".
func DisplayName(line domain.RawLine) string {
	p := product(line)
	name := line.Name

	switch {
	case p == domain.ProductSubway || subwayLineName.MatchString(name):
		return "U-Bahn " + name
	case p == domain.ProductTram || tramLineName.MatchString(name):
		return "Straßenbahn " + name
	case p == domain.ProductBus && busLineName.MatchString(name):
		return "Bus " + name
	case p == domain.ProductSuburban || strings.HasPrefix(name, "S"):
		return "S-Bahn " + StripTrainNumber(name)
	case line.ProductName != "":
		return line.ProductName
	case name != "":
		return name
	default:
		return genericTrainName
	}
}

// StripTrainNumber drops a trailing " (Zug-Nr. …)" style annotation.
func StripTrainNumber(name string) string {
	return strings.TrimSpace(trainNumberSuffix.ReplaceAllString(name, ""))
}
