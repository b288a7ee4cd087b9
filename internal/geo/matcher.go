package geo

import (
	"strings"

	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/models"
)

// MatchResult is the tri-state outcome of a single matching strategy.
type MatchResult int

const (
	// NotApplicable means the strategy could not decide and the next
	// tier should be tried.
	NotApplicable MatchResult = iota
	Matched
	NotMatched
)

// Centroid-radius thresholds by severity class inferred from the event
// name. Watches cover large areas, warnings are localized.
const (
	watchRadiusKm   = 150
	warningRadiusKm = 75
	defaultRadiusKm = 100
)

// Target describes the alert side of a geofence test.
type Target struct {
	Geometry *models.AlertGeometry
	Event    string
	AreaDesc string
}

// Strategy is one tier of the geofence test.
type Strategy interface {
	Name() string
	Evaluate(lat, lon float64, t Target) MatchResult
}

// Matcher runs an ordered list of strategies and short-circuits on the
// first conclusive result from an applicable tier.
type Matcher struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewMatcher builds the standard three-tier matcher: polygon containment,
// centroid-radius fallback, then area-description fallback.
func NewMatcher(logger *zap.Logger) *Matcher {
	return &Matcher{
		strategies: []Strategy{
			polygonContainment{},
			centroidRadius{},
			areaDescription{},
		},
		logger: logger,
	}
}

// Matches reports whether the user at (lat, lon) falls inside the alert's
// affected area. With no geometry and no area description every tier is
// inapplicable and the match fails.
func (m *Matcher) Matches(lat, lon float64, t Target) bool {
	for _, s := range m.strategies {
		switch s.Evaluate(lat, lon, t) {
		case Matched:
			m.logger.Debug("geofence matched",
				zap.String("strategy", s.Name()),
				zap.String("event", t.Event),
			)
			return true
		case NotMatched:
			return false
		}
	}
	return false
}

// polygonContainment tests the user point against the polygon's outer
// ring. A containment miss is inconclusive, not a rejection: the alert
// may still be near enough for the radius tier.
type polygonContainment struct{}

func (polygonContainment) Name() string { return "polygon" }

func (polygonContainment) Evaluate(lat, lon float64, t Target) MatchResult {
	ring := t.Geometry.FirstRing()
	if ring == nil {
		return NotApplicable
	}
	if PointInRing(lon, lat, ring) {
		return Matched
	}
	return NotApplicable
}

// centroidRadius compares the great-circle distance from the user to the
// geometry's centroid against an event-class radius. Applicable whenever
// the alert has usable coordinates, and conclusive either way.
type centroidRadius struct{}

func (centroidRadius) Name() string { return "centroid-radius" }

func (centroidRadius) Evaluate(lat, lon float64, t Target) MatchResult {
	var centerLon, centerLat float64
	if ring := t.Geometry.FirstRing(); ring != nil {
		centerLon, centerLat = RingCentroid(ring)
	} else if pLon, pLat, ok := t.Geometry.PointCoords(); ok {
		centerLon, centerLat = pLon, pLat
	} else {
		return NotApplicable
	}
	if Haversine(lat, lon, centerLat, centerLon) <= radiusForEvent(t.Event) {
		return Matched
	}
	return NotMatched
}

func radiusForEvent(event string) float64 {
	lower := strings.ToLower(event)
	switch {
	case strings.Contains(lower, "watch"):
		return watchRadiusKm
	case strings.Contains(lower, "warning"):
		return warningRadiusKm
	default:
		return defaultRadiusKm
	}
}

// areaDescription matches alerts that carry no geometry at all: the
// nearest gazetteer locality stands in for the user, and the match
// succeeds when one of its counties appears in the alert's area text.
type areaDescription struct{}

func (areaDescription) Name() string { return "area-description" }

func (areaDescription) Evaluate(lat, lon float64, t Target) MatchResult {
	if !t.Geometry.Empty() || t.AreaDesc == "" {
		return NotApplicable
	}
	locality, _, ok := NearestLocality(lat, lon)
	if !ok {
		return NotApplicable
	}
	areaLower := strings.ToLower(t.AreaDesc)
	for _, county := range locality.Counties {
		if strings.Contains(areaLower, strings.ToLower(county)) {
			return Matched
		}
	}
	return NotMatched
}
