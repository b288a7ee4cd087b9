package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// FeedResponse is the GeoJSON feature collection returned by the NWS
// active-alerts endpoint.
type FeedResponse struct {
	Features []AlertFeature `json:"features"`
}

// AlertFeature is a single alert from the feed.
type AlertFeature struct {
	ID         string          `json:"id"`
	Properties AlertProperties `json:"properties"`
	Geometry   *AlertGeometry  `json:"geometry"`
}

// AlertProperties carries the CAP fields of an alert feature.
type AlertProperties struct {
	Event       string `json:"event"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	AreaDesc    string `json:"areaDesc"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Updated     string `json:"updated"`
	Effective   string `json:"effective"`
	Sent        string `json:"sent"`
	Ends        string `json:"ends"`
	Expires     string `json:"expires"`
}

// EffectiveTimestamp returns the first non-empty of updated, effective and
// sent. It is compared as an opaque string, never parsed; change detection
// is equality-based so a feed that clears and republishes an identical
// alert does not trigger a duplicate notification storm.
func (p AlertProperties) EffectiveTimestamp() string {
	if p.Updated != "" {
		return p.Updated
	}
	if p.Effective != "" {
		return p.Effective
	}
	return p.Sent
}

// AlertGeometry holds the alert's affected area as either a polygon or a
// point. A geometry whose coordinates cannot be decoded is treated as
// absent rather than failing the whole feed payload.
type AlertGeometry struct {
	Type  string
	Rings [][][]float64 // polygon rings, vertices as [lon, lat]
	Point []float64     // point coordinates as [lon, lat]
}

// UnmarshalJSON decodes a GeoJSON Polygon or Point geometry. Unknown types
// and malformed coordinate arrays yield an empty geometry.
func (g *AlertGeometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Type = raw.Type
	switch raw.Type {
	case "Polygon":
		if err := json.Unmarshal(raw.Coordinates, &g.Rings); err != nil {
			*g = AlertGeometry{}
		}
	case "Point":
		if err := json.Unmarshal(raw.Coordinates, &g.Point); err != nil {
			*g = AlertGeometry{}
		}
	}
	return nil
}

// FirstRing returns the polygon's outer ring, or nil if the geometry does
// not carry a usable polygon.
func (g *AlertGeometry) FirstRing() [][]float64 {
	if g == nil || g.Type != "Polygon" || len(g.Rings) == 0 {
		return nil
	}
	ring := g.Rings[0]
	if len(ring) < 3 {
		return nil
	}
	for _, vertex := range ring {
		if len(vertex) < 2 {
			return nil
		}
	}
	return ring
}

// PointCoords returns the point geometry as (lon, lat), or ok=false if
// the geometry is not a usable point.
func (g *AlertGeometry) PointCoords() (lon, lat float64, ok bool) {
	if g == nil || g.Type != "Point" || len(g.Point) < 2 {
		return 0, 0, false
	}
	return g.Point[0], g.Point[1], true
}

// Empty reports whether the geometry carries no usable coordinates.
func (g *AlertGeometry) Empty() bool {
	if g == nil {
		return true
	}
	if g.FirstRing() != nil {
		return false
	}
	_, _, ok := g.PointCoords()
	return !ok
}

var (
	protocolHostPattern = regexp.MustCompile(`^https?://[^/]+/`)
	invalidKeyChars     = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// SanitizeAlertID derives a store-safe storage key from a feed-native alert
// ID. NWS IDs are URLs with slashes; the protocol and host are stripped,
// remaining slashes become underscores, and anything outside [A-Za-z0-9_-]
// is replaced with an underscore. The transformation is idempotent.
func SanitizeAlertID(alertID string) string {
	key := protocolHostPattern.ReplaceAllString(alertID, "")
	key = strings.ReplaceAll(key, "/", "_")
	return invalidKeyChars.ReplaceAllString(key, "_")
}

// StoredAlert is the persisted alert document, keyed by the sanitized
// storage key.
type StoredAlert struct {
	StorageKey      string    `bson:"_id"`
	OriginalAlertID string    `bson:"originalAlertId"`
	Event           string    `bson:"event"`
	Severity        string    `bson:"severity"`
	Urgency         string    `bson:"urgency"`
	AreaDesc        string    `bson:"areaDesc"`
	Headline        string    `bson:"headline"`
	Description     string    `bson:"description"`
	LastUpdated     string    `bson:"lastUpdated"`
	ExpiresAt       time.Time `bson:"expiresAt"`
	FetchedAt       time.Time `bson:"fetchedAt"`
}

// NewStoredAlert builds the persisted document for a feed alert. The
// expiry comes from the feed's ends field (falling back to expires); if
// neither parses, the fetch time is used so the record still ages out of
// the retention window.
func NewStoredAlert(alert AlertFeature, fetchedAt time.Time) StoredAlert {
	p := alert.Properties
	expiresAt := fetchedAt
	for _, candidate := range []string{p.Ends, p.Expires} {
		if candidate == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, candidate); err == nil {
			expiresAt = t
			break
		}
	}
	return StoredAlert{
		StorageKey:      SanitizeAlertID(alert.ID),
		OriginalAlertID: alert.ID,
		Event:           p.Event,
		Severity:        p.Severity,
		Urgency:         p.Urgency,
		AreaDesc:        p.AreaDesc,
		Headline:        p.Headline,
		Description:     p.Description,
		LastUpdated:     p.EffectiveTimestamp(),
		ExpiresAt:       expiresAt,
		FetchedAt:       fetchedAt,
	}
}
