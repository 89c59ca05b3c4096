package sqlgeo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/artie-labs/geosql/lib/geography"
	"github.com/artie-labs/geosql/lib/wkt"
)

// RadiusProperty is the Feature property carrying a circle's radius in meters.
const RadiusProperty = "radius"

// IsCircle returns true if feature is a Point carrying a radius property.
func IsCircle(feature *geojson.Feature) bool {
	if feature == nil {
		return false
	}

	if _, ok := feature.Geometry.(*geom.Point); !ok {
		return false
	}

	_, ok := feature.Properties[RadiusProperty]
	return ok
}

// NewCircle returns a circle Feature centered on (lon, lat).
func NewCircle(lon, lat, radius float64) *geojson.Feature {
	return &geojson.Feature{
		Geometry:   geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{lon, lat}),
		Properties: map[string]any{RadiusProperty: radius},
	}
}

func radiusOf(feature *geojson.Feature) (float64, error) {
	switch castedValue := feature.Properties[RadiusProperty].(type) {
	case float64:
		return castedValue, nil
	case float32:
		return float64(castedValue), nil
	case int:
		return float64(castedValue), nil
	case int32:
		return float64(castedValue), nil
	case int64:
		return float64(castedValue), nil
	case uint32:
		return float64(castedValue), nil
	case uint64:
		return float64(castedValue), nil
	case json.Number:
		return castedValue.Float64()
	default:
		return 0, fmt.Errorf("circle radius must be numeric, got %T", castedValue)
	}
}

// circleToGeography buffers the center of a circle Feature into a curved polygon.
func circleToGeography(feature *geojson.Feature, srid int) (*geography.Geography, error) {
	radius, err := radiusOf(feature)
	if err != nil {
		return nil, err
	}

	center := feature.Geometry.(*geom.Point)
	if center.Empty() {
		return nil, fmt.Errorf("circle center has no position")
	}

	return geography.PointAt(center.Y(), center.X(), srid).BufferWithCurves(radius)
}

// circleFromText turns the geography text of a curved polygon back into a circle Feature.
// The radius is the distance from the first position to the envelope center, rounded to whole meters.
func circleFromText(text string, srid int) (*geojson.Feature, error) {
	g, err := geography.Parse(text, srid)
	if err != nil {
		return nil, err
	}

	center, err := g.EnvelopeCenter()
	if err != nil {
		return nil, err
	}

	start, err := g.StartPoint()
	if err != nil {
		return nil, err
	}

	distance, err := start.Distance(center)
	if err != nil {
		return nil, err
	}

	lat, lon, err := center.LatLon()
	if err != nil {
		return nil, err
	}

	return NewCircle(lon, lat, math.Round(distance)), nil
}

// reconcileCircles merges the builder's output with circles that could not go through the builder.
// The builder's top-level members come first, followed by the circles, all wrapped in one GEOMETRYCOLLECTION.
func reconcileCircles(builder *geography.Builder, circles []*geography.Geography, srid int) (*geography.Geography, error) {
	var parts []string
	if builder.Started() {
		built, err := builder.ConstructedGeography()
		if err != nil {
			return nil, err
		}

		for i := range built.NumGeometries() {
			member, err := built.GeometryN(i)
			if err != nil {
				return nil, err
			}
			parts = append(parts, member.String())
		}
	}

	for _, circle := range circles {
		parts = append(parts, circle.String())
	}

	slog.Debug("Reconciling circles with built geography",
		slog.Int("members", len(parts)-len(circles)),
		slog.Int("circles", len(circles)),
	)

	text := fmt.Sprintf("%s (%s)", wkt.KeywordGeometryCollection, strings.Join(parts, ", "))
	g, err := geography.Parse(text, srid)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile circles: %w", err)
	}

	return g, nil
}
