package sqlgeo

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/artie-labs/geosql/lib/geography"
)

const unitCircleText = "CURVEPOLYGON (CIRCULARSTRING (0 1, 1 0, 0 -1, -1 0, 0 1))"

func (s *SQLGeoTestSuite) TestIsCircle() {
	s.True(IsCircle(NewCircle(1, 2, 3)))
	s.False(IsCircle(nil))
	s.False(IsCircle(&geojson.Feature{Geometry: testPoint}))
	s.False(IsCircle(&geojson.Feature{Geometry: testPoint, Properties: map[string]any{"name": "x"}}))
	s.False(IsCircle(&geojson.Feature{Geometry: testPolygon, Properties: map[string]any{RadiusProperty: 10.0}}))
}

func (s *SQLGeoTestSuite) TestRadiusOf() {
	for _, value := range []any{12.0, float32(12), 12, int32(12), int64(12), uint32(12), uint64(12), json.Number("12")} {
		radius, err := radiusOf(&geojson.Feature{Properties: map[string]any{RadiusProperty: value}})
		s.NoError(err)
		s.Equal(12.0, radius)
	}

	_, err := radiusOf(&geojson.Feature{Properties: map[string]any{RadiusProperty: "12"}})
	s.ErrorContains(err, "circle radius must be numeric, got string")
}

func (s *SQLGeoTestSuite) TestCircleRoundTrip() {
	circle := NewCircle(-122.3, 47.6, 1000)

	text, err := s.featureCollection.ToGeographyText(circle)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(text, "GEOMETRYCOLLECTION (CURVEPOLYGON (CIRCULARSTRING ("), text)

	value, err := s.featureCollection.FromGeographyText(text)
	s.Require().NoError(err)

	featureCollection, ok := value.(*geojson.FeatureCollection)
	s.Require().True(ok)
	s.Require().Len(featureCollection.Features, 1)

	decoded := featureCollection.Features[0]
	s.True(IsCircle(decoded))
	center := decoded.Geometry.(*geom.Point)
	s.InDelta(-122.3, center.X(), 1e-5)
	s.InDelta(47.6, center.Y(), 1e-5)
	s.InDelta(1000, decoded.Properties[RadiusProperty], 1)
}

func (s *SQLGeoTestSuite) TestCirclesAfterBuiltMembers() {
	root := &geojson.FeatureCollection{Features: []*geojson.Feature{
		{Geometry: testPolygon},
		NewCircle(10, 20, 500),
		{Geometry: testPoint},
	}}

	g, err := s.featureCollection.ToGeography(root)
	s.Require().NoError(err)
	s.Equal(geography.TypeGeometryCollection, g.Type())
	s.Equal(3, g.NumGeometries())

	var types []geography.Type
	for i := range g.NumGeometries() {
		member, err := g.GeometryN(i)
		s.Require().NoError(err)
		types = append(types, member.Type())
	}
	s.Equal([]geography.Type{geography.TypePolygon, geography.TypePoint, geography.TypeCurvePolygon}, types)

	value, err := s.featureCollection.FromGeography(g)
	s.Require().NoError(err)
	features := value.(*geojson.FeatureCollection).Features
	s.Require().Len(features, 3)
	s.False(IsCircle(features[0]))
	s.False(IsCircle(features[1]))
	s.True(IsCircle(features[2]))
	s.InDelta(500, features[2].Properties[RadiusProperty], 1)
}

func (s *SQLGeoTestSuite) TestCircleErrors() {
	_, err := s.featureCollection.ToGeographyText(&geojson.Feature{
		Geometry:   testPoint,
		Properties: map[string]any{RadiusProperty: "wide"},
	})
	s.ErrorContains(err, "failed to convert circle: circle radius must be numeric, got string")

	_, err = s.featureCollection.ToGeographyText(NewCircle(1, 2, -5))
	s.ErrorContains(err, "buffer radius must be positive, got -5")
}

func (s *SQLGeoTestSuite) TestCircleStyles() {
	text := "GEOMETRYCOLLECTION (POINT (1 2), " + unitCircleText + ")"

	_, err := s.geometryCollection.FromGeographyText(text)
	s.True(IsUnsupportedShapeError(err))
	s.ErrorContains(err, `CURVEPOLYGON cannot be represented with the "geometryCollection" reconstruction style, (1:34)`)

	value, err := s.featureCollection.FromGeographyText(text)
	s.Require().NoError(err)
	features := value.(*geojson.FeatureCollection).Features
	s.Require().Len(features, 2)
	s.True(IsCircle(features[1]))
	s.Equal(geom.Coord{0, 0}, features[1].Geometry.(*geom.Point).Coords())
	s.Equal(111319.0, features[1].Properties[RadiusProperty])

	// A circle on its own becomes a single Feature.
	value, err = s.featureCollection.FromGeographyText(unitCircleText)
	s.Require().NoError(err)
	s.True(IsCircle(value.(*geojson.Feature)))

	_, err = s.featureCollection.FromGeographyText("GEOMETRYCOLLECTION (GEOMETRYCOLLECTION (" + unitCircleText + "))")
	s.True(IsUnsupportedShapeError(err))
}

func (s *SQLGeoTestSuite) TestCircleRoundTrip_EdgesOfTheMap() {
	testCases := []struct {
		name   string
		lon    float64
		lat    float64
		radius float64
	}{
		{"east of the antimeridian", 179.999, 0, 1000},
		{"west of the antimeridian", -179.999, 0, 1000},
		{"antimeridian at high latitude", 179.9, 60, 25_000},
		{"near the north pole", 10, 89.9, 5000},
		{"near the south pole", -45, -89.9, 5000},
	}

	for _, testCase := range testCases {
		text, err := s.featureCollection.ToGeographyText(NewCircle(testCase.lon, testCase.lat, testCase.radius))
		s.Require().NoError(err, testCase.name)

		g, err := geography.Parse(text, 4326)
		s.Require().NoError(err, testCase.name)
		member, err := g.GeometryN(0)
		s.Require().NoError(err, testCase.name)
		for _, coord := range member.Figures()[0] {
			s.LessOrEqual(math.Abs(coord.X()), 180.0, testCase.name)
			s.LessOrEqual(math.Abs(coord.Y()), 90.0, testCase.name)
		}

		value, err := s.featureCollection.FromGeographyText(text)
		s.Require().NoError(err, testCase.name)
		features := value.(*geojson.FeatureCollection).Features
		s.Require().Len(features, 1, testCase.name)

		decoded := features[0]
		s.True(IsCircle(decoded), testCase.name)
		center := decoded.Geometry.(*geom.Point)
		s.InDelta(testCase.lon, center.X(), 1e-5, testCase.name)
		s.InDelta(testCase.lat, center.Y(), 1e-5, testCase.name)
		s.InDelta(testCase.radius, decoded.Properties[RadiusProperty], 1, testCase.name)
	}
}

func (s *SQLGeoTestSuite) TestCircleReachingAPole() {
	for _, lat := range []float64{89.99, -89.99} {
		_, err := s.featureCollection.ToGeographyText(NewCircle(10, lat, 5000))
		s.ErrorContains(err, "failed to convert circle: a buffer of 5000 meters", lat)
		s.ErrorContains(err, "reaches a pole", lat)
	}
}
