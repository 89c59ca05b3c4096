package sqlgeo

import (
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/artie-labs/geosql/lib/wkt"
)

func (s *SQLGeoTestSuite) TestToGeographyText() {
	testCases := []struct {
		name     string
		root     any
		expected string
	}{
		{"point", testPoint, "POINT (100 0)"},
		{"multipoint", testMultiPoint, "MULTIPOINT ((100 0), (101 1))"},
		{"linestring", testLineString, "LINESTRING (100 0, 101 1)"},
		{"multilinestring", testMultiLineString, "MULTILINESTRING ((100 0, 101 1), (102 2, 103 3))"},
		{"polygon", testPolygon, testPolygonText},
		{"multipolygon", testMultiPolygon, testMultiPolygonText},
		{"collection", s.collection(testPoint, testLineString), "GEOMETRYCOLLECTION (POINT (100 0), LINESTRING (100 0, 101 1))"},
		{"empty collection", geom.NewGeometryCollection(), "GEOMETRYCOLLECTION EMPTY"},
		{"feature", &geojson.Feature{Geometry: testPolygon, Properties: map[string]any{"name": "square"}}, testPolygonText},
		{
			name: "feature collection",
			root: &geojson.FeatureCollection{Features: []*geojson.Feature{
				{Geometry: testMultiPoint},
				{Geometry: testMultiLineString},
			}},
			expected: "GEOMETRYCOLLECTION (MULTIPOINT ((100 0), (101 1)), MULTILINESTRING ((100 0, 101 1), (102 2, 103 3)))",
		},
		{"altitude", geom.NewPoint(geom.XYZ).MustSetCoords(geom.Coord{1, 2, 3}), "POINT (1 2 3)"},
	}

	for _, testCase := range testCases {
		text, err := s.geometryCollection.ToGeographyText(testCase.root)
		s.NoError(err, testCase.name)
		s.Equal(testCase.expected, text, testCase.name)
	}
}

func (s *SQLGeoTestSuite) TestRoundTrip() {
	for _, geometry := range []geom.T{
		testPoint,
		testMultiPoint,
		testLineString,
		testMultiLineString,
		testPolygon,
		testMultiPolygon,
		s.collection(testPoint, testPolygon, testMultiPolygon, s.collection(testLineString)),
		geom.NewLineString(geom.XYZ).MustSetCoords([]geom.Coord{{1, 2, 3}, {4, 5, 6}}),
	} {
		text, err := s.geometryCollection.ToGeographyText(geometry)
		s.Require().NoError(err)

		decoded, err := s.geometryCollection.FromGeographyText(text)
		s.Require().NoError(err, text)

		expected, err := geojson.Marshal(geometry)
		s.Require().NoError(err)
		actual, err := geojson.Marshal(decoded.(geom.T))
		s.Require().NoError(err)
		s.JSONEq(string(expected), string(actual), text)

		again, err := s.geometryCollection.ToGeographyText(decoded)
		s.NoError(err)
		s.Equal(text, again)
	}
}

func (s *SQLGeoTestSuite) TestRingsAreNotLineStrings() {
	for _, geometry := range []geom.T{testPolygon, testMultiPolygon, s.collection(testPolygon)} {
		text, err := s.geometryCollection.ToGeographyText(geometry)
		s.NoError(err)
		s.NotContains(text, wkt.KeywordLineString)
	}
}

func (s *SQLGeoTestSuite) TestFromGeographyText_NegativeNumbers() {
	value, err := s.geometryCollection.FromGeographyText("POLYGON ((-1.5 2.5, -1.5 -2.5, 1.5 -2.5, -1.5 2.5))")
	s.Require().NoError(err)

	polygon, ok := value.(*geom.Polygon)
	s.Require().True(ok)
	s.Equal([]float64{-1.5, 2.5, -1.5, -2.5, 1.5, -2.5, -1.5, 2.5}, polygon.FlatCoords())
}

func (s *SQLGeoTestSuite) TestFromGeographyText_EmptyCollection() {
	value, err := s.geometryCollection.FromGeographyText("GEOMETRYCOLLECTION EMPTY")
	s.Require().NoError(err)
	collection, ok := value.(*geom.GeometryCollection)
	s.Require().True(ok)
	s.Equal(0, collection.NumGeoms())

	value, err = s.featureCollection.FromGeographyText("GEOMETRYCOLLECTION EMPTY")
	s.Require().NoError(err)
	featureCollection, ok := value.(*geojson.FeatureCollection)
	s.Require().True(ok)
	s.Empty(featureCollection.Features)
}

func (s *SQLGeoTestSuite) TestFromGeographyText_MixedAltitude() {
	value, err := s.geometryCollection.FromGeographyText("LINESTRING (1 2 3, 4 5)")
	s.Require().NoError(err)

	lineString := value.(*geom.LineString)
	s.Equal(geom.XY, lineString.Layout())
	s.Equal([]float64{1, 2, 4, 5}, lineString.FlatCoords())
}

func (s *SQLGeoTestSuite) TestFromGeographyText_FeatureCollection() {
	value, err := s.featureCollection.FromGeographyText("GEOMETRYCOLLECTION (POINT (100 0), " + testPolygonText + ", GEOMETRYCOLLECTION (POINT (1 2)))")
	s.Require().NoError(err)

	featureCollection, ok := value.(*geojson.FeatureCollection)
	s.Require().True(ok)
	s.Require().Len(featureCollection.Features, 3)

	s.IsType(&geom.Point{}, featureCollection.Features[0].Geometry)
	s.Nil(featureCollection.Features[0].Properties)
	s.IsType(&geom.Polygon{}, featureCollection.Features[1].Geometry)

	nested, ok := featureCollection.Features[2].Geometry.(*geom.GeometryCollection)
	s.Require().True(ok)
	s.Equal(1, nested.NumGeoms())
	s.IsType(&geom.Point{}, nested.Geom(0))

	value, err = s.featureCollection.FromGeographyText(testMultiPolygonText)
	s.Require().NoError(err)
	feature, ok := value.(*geojson.Feature)
	s.Require().True(ok)
	s.IsType(&geom.MultiPolygon{}, feature.Geometry)
}

func (s *SQLGeoTestSuite) TestFromGeographyText_Errors() {
	_, err := s.geometryCollection.FromGeographyText("POINT (1 2")
	s.True(wkt.IsParseError(err))

	_, err = s.geometryCollection.FromGeographyText("POINT (1 2, 3 4)")
	s.ErrorContains(err, "a POINT has exactly one position, got 2, (1:1)")

	_, err = s.featureCollection.FromGeographyText("MULTIPOINT EMPTY")
	s.True(wkt.IsParseError(err))
}

func (s *SQLGeoTestSuite) TestToGeographyText_Errors() {
	_, err := s.geometryCollection.ToGeographyText("POINT (1 2)")
	s.ErrorContains(err, "unsupported GeoJSON object string")

	_, err = s.geometryCollection.ToGeographyText(geom.NewLineString(geom.XY))
	s.ErrorContains(err, "failed to build geography: LineString at depth 0 has no positions")

	_, err = s.geometryCollection.ToGeographyText(&geojson.Feature{})
	s.ErrorContains(err, "geography is incomplete")

	_, err = s.geometryCollection.ToGeographyText(geom.NewPolygon(geom.XY))
	s.ErrorContains(err, "failed to build geography: Polygon at depth 0 has no rings")

	withEmptyMember := geom.NewMultiPolygon(geom.XY).MustSetCoords([][][]geom.Coord{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{},
	})
	_, err = s.geometryCollection.ToGeographyText(withEmptyMember)
	s.ErrorContains(err, "failed to build geography: Polygon at depth 1 has no rings")
}

func (s *SQLGeoTestSuite) TestUnconfigured() {
	var converter Converter

	_, err := converter.ToGeographyText(testPoint)
	s.True(IsPreconditionError(err))
	s.ErrorContains(err, "call Configure")

	_, err = converter.FromGeographyText("POINT (1 2)")
	s.True(IsPreconditionError(err))

	s.NoError(converter.Configure(4326, AsGeometryCollection))
	text, err := converter.ToGeographyText(testPoint)
	s.NoError(err)
	s.Equal("POINT (100 0)", text)

	converter.Reset()
	_, err = converter.ToGeographyText(testPoint)
	s.True(IsPreconditionError(err))
}

func (s *SQLGeoTestSuite) TestConfigure() {
	var converter Converter
	s.ErrorContains(converter.Configure(0, AsGeometryCollection), "failed to configure converter: srid must be positive, got 0")
	s.ErrorContains(converter.Configure(4326, Style("polygons")), `unsupported reconstruction style "polygons"`)

	_, err := NewConverter(-1, AsFeatureCollection)
	s.Error(err)

	cfg, err := s.featureCollection.Config()
	s.NoError(err)
	s.Equal(Config{SRID: 4326, Style: AsFeatureCollection}, cfg)
}

func (s *SQLGeoTestSuite) TestFromGeography() {
	g, err := s.geometryCollection.ToGeography(testMultiPoint)
	s.Require().NoError(err)
	s.Equal(4326, g.SRID())

	value, err := s.geometryCollection.FromGeography(g)
	s.Require().NoError(err)
	s.Equal(testMultiPoint.FlatCoords(), value.(*geom.MultiPoint).FlatCoords())
	s.True(strings.HasPrefix(g.String(), wkt.KeywordMultiPoint))
}
