package sqlgeo

import (
	"fmt"
	"slices"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/artie-labs/geosql/lib/wkt"
)

// ASTBuilder supplies the construction hooks that turn a geography parse tree into GeoJSON objects.
type ASTBuilder interface {
	Hooks() wkt.Hooks
}

// NewASTBuilder returns the builder for cfg.Style. src must be the text that is about to be parsed.
func NewASTBuilder(cfg Config, src string) (ASTBuilder, error) {
	switch cfg.Style {
	case AsGeometryCollection:
		return geometryCollectionStyle{}, nil
	case AsFeatureCollection:
		return featureCollectionStyle{src: src, srid: cfg.SRID}, nil
	default:
		return nil, fmt.Errorf("unsupported reconstruction style %q", cfg.Style)
	}
}

type geometryCollectionStyle struct{}

func (geometryCollectionStyle) Hooks() wkt.Hooks {
	hooks := geometryHooks()
	hooks[wkt.TermCircle] = func(node *wkt.Node) error {
		return unsupportedCircle(node, AsGeometryCollection)
	}
	hooks[wkt.TermGeometryCollection] = buildGeometryCollection
	return hooks
}

type featureCollectionStyle struct {
	src  string
	srid int
}

func (f featureCollectionStyle) Hooks() wkt.Hooks {
	hooks := geometryHooks()
	hooks[wkt.TermCircle] = func(node *wkt.Node) error {
		if !isTopLevel(node.Parent) {
			return unsupportedCircle(node, AsFeatureCollection)
		}

		feature, err := circleFromText(node.Text(f.src), f.srid)
		if err != nil {
			return err
		}

		node.Value = feature
		return nil
	}
	hooks[wkt.TermGeometry] = func(node *wkt.Node) error {
		value := node.Children[0].Value
		if geometry, ok := value.(geom.T); ok && isTopLevel(node) {
			value = &geojson.Feature{Geometry: geometry}
		}

		node.Value = value
		return nil
	}
	hooks[wkt.TermGeometryCollection] = func(node *wkt.Node) error {
		if node.Parent.Term != wkt.TermRoot {
			// A nested collection stays a geometry, its enclosing geometry node wraps it.
			return buildGeometryCollection(node)
		}

		features, err := wkt.Collect[*geojson.Feature](node, wkt.TermGeometry)
		if err != nil {
			return err
		}

		node.Value = &geojson.FeatureCollection{Features: append(make([]*geojson.Feature, 0, len(features)), features...)}
		return nil
	}
	return hooks
}

// isTopLevel returns true for a geometry node that is the root geometry or a member of the root collection.
func isTopLevel(geometry *wkt.Node) bool {
	parent := geometry.Parent
	if parent.Term == wkt.TermRoot {
		return true
	}

	return parent.Term == wkt.TermGeometryCollection && parent.Parent.Term == wkt.TermRoot
}

func unsupportedCircle(node *wkt.Node, style Style) error {
	return NewUnsupportedShapeError(fmt.Sprintf("%s cannot be represented with the %q reconstruction style, (%d:%d)",
		wkt.KeywordCurvePolygon, style, node.Span.Line, node.Span.Column))
}

func buildGeometryCollection(node *wkt.Node) error {
	members, err := wkt.Collect[geom.T](node, wkt.TermGeometry)
	if err != nil {
		return err
	}

	collection := geom.NewGeometryCollection()
	if err = collection.Push(members...); err != nil {
		return node.Errorf("failed to build GEOMETRYCOLLECTION: %v", err)
	}

	node.Value = collection
	return nil
}

// geometryHooks builds go-geom geometries. Styles override the collection and circle terms.
func geometryHooks() wkt.Hooks {
	passThrough := func(node *wkt.Node) error {
		node.Value = node.Children[0].Value
		return nil
	}

	return wkt.Hooks{
		wkt.TermCoordPair: func(node *wkt.Node) error {
			node.Value = geom.Coord(slices.Clone(node.Numbers))
			return nil
		},
		wkt.TermCoordSet: func(node *wkt.Node) error {
			coords, err := wkt.Collect[geom.Coord](node, wkt.TermCoordPair)
			node.Value = coords
			return err
		},
		wkt.TermMultiCoordSet: func(node *wkt.Node) error {
			coordSets, err := wkt.Collect[[]geom.Coord](node, wkt.TermCoordSet)
			node.Value = coordSets
			return err
		},
		wkt.TermPoint: func(node *wkt.Node) error {
			coords, err := wkt.First[[]geom.Coord](node, wkt.TermCoordSet)
			if err != nil {
				return err
			}

			if len(coords) != 1 {
				return node.Errorf("a POINT has exactly one position, got %d", len(coords))
			}

			layout := layoutOf(coords)
			point, err := geom.NewPoint(layout).SetCoords(fit(layout, coords)[0])
			return setValue(node, point, err)
		},
		wkt.TermMultiPoint: func(node *wkt.Node) error {
			coordSets, err := wkt.First[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			// Each member is written as its own coordinate set, only its first position is kept.
			coords := make([]geom.Coord, 0, len(coordSets))
			for _, coordSet := range coordSets {
				coords = append(coords, coordSet[0])
			}

			layout := layoutOf(coords)
			multiPoint, err := geom.NewMultiPoint(layout).SetCoords(fit(layout, coords))
			return setValue(node, multiPoint, err)
		},
		wkt.TermLineString: func(node *wkt.Node) error {
			coords, err := wkt.First[[]geom.Coord](node, wkt.TermCoordSet)
			if err != nil {
				return err
			}

			layout := layoutOf(coords)
			lineString, err := geom.NewLineString(layout).SetCoords(fit(layout, coords))
			return setValue(node, lineString, err)
		},
		wkt.TermMultiLineString: func(node *wkt.Node) error {
			coordSets, err := wkt.First[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			layout := layoutOf(coordSets...)
			multiLineString, err := geom.NewMultiLineString(layout).SetCoords(fitAll(layout, coordSets))
			return setValue(node, multiLineString, err)
		},
		wkt.TermPolygon: func(node *wkt.Node) error {
			rings, err := wkt.First[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			layout := layoutOf(rings...)
			polygon, err := geom.NewPolygon(layout).SetCoords(fitAll(layout, rings))
			return setValue(node, polygon, err)
		},
		wkt.TermMultiPolygon: func(node *wkt.Node) error {
			polygons, err := wkt.Collect[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			var all [][]geom.Coord
			for _, rings := range polygons {
				all = append(all, rings...)
			}

			layout := layoutOf(all...)
			coords := make([][][]geom.Coord, 0, len(polygons))
			for _, rings := range polygons {
				coords = append(coords, fitAll(layout, rings))
			}

			multiPolygon, err := geom.NewMultiPolygon(layout).SetCoords(coords)
			return setValue(node, multiPolygon, err)
		},
		wkt.TermGeometry: passThrough,
		wkt.TermRoot:     passThrough,
	}
}

func setValue(node *wkt.Node, geometry geom.T, err error) error {
	if err != nil {
		return node.Errorf("failed to build %s: %v", node.Term, err)
	}

	node.Value = geometry
	return nil
}

// layoutOf returns XYZ when every position carries an altitude and XY otherwise.
func layoutOf(coordSets ...[]geom.Coord) geom.Layout {
	var count int
	for _, coords := range coordSets {
		for _, coord := range coords {
			if len(coord) < 3 {
				return geom.XY
			}
			count++
		}
	}

	if count == 0 {
		return geom.XY
	}
	return geom.XYZ
}

func fit(layout geom.Layout, coords []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(coords))
	for i, coord := range coords {
		out[i] = coord[:layout.Stride()]
	}
	return out
}

func fitAll(layout geom.Layout, coordSets [][]geom.Coord) [][]geom.Coord {
	out := make([][]geom.Coord, len(coordSets))
	for i, coords := range coordSets {
		out[i] = fit(layout, coords)
	}
	return out
}
