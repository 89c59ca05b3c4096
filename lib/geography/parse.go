package geography

import (
	"slices"

	"github.com/twpayne/go-geom"

	"github.com/artie-labs/geosql/lib/wkt"
)

// Parse reads geography text into a [Geography] with the given SRID.
func Parse(text string, srid int) (*Geography, error) {
	value, err := wkt.ParseWith(text, hooks(srid))
	if err != nil {
		return nil, err
	}

	return value.(*Geography), nil
}

func hooks(srid int) wkt.Hooks {
	withFigures := func(kind Type) wkt.Hook {
		return func(node *wkt.Node) error {
			figures, err := wkt.Collect[[]geom.Coord](node, wkt.TermCoordSet)
			if err != nil {
				return err
			}

			if kind == TypePoint && len(figures[0]) != 1 {
				return node.Errorf("a POINT has exactly one position, got %d", len(figures[0]))
			}

			node.Value = &Geography{kind: kind, srid: srid, figures: figures}
			return nil
		}
	}

	withMembers := func(kind, memberKind Type) wkt.Hook {
		return func(node *wkt.Node) error {
			figures, err := wkt.First[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			g := &Geography{kind: kind, srid: srid}
			for _, figure := range figures {
				if memberKind == TypePoint && len(figure) != 1 {
					return node.Errorf("a MULTIPOINT member has exactly one position, got %d", len(figure))
				}

				g.members = append(g.members, &Geography{kind: memberKind, srid: srid, figures: [][]geom.Coord{figure}})
			}

			node.Value = g
			return nil
		}
	}

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
			figures, err := wkt.Collect[[]geom.Coord](node, wkt.TermCoordSet)
			node.Value = figures
			return err
		},
		wkt.TermPoint:           withFigures(TypePoint),
		wkt.TermLineString:      withFigures(TypeLineString),
		wkt.TermCircle:          withFigures(TypeCurvePolygon),
		wkt.TermMultiPoint:      withMembers(TypeMultiPoint, TypePoint),
		wkt.TermMultiLineString: withMembers(TypeMultiLineString, TypeLineString),
		wkt.TermPolygon: func(node *wkt.Node) error {
			figures, err := wkt.First[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			node.Value = &Geography{kind: TypePolygon, srid: srid, figures: figures}
			return nil
		},
		wkt.TermMultiPolygon: func(node *wkt.Node) error {
			polygons, err := wkt.Collect[[][]geom.Coord](node, wkt.TermMultiCoordSet)
			if err != nil {
				return err
			}

			g := &Geography{kind: TypeMultiPolygon, srid: srid}
			for _, figures := range polygons {
				g.members = append(g.members, &Geography{kind: TypePolygon, srid: srid, figures: figures})
			}

			node.Value = g
			return nil
		},
		wkt.TermGeometryCollection: func(node *wkt.Node) error {
			members, err := wkt.Collect[*Geography](node, wkt.TermGeometry)
			if err != nil {
				return err
			}

			node.Value = &Geography{kind: TypeGeometryCollection, srid: srid, members: members}
			return nil
		},
		wkt.TermGeometry: passThrough,
		wkt.TermRoot:     passThrough,
	}
}
