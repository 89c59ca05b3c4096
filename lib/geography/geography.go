package geography

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// Type is the OpenGIS type of a [Geography].
type Type int

const (
	TypeUnknown Type = iota
	TypePoint
	TypeLineString
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
	TypeCurvePolygon
)

var typeKeywords = [...]string{
	TypeUnknown:            "UNKNOWN",
	TypePoint:              "POINT",
	TypeLineString:         "LINESTRING",
	TypePolygon:            "POLYGON",
	TypeMultiPoint:         "MULTIPOINT",
	TypeMultiLineString:    "MULTILINESTRING",
	TypeMultiPolygon:       "MULTIPOLYGON",
	TypeGeometryCollection: "GEOMETRYCOLLECTION",
	TypeCurvePolygon:       "CURVEPOLYGON",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeKeywords) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeKeywords[t]
}

// hasFigures returns true for the types that are made of figures rather than member geographies.
func (t Type) hasFigures() bool {
	switch t {
	case TypePoint, TypeLineString, TypePolygon, TypeCurvePolygon:
		return true
	default:
		return false
	}
}

// allowsMember returns true if a geography of type child can be nested directly under t.
func (t Type) allowsMember(child Type) bool {
	switch t {
	case TypeMultiPoint:
		return child == TypePoint
	case TypeMultiLineString:
		return child == TypeLineString
	case TypeMultiPolygon:
		return child == TypePolygon
	case TypeGeometryCollection:
		return child != TypeUnknown
	default:
		return false
	}
}

// Geography is an immutable geographic value. Positions are stored as (longitude, latitude[, altitude]).
type Geography struct {
	kind    Type
	srid    int
	figures [][]geom.Coord
	members []*Geography
}

func (g *Geography) Type() Type {
	return g.kind
}

func (g *Geography) SRID() int {
	return g.srid
}

// Figures returns the position lists of a Point, LineString, Polygon or CurvePolygon.
func (g *Geography) Figures() [][]geom.Coord {
	return g.figures
}

// NumGeometries returns the number of members of a multi geography or collection, and 1 for anything else.
func (g *Geography) NumGeometries() int {
	if g.kind.hasFigures() {
		return 1
	}
	return len(g.members)
}

// GeometryN returns the i-th member (0-based). A geography without members is its own single member.
func (g *Geography) GeometryN(i int) (*Geography, error) {
	if i < 0 || i >= g.NumGeometries() {
		return nil, fmt.Errorf("geometry index %d out of range [0, %d)", i, g.NumGeometries())
	}

	if g.kind.hasFigures() {
		return g, nil
	}
	return g.members[i], nil
}

// IsEmpty returns true when the geography holds no position at all.
func (g *Geography) IsEmpty() bool {
	for _, figure := range g.figures {
		if len(figure) > 0 {
			return false
		}
	}

	for _, member := range g.members {
		if !member.IsEmpty() {
			return false
		}
	}

	return true
}

// String renders the geography text, e.g. `POLYGON ((0 0, 1 0, 1 1, 0 0))`.
func (g *Geography) String() string {
	var sb strings.Builder
	g.write(&sb)
	return sb.String()
}

func (g *Geography) write(sb *strings.Builder) {
	sb.WriteString(g.kind.String())
	if g.IsEmpty() {
		sb.WriteString(" EMPTY")
		return
	}

	sb.WriteString(" ")
	switch g.kind {
	case TypePoint, TypeLineString:
		writeFigure(sb, g.figures[0])
	case TypePolygon:
		writeFigures(sb, g.figures)
	case TypeCurvePolygon:
		sb.WriteString("(CIRCULARSTRING ")
		writeFigure(sb, g.figures[0])
		sb.WriteString(")")
	case TypeMultiPoint, TypeMultiLineString, TypeMultiPolygon:
		sb.WriteString("(")
		for i, member := range g.members {
			if i > 0 {
				sb.WriteString(", ")
			}
			member.writeBody(sb)
		}
		sb.WriteString(")")
	case TypeGeometryCollection:
		sb.WriteString("(")
		for i, member := range g.members {
			if i > 0 {
				sb.WriteString(", ")
			}
			member.write(sb)
		}
		sb.WriteString(")")
	}
}

// writeBody writes a member of a multi geography, which omits its own keyword.
func (g *Geography) writeBody(sb *strings.Builder) {
	if g.kind == TypePolygon {
		writeFigures(sb, g.figures)
		return
	}

	if len(g.figures) == 0 {
		sb.WriteString("EMPTY")
		return
	}
	writeFigure(sb, g.figures[0])
}

func writeFigures(sb *strings.Builder, figures [][]geom.Coord) {
	sb.WriteString("(")
	for i, figure := range figures {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeFigure(sb, figure)
	}
	sb.WriteString(")")
}

func writeFigure(sb *strings.Builder, figure []geom.Coord) {
	sb.WriteString("(")
	for i, coord := range figure {
		if i > 0 {
			sb.WriteString(", ")
		}

		for j, value := range coord {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
		}
	}
	sb.WriteString(")")
}
