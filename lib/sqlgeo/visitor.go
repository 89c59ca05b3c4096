package sqlgeo

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/artie-labs/geosql/lib/geography"
	"github.com/artie-labs/geosql/lib/geowalk"
	"github.com/artie-labs/geosql/lib/ptr"
)

// builderVisitor replays a GeoJSON tree as builder calls. Circles are buffered on the side since the
// builder has no way to take a curved shape.
type builderVisitor struct {
	srid    int
	builder *geography.Builder
	circles []*geography.Geography
	err     error
}

func newBuilderVisitor(srid int) *builderVisitor {
	return &builderVisitor{srid: srid, builder: geography.NewBuilder(srid)}
}

func (b *builderVisitor) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// bracket begins a geography now and ends it once the node's children have been visited.
func (b *builderVisitor) bracket(ctx *geowalk.Context, kind geography.Type) {
	b.builder.BeginGeography(kind)
	ctx.SetExitActivity(b.builder.EndGeography)
}

func (b *builderVisitor) figure(ctx *geowalk.Context, layout geom.Layout, coords []geom.Coord) {
	if len(coords) == 0 {
		b.fail(fmt.Errorf("%s at depth %d has no positions", ctx.Kind(), ctx.Depth()))
		return
	}

	altitude := func(coord geom.Coord) *float64 {
		if i := layout.ZIndex(); i != -1 {
			return ptr.ToFloat64(coord[i])
		}
		return nil
	}

	b.builder.BeginFigure(coords[0].Y(), coords[0].X(), altitude(coords[0]))
	for _, coord := range coords[1:] {
		b.builder.AddLine(coord.Y(), coord.X(), altitude(coord))
	}
	b.builder.EndFigure()
}

func (b *builderVisitor) VisitGeometryCollection(ctx *geowalk.Context, _ *geom.GeometryCollection) {
	b.bracket(ctx, geography.TypeGeometryCollection)
}

func (b *builderVisitor) VisitFeatureCollection(ctx *geowalk.Context, _ *geojson.FeatureCollection) {
	b.bracket(ctx, geography.TypeGeometryCollection)
}

func (b *builderVisitor) VisitMultiPolygon(ctx *geowalk.Context, _ *geom.MultiPolygon) {
	b.bracket(ctx, geography.TypeMultiPolygon)
}

func (b *builderVisitor) VisitPolygon(ctx *geowalk.Context, polygon *geom.Polygon) {
	if polygon.NumLinearRings() == 0 {
		b.fail(fmt.Errorf("%s at depth %d has no rings", ctx.Kind(), ctx.Depth()))
		return
	}

	b.bracket(ctx, geography.TypePolygon)
}

func (b *builderVisitor) VisitMultiLineString(ctx *geowalk.Context, _ *geom.MultiLineString) {
	b.bracket(ctx, geography.TypeMultiLineString)
}

func (b *builderVisitor) VisitMultiPoint(ctx *geowalk.Context, _ *geom.MultiPoint) {
	b.bracket(ctx, geography.TypeMultiPoint)
}

func (b *builderVisitor) VisitLineString(ctx *geowalk.Context, lineString *geom.LineString) {
	// Polygon rings are figures of the polygon itself.
	ring := ctx.HasParentCorrespondingTo(geowalk.KindPolygon)
	if !ring {
		b.builder.BeginGeography(geography.TypeLineString)
	}

	b.figure(ctx, lineString.Layout(), lineString.Coords())

	if !ring {
		b.builder.EndGeography()
	}
}

func (b *builderVisitor) VisitPoint(ctx *geowalk.Context, point *geom.Point) {
	if ctx.HasParentCorrespondingTo(geowalk.KindFeature) {
		feature, err := geowalk.Repurpose[*geojson.Feature](ctx.Parent())
		if err != nil {
			b.fail(err)
			return
		}

		if IsCircle(feature) {
			return
		}
	}

	var coords []geom.Coord
	if !point.Empty() {
		coords = []geom.Coord{point.Coords()}
	}

	b.builder.BeginGeography(geography.TypePoint)
	b.figure(ctx, point.Layout(), coords)
	b.builder.EndGeography()
}

func (b *builderVisitor) VisitFeature(_ *geowalk.Context, feature *geojson.Feature) {
	if !IsCircle(feature) {
		return
	}

	circle, err := circleToGeography(feature, b.srid)
	if err != nil {
		b.fail(fmt.Errorf("failed to convert circle: %w", err))
		return
	}

	b.circles = append(b.circles, circle)
}

// result returns the builder's geography, merged with any circles seen along the way.
func (b *builderVisitor) result() (*geography.Geography, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.circles) == 0 {
		return b.builder.ConstructedGeography()
	}

	return reconcileCircles(b.builder, b.circles, b.srid)
}
