package geowalk

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// CarryOut walks visitor depth-first through root.
// Children are visited in declaration order and exit activities fire once a node's subtree is done.
// Nodes of an unknown kind are skipped together with their subtree.
func CarryOut(root any, visitor Visitor) {
	accept(NewContext(root), visitor)
}

func accept(ctx *Context, visitor Visitor) {
	switch ctx.Kind() {
	case KindPoint:
		visitor.VisitPoint(ctx, ctx.node.(*geom.Point))
	case KindMultiPoint:
		multiPoint := ctx.node.(*geom.MultiPoint)
		visitor.VisitMultiPoint(ctx, multiPoint)
		for i := range multiPoint.NumPoints() {
			accept(ctx.SpawnForChild(multiPoint.Point(i)), visitor)
		}
	case KindLineString:
		visitor.VisitLineString(ctx, ctx.node.(*geom.LineString))
	case KindMultiLineString:
		multiLineString := ctx.node.(*geom.MultiLineString)
		visitor.VisitMultiLineString(ctx, multiLineString)
		for i := range multiLineString.NumLineStrings() {
			accept(ctx.SpawnForChild(multiLineString.LineString(i)), visitor)
		}
	case KindPolygon:
		polygon := ctx.node.(*geom.Polygon)
		visitor.VisitPolygon(ctx, polygon)
		for i := range polygon.NumLinearRings() {
			ring := polygon.LinearRing(i)
			accept(ctx.SpawnForChild(geom.NewLineStringFlat(ring.Layout(), ring.FlatCoords())), visitor)
		}
	case KindMultiPolygon:
		multiPolygon := ctx.node.(*geom.MultiPolygon)
		visitor.VisitMultiPolygon(ctx, multiPolygon)
		for i := range multiPolygon.NumPolygons() {
			accept(ctx.SpawnForChild(multiPolygon.Polygon(i)), visitor)
		}
	case KindGeometryCollection:
		collection := ctx.node.(*geom.GeometryCollection)
		visitor.VisitGeometryCollection(ctx, collection)
		for _, member := range collection.Geoms() {
			accept(ctx.SpawnForChild(member), visitor)
		}
	case KindFeatureCollection:
		collection := ctx.node.(*geojson.FeatureCollection)
		visitor.VisitFeatureCollection(ctx, collection)
		for _, feature := range collection.Features {
			accept(ctx.SpawnForChild(feature), visitor)
		}
	case KindFeature:
		feature := ctx.node.(*geojson.Feature)
		visitor.VisitFeature(ctx, feature)
		if feature.Geometry != nil {
			accept(ctx.SpawnForChild(feature.Geometry), visitor)
		}
	default:
		return
	}

	ctx.callExitActivities()
}
