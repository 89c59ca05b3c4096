package geowalk

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Visitor is called once per node, before the node's children are walked.
// Use [Context.SetExitActivity] to act after the children.
type Visitor interface {
	VisitPoint(ctx *Context, point *geom.Point)
	VisitMultiPoint(ctx *Context, multiPoint *geom.MultiPoint)
	VisitLineString(ctx *Context, lineString *geom.LineString)
	VisitMultiLineString(ctx *Context, multiLineString *geom.MultiLineString)
	VisitPolygon(ctx *Context, polygon *geom.Polygon)
	VisitMultiPolygon(ctx *Context, multiPolygon *geom.MultiPolygon)
	VisitGeometryCollection(ctx *Context, collection *geom.GeometryCollection)
	VisitFeature(ctx *Context, feature *geojson.Feature)
	VisitFeatureCollection(ctx *Context, collection *geojson.FeatureCollection)
}

// NoopVisitor can be embedded so that only the interesting methods need to be implemented.
type NoopVisitor struct{}

func (NoopVisitor) VisitPoint(*Context, *geom.Point)                           {}
func (NoopVisitor) VisitMultiPoint(*Context, *geom.MultiPoint)                 {}
func (NoopVisitor) VisitLineString(*Context, *geom.LineString)                 {}
func (NoopVisitor) VisitMultiLineString(*Context, *geom.MultiLineString)       {}
func (NoopVisitor) VisitPolygon(*Context, *geom.Polygon)                       {}
func (NoopVisitor) VisitMultiPolygon(*Context, *geom.MultiPolygon)             {}
func (NoopVisitor) VisitGeometryCollection(*Context, *geom.GeometryCollection) {}
func (NoopVisitor) VisitFeature(*Context, *geojson.Feature)                    {}
func (NoopVisitor) VisitFeatureCollection(*Context, *geojson.FeatureCollection) {}
