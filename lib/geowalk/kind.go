package geowalk

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Kind is the variant tag of a node the walker understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindPoint
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindGeometryCollection
	KindFeature
	KindFeatureCollection
)

var kindNames = map[Kind]string{
	KindUnknown:            "Unknown",
	KindPoint:              "Point",
	KindMultiPoint:         "MultiPoint",
	KindLineString:         "LineString",
	KindMultiLineString:    "MultiLineString",
	KindPolygon:            "Polygon",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
	KindFeature:            "Feature",
	KindFeatureCollection:  "FeatureCollection",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindUnknown]
}

// KindOf returns the tag for node. Typed nil pointers are reported as [KindUnknown].
func KindOf(node any) Kind {
	switch castedNode := node.(type) {
	case *geom.Point:
		if castedNode != nil {
			return KindPoint
		}
	case *geom.MultiPoint:
		if castedNode != nil {
			return KindMultiPoint
		}
	case *geom.LineString:
		if castedNode != nil {
			return KindLineString
		}
	case *geom.MultiLineString:
		if castedNode != nil {
			return KindMultiLineString
		}
	case *geom.Polygon:
		if castedNode != nil {
			return KindPolygon
		}
	case *geom.MultiPolygon:
		if castedNode != nil {
			return KindMultiPolygon
		}
	case *geom.GeometryCollection:
		if castedNode != nil {
			return KindGeometryCollection
		}
	case *geojson.Feature:
		if castedNode != nil {
			return KindFeature
		}
	case *geojson.FeatureCollection:
		if castedNode != nil {
			return KindFeatureCollection
		}
	}

	return KindUnknown
}
