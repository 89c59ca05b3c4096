package document

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	typeFeature           = "Feature"
	typeFeatureCollection = "FeatureCollection"
)

// Decode reads a GeoJSON document. The result is a *geojson.FeatureCollection, a *geojson.Feature or a go-geom geometry.
func Decode(data []byte) (any, error) {
	typeValue := json.Get(data, "type")
	if err := typeValue.LastError(); err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON type: %w", err)
	}

	if typeValue.ValueType() != jsoniter.StringValue {
		return nil, fmt.Errorf("GeoJSON type must be a string, got %v", typeValue.ValueType())
	}

	switch typeName := typeValue.ToString(); typeName {
	case typeFeatureCollection:
		var featureCollection geojson.FeatureCollection
		if err := json.Unmarshal(data, &featureCollection); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", typeName, err)
		}
		return &featureCollection, nil
	case typeFeature:
		var feature geojson.Feature
		if err := json.Unmarshal(data, &feature); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", typeName, err)
		}
		return &feature, nil
	default:
		var geometry geom.T
		if err := geojson.Unmarshal(data, &geometry); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", typeName, err)
		}
		return geometry, nil
	}
}

// Encode writes value as GeoJSON.
func Encode(value any) ([]byte, error) {
	if geometry, ok := value.(geom.T); ok {
		return geojson.Marshal(geometry)
	}

	switch value.(type) {
	case *geojson.Feature, *geojson.FeatureCollection:
		return json.Marshal(value)
	default:
		return nil, fmt.Errorf("unsupported GeoJSON object %T", value)
	}
}
