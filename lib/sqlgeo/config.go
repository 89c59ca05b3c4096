package sqlgeo

import "fmt"

// Style selects how geography text is turned back into GeoJSON.
type Style string

const (
	// AsGeometryCollection rebuilds plain geometries. Circles cannot be represented and are rejected.
	AsGeometryCollection Style = "geometryCollection"
	// AsFeatureCollection wraps every member of the top-level collection in a Feature, circles included.
	AsFeatureCollection Style = "featureCollection"
)

func (s Style) Valid() bool {
	switch s {
	case AsGeometryCollection, AsFeatureCollection:
		return true
	default:
		return false
	}
}

type Config struct {
	// SRID is the spatial reference id of produced geographies, e.g. 4326 for WGS 84.
	SRID  int
	Style Style
}

func (c Config) Validate() error {
	if c.SRID <= 0 {
		return fmt.Errorf("srid must be positive, got %d", c.SRID)
	}

	if !c.Style.Valid() {
		return fmt.Errorf("unsupported reconstruction style %q", c.Style)
	}

	return nil
}
