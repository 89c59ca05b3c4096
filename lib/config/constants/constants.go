package constants

type contextKey string

const ConfigKey contextKey = "__settings"

const (
	DefaultSRID        = 4326
	DefaultParallelism = 4
	DefaultMSSQLTable  = "geographies"
)

// Direction is the way the CLI converts its inputs.
type Direction string

const (
	// ToText converts GeoJSON documents into geography text.
	ToText Direction = "text"
	// ToGeoJSON converts geography text into GeoJSON documents.
	ToGeoJSON Direction = "geojson"
)

func IsValidDirection(direction Direction) bool {
	switch direction {
	case ToText, ToGeoJSON:
		return true
	default:
		return false
	}
}
