package sqlgeo

import (
	"fmt"

	"github.com/artie-labs/geosql/lib/geography"
	"github.com/artie-labs/geosql/lib/geowalk"
	"github.com/artie-labs/geosql/lib/wkt"
)

// Converter translates between GeoJSON objects and geography text.
// The zero value is unconfigured; call [Converter.Configure] before converting.
// Configure and Reset must not be called while conversions are in flight, conversions themselves may run concurrently.
type Converter struct {
	cfg *Config
}

func NewConverter(srid int, style Style) (*Converter, error) {
	var c Converter
	if err := c.Configure(srid, style); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Converter) Configure(srid int, style Style) error {
	cfg := Config{SRID: srid, Style: style}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to configure converter: %w", err)
	}

	c.cfg = &cfg
	return nil
}

// Reset drops the configuration, conversions fail until [Converter.Configure] is called again.
func (c *Converter) Reset() {
	c.cfg = nil
}

func (c *Converter) Config() (Config, error) {
	if c.cfg == nil {
		return Config{}, NewPreconditionError("converter is not configured, call Configure with a spatial reference id and a reconstruction style first")
	}

	return *c.cfg, nil
}

// ToGeography converts a GeoJSON geometry, Feature or FeatureCollection into a geography.
func (c *Converter) ToGeography(root any) (*geography.Geography, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	if kind := geowalk.KindOf(root); kind == geowalk.KindUnknown {
		return nil, fmt.Errorf("unsupported GeoJSON object %T", root)
	}

	visitor := newBuilderVisitor(cfg.SRID)
	geowalk.CarryOut(root, visitor)

	g, err := visitor.result()
	if err != nil {
		return nil, fmt.Errorf("failed to build geography: %w", err)
	}

	return g, nil
}

func (c *Converter) ToGeographyText(root any) (string, error) {
	g, err := c.ToGeography(root)
	if err != nil {
		return "", err
	}

	return g.String(), nil
}

// FromGeographyText parses geography text into GeoJSON. Depending on the configured [Style] the result is a
// go-geom geometry or a *geojson.Feature / *geojson.FeatureCollection.
func (c *Converter) FromGeographyText(text string) (any, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	astBuilder, err := NewASTBuilder(cfg, text)
	if err != nil {
		return nil, err
	}

	return wkt.ParseWith(text, astBuilder.Hooks())
}

func (c *Converter) FromGeography(g *geography.Geography) (any, error) {
	return c.FromGeographyText(g.String())
}
