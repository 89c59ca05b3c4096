package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artie-labs/geosql/lib/config/constants"
	"github.com/artie-labs/geosql/lib/sqlgeo"
)

const (
	parallelismStart = 1
	parallelismEnd   = 256
)

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Config struct {
	SRID        int          `yaml:"srid"`
	Style       sqlgeo.Style `yaml:"style"`
	Parallelism int          `yaml:"parallelism"`

	MSSQL *MSSQL `yaml:"mssql"`

	Reporting struct {
		Sentry *Sentry `yaml:"sentry"`
	} `yaml:"reporting"`
}

// Default returns the configuration used when no config file is passed.
func Default() Config {
	var config Config
	config.setDefaults()
	return config
}

func (c *Config) setDefaults() {
	if c.SRID == 0 {
		c.SRID = constants.DefaultSRID
	}

	if c.Style == "" {
		c.Style = sqlgeo.AsGeometryCollection
	}

	if c.Parallelism == 0 {
		c.Parallelism = constants.DefaultParallelism
	}

	if c.MSSQL != nil {
		c.MSSQL.setDefaults()
	}
}

func readFileToConfig(pathToConfig string) (*Config, error) {
	file, err := os.Open(pathToConfig)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config Config
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return nil, err
	}

	config.setDefaults()
	return &config, nil
}

// Converter returns the reconstruction settings of the config.
func (c Config) Converter() sqlgeo.Config {
	return sqlgeo.Config{SRID: c.SRID, Style: c.Style}
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := c.Converter().Validate(); err != nil {
		return fmt.Errorf("config is invalid: %w", err)
	}

	if c.Parallelism < parallelismStart || c.Parallelism > parallelismEnd {
		return fmt.Errorf("config is invalid, parallelism is outside of our range: %d, expected start: %d, end: %d",
			c.Parallelism, parallelismStart, parallelismEnd)
	}

	if c.MSSQL != nil {
		if err := c.MSSQL.Validate(); err != nil {
			return fmt.Errorf("config is invalid: %w", err)
		}
	}

	return nil
}
