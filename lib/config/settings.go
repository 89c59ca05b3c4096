package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"

	"github.com/artie-labs/geosql/lib/config/constants"
)

type Settings struct {
	Config         Config
	VerboseLogging bool
	Direction      constants.Direction
	// Store persists every geography into SQL Server.
	Store bool
	// Load reads the geographies to convert from SQL Server, Inputs are then their ids.
	Load bool
	// Inputs are file paths, "-" or no input at all reads stdin.
	Inputs []string
}

// LoadSettings will take the flags and then parse. The config file is optional, defaults are used without one.
func LoadSettings(args []string) (*Settings, error) {
	var opts struct {
		ConfigFilePath string `short:"c" long:"config" description:"path to the config file"`
		Verbose        bool   `short:"v" long:"verbose" description:"debug logging" optional:"true"`
		Direction      string `short:"d" long:"direction" description:"text converts GeoJSON into geography text, geojson converts geography text into GeoJSON" choice:"text" choice:"geojson" default:"text"`
		Store          bool   `long:"store" description:"save every geography into the configured SQL Server table"`
		Load           bool   `long:"load" description:"convert geographies saved with --store, inputs are their ids"`
		Parallelism    int    `long:"parallelism" description:"number of inputs converted at once, overrides the config file"`
	}

	inputs, err := flags.ParseArgs(&opts, args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse args: %w", err)
	}

	config := Default()
	if opts.ConfigFilePath != "" {
		fileConfig, err := readFileToConfig(opts.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		config = *fileConfig
	}

	if opts.Parallelism != 0 {
		config.Parallelism = opts.Parallelism
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	settings := &Settings{
		Config:         config,
		VerboseLogging: opts.Verbose,
		Direction:      constants.Direction(opts.Direction),
		Store:          opts.Store,
		Load:           opts.Load,
		Inputs:         inputs,
	}

	if !constants.IsValidDirection(settings.Direction) {
		return nil, fmt.Errorf("invalid direction %q", settings.Direction)
	}

	if settings.Store && settings.Config.MSSQL == nil {
		return nil, fmt.Errorf("--store requires the mssql section in the config file")
	}

	if settings.Load {
		if err = settings.validateLoad(); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

func (s *Settings) validateLoad() error {
	if s.Direction != constants.ToGeoJSON {
		return fmt.Errorf("--load only converts into GeoJSON, pass -d %s", constants.ToGeoJSON)
	}

	if s.Store {
		return fmt.Errorf("--load and --store cannot be combined")
	}

	if s.Config.MSSQL == nil {
		return fmt.Errorf("--load requires the mssql section in the config file")
	}

	if len(s.Inputs) == 0 {
		return fmt.Errorf("--load requires at least one id")
	}

	return nil
}
