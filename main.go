package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/artie-labs/geosql/clients/mssql"
	"github.com/artie-labs/geosql/lib/config"
	"github.com/artie-labs/geosql/lib/logger"
	"github.com/artie-labs/geosql/lib/sqlgeo"
	"github.com/artie-labs/geosql/processes/convert"
)

func main() {
	// Parse args into settings.
	settings, err := config.LoadSettings(os.Args[1:])
	if err != nil {
		logger.Fatal("Failed to load settings", slog.Any("err", err))
	}

	// Initialize default logger
	log, usingSentry := logger.NewLogger(settings)
	slog.SetDefault(log)

	ctx := config.InjectSettingsIntoContext(context.Background(), settings)
	ctx = logger.InjectLoggerIntoCtx(ctx, log)

	err = run(ctx)
	if usingSentry {
		sentry.Flush(2 * time.Second)
	}

	if err != nil {
		logger.Fatal("Failed to convert", slog.Any("err", err))
	}
}

func run(ctx context.Context) error {
	settings, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	slog.Debug("Config is loaded",
		slog.Int("srid", settings.Config.SRID),
		slog.String("style", string(settings.Config.Style)),
		slog.Int("parallelism", settings.Config.Parallelism),
		slog.String("direction", string(settings.Direction)),
	)

	converter, err := sqlgeo.NewConverter(settings.Config.SRID, settings.Config.Style)
	if err != nil {
		return err
	}

	var store *mssql.Store
	if settings.Store || settings.Load {
		if store, err = mssql.LoadStore(ctx, settings.Config); err != nil {
			return fmt.Errorf("failed to connect to SQL Server: %w", err)
		}
		defer store.Close()
	}

	var storer convert.Storer
	var sources []convert.Source
	if settings.Load {
		sources, err = convert.LoadSources(ctx, store, settings.Inputs)
	} else {
		if settings.Store {
			if err = store.CreateTable(ctx); err != nil {
				return err
			}
			storer = store
		}

		sources, err = convert.ReadSources(settings.Inputs, os.Stdin)
	}
	if err != nil {
		return err
	}

	runner, err := convert.NewRunner(converter, settings.Direction, settings.Config.Parallelism, storer)
	if err != nil {
		return err
	}

	results, err := runner.Run(ctx, sources)
	if err != nil {
		return err
	}

	return convert.WriteResults(os.Stdout, results)
}
