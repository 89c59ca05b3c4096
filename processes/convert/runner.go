package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/artie-labs/geosql/lib/config/constants"
	"github.com/artie-labs/geosql/lib/document"
	"github.com/artie-labs/geosql/lib/logger"
	"github.com/artie-labs/geosql/lib/sqlgeo"
)

// Storer persists geography text.
type Storer interface {
	Save(ctx context.Context, text string) (uuid.UUID, error)
}

type Result struct {
	Name   string
	Output string
	// StoredID is set when the geography was saved.
	StoredID uuid.UUID
}

type Runner struct {
	converter   *sqlgeo.Converter
	direction   constants.Direction
	parallelism int
	store       Storer
}

// NewRunner returns a runner converting inputs in direction. store may be nil.
func NewRunner(converter *sqlgeo.Converter, direction constants.Direction, parallelism int, store Storer) (*Runner, error) {
	if !constants.IsValidDirection(direction) {
		return nil, fmt.Errorf("invalid direction %q", direction)
	}

	return &Runner{
		converter:   converter,
		direction:   direction,
		parallelism: max(parallelism, 1),
		store:       store,
	}, nil
}

// Run converts every source, at most parallelism at a time. Results are in the order of sources.
// The first failure cancels the remaining conversions.
func (r *Runner) Run(ctx context.Context, sources []Source) ([]Result, error) {
	results := make([]Result, len(sources))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.parallelism)
	for i, source := range sources {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			result, err := r.convert(ctx, source)
			if err != nil {
				return fmt.Errorf("failed to convert %q: %w", source.Name, err)
			}

			logger.FromContext(ctx).Debug("Converted input",
				slog.String("name", source.Name),
				slog.String("direction", string(r.direction)),
				slog.Duration("duration", time.Since(start)),
			)

			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) convert(ctx context.Context, source Source) (Result, error) {
	result := Result{Name: source.Name}

	var text string
	switch r.direction {
	case constants.ToText:
		value, err := document.Decode(source.Data)
		if err != nil {
			return Result{}, err
		}

		if text, err = r.converter.ToGeographyText(value); err != nil {
			return Result{}, err
		}
		result.Output = text
	case constants.ToGeoJSON:
		text = strings.TrimSpace(string(source.Data))
		value, err := r.converter.FromGeographyText(text)
		if err != nil {
			return Result{}, err
		}

		data, err := document.Encode(value)
		if err != nil {
			return Result{}, err
		}
		result.Output = string(data)
	}

	if r.store != nil {
		id, err := r.store.Save(ctx, text)
		if err != nil {
			return Result{}, err
		}

		result.StoredID = id
		logger.FromContext(ctx).Info("Saved geography", slog.String("name", source.Name), slog.String("id", id.String()))
	}

	return result, nil
}

// WriteResults writes one output per line.
func WriteResults(w io.Writer, results []Result) error {
	for _, result := range results {
		if _, err := fmt.Fprintln(w, result.Output); err != nil {
			return fmt.Errorf("failed to write output of %q: %w", result.Name, err)
		}
	}

	return nil
}
