package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/artie-labs/geosql/clients/mssql"
)

const stdinName = "-"

// Source is one input document.
type Source struct {
	Name string
	Data []byte
}

// ReadSources reads every input path. No path at all, or "-", reads stdin.
func ReadSources(paths []string, stdin io.Reader) ([]Source, error) {
	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	var stdinRead bool
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		var data []byte
		var err error
		if path == stdinName {
			if stdinRead {
				return nil, fmt.Errorf("stdin can only be read once")
			}

			stdinRead = true
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}

		sources = append(sources, Source{Name: path, Data: data})
	}

	return sources, nil
}

// Loader reads geography text saved by a [Storer].
type Loader interface {
	Load(ctx context.Context, id uuid.UUID) (string, error)
}

// LoadSources loads the geography text saved under each id.
func LoadSources(ctx context.Context, loader Loader, ids []string) ([]Source, error) {
	sources := make([]Source, 0, len(ids))
	for _, rawID := range ids {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid geography id %q: %w", rawID, err)
		}

		text, err := loader.Load(ctx, id)
		if err != nil {
			if mssql.IsNotFound(err) {
				return nil, fmt.Errorf("no geography is saved under %s", id)
			}
			return nil, err
		}

		sources = append(sources, Source{Name: rawID, Data: []byte(text)})
	}

	return sources, nil
}
