package config

import (
	"context"
	"fmt"

	"github.com/artie-labs/geosql/lib/config/constants"
)

func InjectSettingsIntoContext(ctx context.Context, settings *Settings) context.Context {
	return context.WithValue(ctx, constants.ConfigKey, settings)
}

func FromContext(ctx context.Context) (*Settings, error) {
	settingsVal := ctx.Value(constants.ConfigKey)
	if settingsVal == nil {
		return nil, fmt.Errorf("failed to grab settings from context")
	}

	settings, isOk := settingsVal.(*Settings)
	if !isOk {
		return nil, fmt.Errorf("settings in context is not of *config.Settings type")
	}

	return settings, nil
}
