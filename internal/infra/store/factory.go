package store

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/infra/config"
)

// sqliteSettings are the driver settings for the sqlite backend.
type sqliteSettings struct {
	Path string `mapstructure:"path" default:"hymnbox.db" validate:"required"`
}

// NewFromConfig creates a store backend from configuration.
func NewFromConfig(cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		zlog.Info().Msg("using in-memory state store")
		return NewMemory(), nil

	case "sqlite":
		var settings sqliteSettings
		if err := mapstructure.Decode(cfg.Store.Settings, &settings); err != nil {
			return nil, errors.Wrap(err, "failed to decode sqlite store settings")
		}
		if err := defaults.Set(&settings); err != nil {
			return nil, errors.Wrap(err, "failed to set sqlite store defaults")
		}
		if err := validator.New().Struct(settings); err != nil {
			return nil, errors.Wrap(err, "invalid sqlite store settings")
		}

		zlog.Info().Msgf("using sqlite state store: path=%s", settings.Path)
		return NewSQLite(settings.Path)

	default:
		return nil, errors.Newf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
