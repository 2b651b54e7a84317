package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with values from ROLODEX_* environment variables
// (see the env tags on Config). Unset variables leave the field untouched, so
// the overlay composes with the defaults and JSON stages. Parse errors panic,
// mirroring the JSON stage.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
