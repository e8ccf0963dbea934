package backend

import (
	"fmt"

	"cryptoledger/config"
	"cryptoledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// New builds the ChainBackend named by the asset configuration.
func New(cfg config.BackendConfig, log zerolog.Logger) (ports.ChainBackend, error) {
	switch cfg.Type {
	case "httpjson":
		if cfg.URL == "" {
			return nil, fmt.Errorf("httpjson backend requires a url")
		}
		return NewHTTPJSONBackend(cfg, log), nil
	case "null", "":
		return NewNullBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}
