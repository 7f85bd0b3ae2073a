package repository

import (
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	// ApplyEnvironment overlays .env and process environment values on cfg.
	ApplyEnvironment(cfg *types.Config) error
}
