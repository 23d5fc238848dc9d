package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/argus/pkg/domain/model"
)

// Config is the workspace credential document. JSON is the primary format;
// a .toml extension switches the parser to TOML.
type Config struct {
	Workspaces []model.Workspace `json:"workspaces" toml:"workspaces"`
}

// Names returns the workspace names in configured order. The consolidated
// report column set follows this order, not the data.
func (c *Config) Names() []string {
	names := make([]string, len(c.Workspaces))
	for i, ws := range c.Workspaces {
		names[i] = ws.Name.String()
	}
	return names
}

// Validate checks if the Config is valid
func (c *Config) Validate() error {
	if c.Workspaces == nil {
		return goerr.Wrap(ErrInvalidConfig, "config must contain a 'workspaces' list")
	}

	seen := make(map[string]bool)
	for _, ws := range c.Workspaces {
		if err := ws.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace")
		}
		if seen[ws.Name.String()] {
			return goerr.Wrap(ErrDuplicateWorkspace, "workspace names must be unique", goerr.V("name", ws.Name))
		}
		seen[ws.Name.String()] = true
	}
	return nil
}

// Load reads and validates the workspace configuration. It fails before any
// network activity when the document is malformed.
func Load(path string) (*Config, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V("path", path))
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V("path", path), goerr.V("cause", err.Error()))
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse JSON config", goerr.V("path", path), goerr.V("cause", err.Error()))
		}
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}
	return &config, nil
}
