package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/domain/types"
)

// Workspace holds the OAuth client credentials for one tenant workspace.
// Loaded once at startup and immutable for the run.
type Workspace struct {
	Name         types.WorkspaceName `json:"name" toml:"name"`
	ClientID     string              `json:"client_id" toml:"client_id"`
	ClientSecret string              `json:"client_secret" toml:"client_secret" masq:"secret"`
}

// Validate checks if the Workspace is valid
func (w *Workspace) Validate() error {
	if err := w.Name.Validate(); err != nil {
		return goerr.Wrap(err, "invalid workspace name")
	}
	if w.ClientID == "" {
		return goerr.New("client_id is required", goerr.V("workspace", w.Name))
	}
	if w.ClientSecret == "" {
		return goerr.New("client_secret is required", goerr.V("workspace", w.Name))
	}
	return nil
}
