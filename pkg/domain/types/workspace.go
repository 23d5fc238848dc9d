package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// WorkspaceName identifies one tenant workspace. It is used as a namespacing
// key for consolidated report columns, so it must be unique within a config.
type WorkspaceName string

// Validate checks if the WorkspaceName is valid
func (w WorkspaceName) Validate() error {
	if w == "" {
		return goerr.New("workspace name cannot be empty")
	}
	return nil
}

// String returns the string representation of WorkspaceName
func (w WorkspaceName) String() string {
	return string(w)
}
