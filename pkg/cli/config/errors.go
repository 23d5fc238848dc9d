package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrDuplicateWorkspace = goerr.New("duplicate workspace name")
	ErrInvalidParam       = goerr.New("invalid query parameter")
)
