package vanta

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for API access. ErrAuthFailed is contained at workspace
// granularity by the caller; ErrFetchFailed aborts the whole run.
var (
	ErrAuthFailed  = goerr.New("authentication failed")
	ErrFetchFailed = goerr.New("people fetch failed")
)
