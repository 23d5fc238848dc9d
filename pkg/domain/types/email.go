package types

import (
	"strings"
)

// EmailAddr is an email address as reported by the API. It may be empty when
// the person record carries no address.
type EmailAddr string

// Key returns the consolidation key for the address: trimmed and lower-cased.
// An empty key means the address is unusable for consolidation.
func (e EmailAddr) Key() string {
	return strings.ToLower(strings.TrimSpace(string(e)))
}

// String returns the string representation of EmailAddr
func (e EmailAddr) String() string {
	return string(e)
}
