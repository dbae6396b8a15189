// Package auth verifies HTTP Basic credentials against the credential store
// and decides what an authenticated principal may do to an item.
package auth

import (
	"encoding/base64"
	"strings"
)

// Credentials is the username/password pair carried by an HTTP Basic
// Authorization header.
type Credentials struct {
	Username string
	Password string
}

// FromHeader parses an Authorization header value. Returns nil when the
// header is absent, uses a different scheme, or is malformed; callers treat
// nil as "no credentials supplied".
func FromHeader(header string) *Credentials {
	scheme, payload, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Basic") {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil
	}
	return &Credentials{Username: username, Password: password}
}
