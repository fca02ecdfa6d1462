// Package auth gates the interactive menu behind a static credential pair.
// This is an operator convenience, not a security boundary.
package auth

import "crypto/subtle"

// Gate checks login attempts against a fixed credential pair.
type Gate struct {
	username string
	password string
}

// NewGate creates a gate for the configured credentials.
func NewGate(username, password string) *Gate {
	return &Gate{username: username, password: password}
}

// Authenticate reports whether the attempt matches the configured pair.
func (g *Gate) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	return userOK && passOK
}
