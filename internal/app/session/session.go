package session

import "errors"

// ErrAuthRequired marks a submit attempted without a token. It never costs a
// network round trip; the HTTP layer answers it with a redirect-to-login.
var ErrAuthRequired = errors.New("session: authentication required")

// Session carries the caller's auth state into the engine explicitly. The
// engine reads it from the command, never from ambient globals, which keeps
// the submit paths pure and testable.
type Session struct {
	// Token is the bearer token for the remote booking store.
	Token string
	// UserName identifies the customer owning the session's stays.
	UserName string
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool { return s.Token != "" }

// Require returns ErrAuthRequired for unauthenticated sessions.
func (s Session) Require() error {
	if !s.Authenticated() {
		return ErrAuthRequired
	}
	return nil
}
