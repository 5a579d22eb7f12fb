// Package session holds the server-attested identity for the current client
// and the gate every protected screen passes through on load.
package session

import "context"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session is fetched fresh on every page load and never cached; the backing
// credential is a transport-level cookie the client does not inspect.
type Session struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

// StatusChecker queries the backend for the current session.
type StatusChecker interface {
	AuthStatus(ctx context.Context) (*Session, error)
}
