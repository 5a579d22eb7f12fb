package session

import (
	"context"
	"log/slog"
	"strings"
)

// RoleMatcher decides whether a session role satisfies a portal.
type RoleMatcher func(role string) bool

const (
	RoleEmployee = "Employee"
	RoleManager  = "manager"
)

// ExactRole matches the role string exactly. The employee portal uses this.
func ExactRole(want string) RoleMatcher {
	return func(role string) bool { return role == want }
}

// FoldRole matches case-insensitively. The manager portal uses this; the
// casing difference between the two portals is intentional and kept as-is.
func FoldRole(want string) RoleMatcher {
	return func(role string) bool { return strings.EqualFold(role, want) }
}

// Gate performs the load-time authentication check for a portal.
type Gate struct {
	checker StatusChecker
	match   RoleMatcher
	logger  *slog.Logger
}

func NewGate(checker StatusChecker, match RoleMatcher, logger *slog.Logger) *Gate {
	return &Gate{checker: checker, match: match, logger: logger}
}

// Authorize runs the status query for a protected screen. Any failure of the
// query itself counts as not authenticated. There is no retry; a false result
// means the portal must route to its login screen.
func (g *Gate) Authorize(ctx context.Context) (*User, bool) {
	sess, err := g.checker.AuthStatus(ctx)
	if err != nil {
		g.logger.Error("auth check failed", "error", err)
		return nil, false
	}
	if !sess.Authenticated || sess.User == nil || !g.match(sess.User.Role) {
		g.logger.Info("session not authorized for portal",
			"authenticated", sess.Authenticated)
		return nil, false
	}
	return sess.User, true
}

// AlreadyAuthorized is the inverse check for the login screen: a user who is
// already authenticated with the right role skips straight to the dashboard.
// A failing status query keeps the user on the login screen.
func (g *Gate) AlreadyAuthorized(ctx context.Context) bool {
	sess, err := g.checker.AuthStatus(ctx)
	if err != nil {
		g.logger.Debug("auth check on login screen failed", "error", err)
		return false
	}
	return sess.Authenticated && sess.User != nil && g.match(sess.User.Role)
}
