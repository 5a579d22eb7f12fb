package api

import (
	"context"
	"net/http"

	"github.com/frahmantamala/expense-dashboard/internal/session"
)

// LoginDTO is the credentials payload for both portals.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse covers both backend variants: the employee backend returns
// only the user, the manager backend additionally reports success explicitly.
type LoginResponse struct {
	Success bool          `json:"success"`
	User    *session.User `json:"user"`
}

// AuthStatus fetches the current session. Called fresh on every screen load.
func (c *Client) AuthStatus(ctx context.Context) (*session.Session, error) {
	var sess session.Session
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *Client) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", dto, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the server. Callers treat this as best effort: the portal
// returns to its login screen whether or not the call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
