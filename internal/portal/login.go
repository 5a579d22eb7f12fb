package portal

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/frahmantamala/expense-dashboard/internal/api"
	"github.com/frahmantamala/expense-dashboard/internal/session"
)

// LoginRedirectDelay is the pause between a successful login and entering the
// dashboard.
const LoginRedirectDelay = 1000 * time.Millisecond

// sleep is swapped out in tests.
var sleep = time.Sleep

type loginScreen struct {
	client *api.Client
	gate   *session.Gate
	match  session.RoleMatcher
	// requireSuccessFlag reflects the manager backend's login payload, which
	// reports success explicitly in addition to the HTTP status.
	requireSuccessFlag bool
	deniedText         string
	redirectText       string
	prompter           *Prompter
	out                io.Writer
	logger             *slog.Logger
}

// run keeps the user on the login screen until a correctly-roled session
// exists. io.EOF propagates so the portal can exit cleanly on closed input.
func (l *loginScreen) run(ctx context.Context) (*session.User, error) {
	// Inverse gate: an already-authenticated, correctly-roled user goes
	// straight to the dashboard.
	if l.gate.AlreadyAuthorized(ctx) {
		sess, err := l.client.AuthStatus(ctx)
		if err == nil && sess.User != nil {
			return sess.User, nil
		}
	}

	for {
		username, err := l.prompter.Line("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := l.prompter.Password("Password: ")
		if err != nil {
			return nil, err
		}

		resp, err := l.client.Login(ctx, api.LoginDTO{Username: username, Password: password})
		if err != nil {
			printMessage(l.out, internal.FailureMessage(err, "Login failed"), false)
			continue
		}
		if l.requireSuccessFlag && !resp.Success {
			printMessage(l.out, "Login failed", false)
			continue
		}
		if resp.User == nil || !l.match(resp.User.Role) {
			printMessage(l.out, l.deniedText, false)
			continue
		}

		printMessage(l.out, l.redirectText, true)
		l.logger.Info("login successful", "username", resp.User.Username, "role", resp.User.Role)
		sleep(LoginRedirectDelay)
		return resp.User, nil
	}
}
