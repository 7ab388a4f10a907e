package builtin

import (
	"fmt"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/theme"
)

func registerAuth(reg *command.Registry, d *Deps) error {
	if err := reg.Register("login", &command.Descriptor{
		Description: "Log in to the system",
		Usage:       "login <username> [password]",
		Aliases:     []string{"l"},
		Handler:     loginHandler(d),
	}); err != nil {
		return err
	}

	if err := reg.Register("logout", &command.Descriptor{
		Description: "Log out from the system",
		Usage:       "logout",
		Handler: func(args []string, sess *command.Session) (string, error) {
			if sess.User == nil {
				return theme.Warning("Not currently logged in"), nil
			}
			username := sess.User.Username
			sess.User = nil
			return theme.Success("Logged out from " + username), nil
		},
	}); err != nil {
		return err
	}

	return reg.Register("register", &command.Descriptor{
		Description: "Create a new user account",
		Usage:       "register <username> [password]",
		Aliases:     []string{"signup", "reg"},
		Handler:     registerHandler(d),
	})
}

func loginHandler(d *Deps) command.Handler {
	return func(args []string, sess *command.Session) (string, error) {
		if sess.User != nil {
			return theme.Warning(fmt.Sprintf("Already logged in as %s. Use 'logout' first.", sess.User.Username)), nil
		}
		if len(args) < 1 {
			return "", fmt.Errorf("Usage: login <username> [password]")
		}
		if len(args) < 2 {
			// The shell intercepts this and re-dispatches with a masked
			// password prompt.
			return "", fmt.Errorf("No password provided")
		}

		u, err := d.Users.Authenticate(args[0], args[1])
		if err != nil {
			return "", fmt.Errorf("Invalid username or password")
		}

		sess.User = u
		return theme.Success("Successfully logged in as " + u.Username), nil
	}
}

func registerHandler(d *Deps) command.Handler {
	return func(args []string, sess *command.Session) (string, error) {
		if sess.User != nil {
			return theme.Warning(fmt.Sprintf("Already logged in as %s. Use 'logout' first.", sess.User.Username)), nil
		}
		if len(args) < 1 {
			return "", fmt.Errorf("Usage: register <username> [password]")
		}
		if len(args) < 2 {
			return "", fmt.Errorf("No password provided")
		}

		username, password := args[0], args[1]
		if d.Users.Exists(username) {
			return "", fmt.Errorf("Username '%s' is already taken.", username)
		}

		u, err := d.Users.Create(username, password, false)
		if err != nil {
			return "", fmt.Errorf("Registration failed: %v", err)
		}

		// Auto-login after registration.
		sess.User = u
		return theme.Success(fmt.Sprintf("User %s registered successfully. You are now logged in.", username)), nil
	}
}
