package builtin

import (
	"fmt"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/theme"
)

const adminUsage = "Usage: admin promote <username> | admin demote <username> | admin list"

func registerAdmin(reg *command.Registry, d *Deps) error {
	return reg.Register("admin", &command.Descriptor{
		Description: "Manage user roles and permissions",
		Usage:       "admin promote <username> | admin demote <username> | admin list",
		AdminOnly:   true,
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf(adminUsage)
			}
			switch strings.ToLower(args[0]) {
			case "list":
				return adminList(d)
			case "promote":
				if len(args) < 2 {
					return "", fmt.Errorf(adminUsage)
				}
				return promote(d, args[1])
			case "demote":
				if len(args) < 2 {
					return "", fmt.Errorf(adminUsage)
				}
				return demote(d, args[1], sess)
			default:
				return "", fmt.Errorf("Invalid admin command. %s", adminUsage)
			}
		},
	})
}

func adminList(d *Deps) (string, error) {
	users, err := d.Users.List()
	if err != nil {
		return "", fmt.Errorf("Failed to list users: %v", err)
	}

	var b strings.Builder
	b.WriteString(theme.Primary("User List") + "\n\n")
	for _, u := range users {
		b.WriteString(theme.Highlight(u.Username))
		if u.IsAdmin {
			b.WriteString(" " + theme.Accent("(Admin)"))
		}
		b.WriteString("\n")
		b.WriteString(theme.Dim("Created: " + u.CreatedAt.Format("2006-01-02 15:04")))
		if u.LastLogin != nil {
			b.WriteString(theme.Dim(" | Last login: " + u.LastLogin.Format("2006-01-02 15:04")))
		}
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

func promote(d *Deps, username string) (string, error) {
	u, err := d.Users.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("User '%s' not found", username)
	}
	if u.IsAdmin {
		return theme.Warning(fmt.Sprintf("User '%s' is already an admin", username)), nil
	}
	if err := d.Users.SetAdmin(u.ID, true); err != nil {
		return "", fmt.Errorf("Failed to promote %s: %v", username, err)
	}
	return theme.Success(fmt.Sprintf("User '%s' has been promoted to admin status", username)), nil
}

func demote(d *Deps, username string, sess *command.Session) (string, error) {
	u, err := d.Users.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("User '%s' not found", username)
	}
	if !u.IsAdmin {
		return theme.Warning(fmt.Sprintf("User '%s' is not an admin", username)), nil
	}

	// The last admin cannot demote themselves.
	if sess.User != nil && u.ID == sess.User.ID && d.Users.AdminCount() <= 1 {
		return "", fmt.Errorf("Cannot demote the last admin user")
	}

	if err := d.Users.SetAdmin(u.ID, false); err != nil {
		return "", fmt.Errorf("Failed to demote %s: %v", username, err)
	}
	return theme.Success(fmt.Sprintf("User '%s' has been demoted from admin status", username)), nil
}
