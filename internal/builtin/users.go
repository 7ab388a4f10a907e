package builtin

import (
	"fmt"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/theme"
	"github.com/solohouse/solo-os/internal/user"
)

func registerUsers(reg *command.Registry, d *Deps) error {
	if err := reg.Register("user", &command.Descriptor{
		Description: "View and manage user accounts",
		Usage:       "user list | user profile [username] | user edit <field> <value>",
		Aliases:     []string{"u"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf(userUsage)
			}
			sub, rest := strings.ToLower(args[0]), args[1:]
			switch sub {
			case "list":
				return listUsers(d, sess)
			case "profile", "view":
				return viewProfile(d, rest, sess)
			case "edit":
				return editProfile(d, rest, sess)
			default:
				if len(args) == 1 {
					return viewProfile(d, args, sess)
				}
				return "", fmt.Errorf(userUsage)
			}
		},
	}); err != nil {
		return err
	}

	if err := reg.Register("users", &command.Descriptor{
		Description: "List all users in the system",
		Usage:       "users",
		Aliases:     []string{"who"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			return listUsers(d, sess)
		},
	}); err != nil {
		return err
	}

	return reg.Register("profile", &command.Descriptor{
		Description: "View or edit user profiles",
		Usage:       "profile [username] | profile edit <field> <value>",
		Aliases:     []string{"pr"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) > 0 && args[0] == "edit" {
				return editProfile(d, args[1:], sess)
			}
			return viewProfile(d, args, sess)
		},
	})
}

const userUsage = "Usage:\n" +
	"  user list - List all users\n" +
	"  user profile [username] - View a user's profile\n" +
	"  user edit <field> <value> - Edit your profile"

func viewProfile(d *Deps, args []string, sess *command.Session) (string, error) {
	var target string
	if len(args) == 0 {
		if sess.User == nil {
			return "", fmt.Errorf("Not logged in. Please login first or specify a username.")
		}
		target = sess.User.Username
	} else {
		target = args[0]
	}

	u, err := d.Users.GetByUsername(target)
	if err != nil {
		return "", fmt.Errorf("User '%s' not found", target)
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Profile: " + u.Username))
	if u.IsAdmin {
		b.WriteString(theme.Highlight(" (Administrator)"))
	}
	b.WriteString("\n\n")

	if u.Status != "" {
		b.WriteString(theme.Accent("Status: "+u.Status) + "\n\n")
	}
	if u.Bio != "" {
		b.WriteString(theme.Secondary("Bio:") + "\n" + u.Bio + "\n\n")
	} else {
		b.WriteString(theme.Dim("No bio provided") + "\n\n")
	}
	if u.Contact != "" {
		b.WriteString(theme.Secondary("Contact:") + "\n" + u.Contact + "\n\n")
	}

	b.WriteString(theme.Dim("Member since: " + u.CreatedAt.Format("2006-01-02 15:04")))
	if u.LastLogin != nil {
		b.WriteString("\n" + theme.Dim("Last login: "+u.LastLogin.Format("2006-01-02 15:04")))
	}

	if sess.User != nil && sess.User.ID == u.ID {
		b.WriteString("\n\n" + theme.Info("To edit your profile:") + "\n")
		b.WriteString(theme.Highlight("user edit bio <text>") + " - Update your bio\n")
		b.WriteString(theme.Highlight("user edit contact <text>") + " - Update contact info\n")
		b.WriteString(theme.Highlight("user edit status <text>") + " - Update your status")
	}

	return b.String(), nil
}

func editProfile(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to edit your profile.")
	}
	if len(args) < 2 {
		return "", fmt.Errorf("Usage: user edit <field> <value>")
	}

	field := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")
	u := sess.User

	bio, contact, status := u.Bio, u.Contact, u.Status
	switch field {
	case "bio":
		bio = value
	case "contact":
		contact = value
	case "status":
		status = value
	default:
		return "", fmt.Errorf("Invalid field: %s. Use 'bio', 'contact', or 'status'.", field)
	}

	if err := d.Users.UpdateProfile(u.ID, bio, contact, status); err != nil {
		return "", fmt.Errorf("Failed to update %s: %v", field, err)
	}
	u.Bio, u.Contact, u.Status = bio, contact, status

	return theme.Success(fmt.Sprintf("Updated %s successfully", field)), nil
}

func listUsers(d *Deps, sess *command.Session) (string, error) {
	users, err := d.Users.List()
	if err != nil {
		return "", fmt.Errorf("Failed to list users: %v", err)
	}

	var b strings.Builder
	b.WriteString(theme.Primary("All Users") + "\n\n")
	fmt.Fprintf(&b, "%s%d\n\n", theme.Secondary("Total users: "), len(users))

	for _, u := range users {
		if sess.User != nil && u.ID == sess.User.ID {
			b.WriteString(theme.Primary("-> "))
		} else {
			b.WriteString("   ")
		}
		b.WriteString(theme.Highlight(u.Username))
		if u.IsAdmin {
			b.WriteString(theme.Accent(" (Admin)"))
		}
		b.WriteString("\n")
		b.WriteString(theme.Dim("   "+userDetail(u, sess)) + "\n")
		if u.Status != "" {
			b.WriteString(theme.Info("   Status: ") + u.Status + "\n")
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func userDetail(u *user.User, sess *command.Session) string {
	created := u.CreatedAt.Format("2006-01-02")
	if sess.User != nil && sess.User.IsAdmin {
		lastLogin := "Never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("2006-01-02 15:04")
		}
		return fmt.Sprintf("ID: %d | Created: %s | Last login: %s", u.ID, created, lastLogin)
	}
	return "Created: " + created
}
