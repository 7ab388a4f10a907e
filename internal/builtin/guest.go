package builtin

import (
	"fmt"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/theme"
)

const guestUsage = "Usage:\n" +
	"  guest - View the guestbook\n" +
	"  guest list - View the guestbook\n" +
	"  guest sign <name> <message> - Sign the guestbook\n" +
	"  guest <name> <message> - Sign the guestbook (shorthand)"

func registerGuestbook(reg *command.Registry, d *Deps) error {
	return reg.Register("guest", &command.Descriptor{
		Description: "Sign or view the digital guestbook",
		Usage:       "guest | guest sign <name> <message> | guest <name> <message>",
		Aliases:     []string{"g", "gb", "guestbook"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) == 0 {
				return listGuestbook(d)
			}
			switch strings.ToLower(args[0]) {
			case "list":
				return listGuestbook(d)
			case "sign":
				return signGuestbook(d, args[1:])
			default:
				// Shorthand: guest <name> <message>
				if len(args) >= 2 {
					return signGuestbook(d, args)
				}
				return "", fmt.Errorf(guestUsage)
			}
		},
	})
}

func listGuestbook(d *Deps) (string, error) {
	entries, err := d.Guestbook.List(20)
	if err != nil {
		return "", fmt.Errorf("Failed to read guestbook: %v", err)
	}
	if len(entries) == 0 {
		return theme.Info("The guestbook is empty. Be the first to sign!"), nil
	}

	var b strings.Builder
	b.WriteString(theme.Primary("SOLO House Guestbook") + "\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\n", theme.Highlight(fmt.Sprintf("%s (%s):", e.Name, e.CreatedAt.Format("2006-01-02"))))
		b.WriteString(e.Message + "\n\n")
	}
	b.WriteString(theme.Info("To sign the guestbook: 'guest <your name> <your message>'"))
	return b.String(), nil
}

func signGuestbook(d *Deps, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("Usage: guest <name> <message> - Sign the guestbook")
	}
	name := args[0]
	message := strings.Join(args[1:], " ")

	if _, err := d.Guestbook.Sign(name, message); err != nil {
		return "", fmt.Errorf("Failed to sign guestbook: %v", err)
	}
	return theme.Success(fmt.Sprintf("Thanks for signing the guestbook, %s!", name)), nil
}
