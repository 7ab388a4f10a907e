package builtin

import (
	"fmt"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/scripting"
	"github.com/solohouse/solo-os/internal/theme"
)

func registerHelp(reg *command.Registry, d *Deps) error {
	return reg.Register("help", &command.Descriptor{
		Description: "Display available commands and usage information",
		Usage:       "help [command]",
		Aliases:     []string{"h", "?"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) > 0 {
				return helpForCommand(reg, args[0])
			}
			return helpListing(reg, sess), nil
		},
	})
}

func helpForCommand(reg *command.Registry, name string) (string, error) {
	cmd, ok := reg.Resolve(name)
	if !ok {
		return "", fmt.Errorf("Unknown command: %s", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", theme.Primary("Help: "+cmd.Name))
	fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Description: "), cmd.Description)
	fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Usage: "), cmd.Usage)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Aliases: "), strings.Join(cmd.Aliases, ", "))
	}
	if cmd.RequiresAuth {
		b.WriteString(theme.Warning("Note: This command requires authentication.") + "\n")
	}
	if cmd.AdminOnly {
		b.WriteString(theme.Warning("Note: This command requires admin privileges.") + "\n")
	}
	return b.String(), nil
}

func helpListing(reg *command.Registry, sess *command.Session) string {
	commands := reg.List(true, sess.User)

	categories := []string{"Core", "User", "Content", "System", "Admin", "Custom"}
	grouped := make(map[string][]command.Summary)

	for _, cmd := range commands {
		switch {
		case cmd.AdminOnly:
			grouped["Admin"] = append(grouped["Admin"], cmd)
		case strings.HasPrefix(cmd.Name, scripting.Prefix):
			grouped["Custom"] = append(grouped["Custom"], cmd)
		case isContentCommand(cmd.Name):
			grouped["Content"] = append(grouped["Content"], cmd)
		case isUserCommand(cmd.Name):
			grouped["User"] = append(grouped["User"], cmd)
		case cmd.Name == "system" || cmd.Name == "make":
			grouped["System"] = append(grouped["System"], cmd)
		default:
			grouped["Core"] = append(grouped["Core"], cmd)
		}
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Available Commands") + "\n\n")

	for _, category := range categories {
		cmds := grouped[category]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", theme.Secondary(category+" Commands:"))
		for _, cmd := range cmds {
			name := theme.Highlight(cmd.Name)
			if len(cmd.Aliases) > 0 {
				name += theme.Dim(" (" + strings.Join(cmd.Aliases, ", ") + ")")
			}
			fmt.Fprintf(&b, "  %-32s %s\n", name, cmd.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Info("Tip: ") + "Use " + theme.Highlight("help <command>") +
		" for detailed information about a specific command.")
	return b.String()
}

func isContentCommand(name string) bool {
	switch name {
	case "post", "announce", "status", "weekly", "guest":
		return true
	}
	return false
}

func isUserCommand(name string) bool {
	switch name {
	case "user", "users", "login", "logout", "profile", "register":
		return true
	}
	return false
}
