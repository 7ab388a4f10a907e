package builtin

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/theme"
)

const systemUsage = "Usage:\n" +
	"  system info - Show system information\n" +
	"  system make list - List custom commands\n" +
	"  system make view <name> - View a custom command\n" +
	"  system make <name> <description> <implementation> - Create a new command"

func registerSystem(reg *command.Registry, d *Deps) error {
	return reg.Register("system", &command.Descriptor{
		Description: "System operations and information",
		Usage:       "system info | system make <name> | system make list | system make view <name>",
		Aliases:     []string{"sys"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf(systemUsage)
			}
			switch strings.ToLower(args[0]) {
			case "info":
				return systemInfo(d, sess), nil
			case "make":
				return makeCommand(d, args[1:], sess)
			default:
				return "", fmt.Errorf(systemUsage)
			}
		},
	})
}

func systemInfo(d *Deps, sess *command.Session) string {
	var b strings.Builder
	b.WriteString(theme.Primary("SOLO-OS System Information") + "\n\n")

	if d.DB != nil {
		if settings, err := d.DB.GetBoardSettings(); err == nil {
			fmt.Fprintf(&b, "%s%s", theme.Secondary("Board: "), settings.Name)
			if settings.Tagline != "" {
				b.WriteString(theme.Dim(" - " + settings.Tagline))
			}
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Version: "), d.Version)
	fmt.Fprintf(&b, "%s%s/%s\n", theme.Secondary("Platform: "), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "%s%s\n\n", theme.Secondary("Uptime: "), formatUptime(time.Since(d.StartedAt)))

	b.WriteString(theme.Highlight("System Statistics:") + "\n")
	fmt.Fprintf(&b, "%s%d\n", theme.Secondary("Users: "), d.Users.Count())
	fmt.Fprintf(&b, "%s%d\n", theme.Secondary("Posts: "), d.Posts.Count())
	fmt.Fprintf(&b, "%s%d\n", theme.Secondary("Guestbook Entries: "), d.Guestbook.Count())
	fmt.Fprintf(&b, "%s%d\n", theme.Secondary("Weekly Updates: "), d.Posts.WeeklyCount())
	fmt.Fprintf(&b, "%s%d\n\n", theme.Secondary("Custom Commands: "), d.Scripts.Count())

	b.WriteString(theme.Highlight("Session Information:") + "\n")
	if sess.User != nil {
		fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Logged in as: "), sess.User.Username)
		role := "User"
		if sess.User.IsAdmin {
			role = "Administrator"
		}
		fmt.Fprintf(&b, "%s%s\n", theme.Secondary("User role: "), role)
	} else {
		fmt.Fprintf(&b, "%s%s\n", theme.Secondary("Logged in as: "), "Not logged in")
		fmt.Fprintf(&b, "%s%s\n", theme.Secondary("User role: "), "Guest")
	}

	return b.String()
}

func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds())
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 || hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", secs)
	return b.String()
}
