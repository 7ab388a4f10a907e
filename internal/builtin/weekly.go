package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/post"
	"github.com/solohouse/solo-os/internal/theme"
)

func registerWeekly(reg *command.Registry, d *Deps) error {
	return reg.Register("weekly", &command.Descriptor{
		Description: "Weekly accountability posts for founders",
		Usage:       "weekly | weekly view [username] [week] | weekly new <last_week> | <next_week> [| <wins>]",
		Aliases:     []string{"w", "accountability"},
		RequiresAuth: true,
		Handler: func(args []string, sess *command.Session) (string, error) {
			return weekly(d, args, sess)
		},
	})
}

func weekly(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to use weekly accountability posts")
	}

	currentWeek := post.CurrentWeekNumber()

	if len(args) >= 1 && args[0] == "new" {
		return newWeekly(d, args[1:], sess, currentWeek)
	}
	if len(args) >= 1 && args[0] == "view" {
		return viewWeekly(d, args[1:], sess, currentWeek)
	}
	return latestWeeklies(d)
}

func newWeekly(d *Deps, args []string, sess *command.Session, week int) (string, error) {
	// Content format: <last_week> | <next_week> [| <wins>]
	parts := strings.Split(strings.Join(args, " "), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("Usage: weekly new <last_week> | <next_week> [| <wins>]")
	}

	wins := ""
	if len(parts) > 2 {
		wins = parts[2]
	}

	if _, err := d.Posts.UpsertWeekly(sess.User.ID, week, parts[0], parts[1], wins); err != nil {
		return "", fmt.Errorf("Failed to create weekly post: %v", err)
	}
	return theme.Success("Weekly accountability post created"), nil
}

func viewWeekly(d *Deps, args []string, sess *command.Session, currentWeek int) (string, error) {
	target := sess.User.Username
	week := currentWeek

	if len(args) >= 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			week = n
		} else {
			target = args[0]
			if len(args) >= 2 {
				if n, err := strconv.Atoi(args[1]); err == nil {
					week = n
				}
			}
		}
	}

	u, err := d.Users.GetByUsername(target)
	if err != nil {
		return "", fmt.Errorf("User %s not found", target)
	}

	w, err := d.Posts.GetWeekly(u.ID, week)
	if err != nil {
		return "", fmt.Errorf("Failed to load weekly post: %v", err)
	}
	if w == nil {
		return "", fmt.Errorf("No weekly post found for %s for week %d", target, week)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Primary(fmt.Sprintf("Weekly Accountability: %s - Week %d", w.Username, w.WeekNumber)))
	fmt.Fprintf(&b, "%s\n\n", theme.Dim("Posted on "+w.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(theme.Secondary("Last Week:") + "\n" + w.LastWeek + "\n\n")
	b.WriteString(theme.Secondary("Next Week:") + "\n" + w.NextWeek + "\n")
	if w.Wins != "" {
		b.WriteString("\n" + theme.Secondary("Wins:") + "\n" + w.Wins + "\n")
	}
	return b.String(), nil
}

func latestWeeklies(d *Deps) (string, error) {
	posts, err := d.Posts.LatestWeeklies()
	if err != nil {
		return "", fmt.Errorf("Failed to list weekly posts: %v", err)
	}
	if len(posts) == 0 {
		return theme.Info("No weekly accountability posts yet. Create one with \"weekly new\"."), nil
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Latest Weekly Accountability Posts") + "\n\n")
	for _, w := range posts {
		fmt.Fprintf(&b, "%s\n", theme.Highlight(fmt.Sprintf("%s - Week %d (%s):", w.Username, w.WeekNumber, w.CreatedAt.Format("2006-01-02"))))
		fmt.Fprintf(&b, "%s %s\n", theme.Secondary("Last Week:"), truncate(w.LastWeek, 50))
		fmt.Fprintf(&b, "%s %s\n", theme.Secondary("Next Week:"), truncate(w.NextWeek, 50))
		if w.Wins != "" {
			fmt.Fprintf(&b, "%s %s\n", theme.Secondary("Wins:"), truncate(w.Wins, 50))
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.Info("View full post: 'weekly view <username> [week]'") + "\n")
	b.WriteString(theme.Info("Create your post: 'weekly new <last_week> | <next_week> [| <wins>]'"))
	return b.String(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
