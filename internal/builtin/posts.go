package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/post"
	"github.com/solohouse/solo-os/internal/theme"
)

const postUsage = "Usage:\n" +
	"  post list [limit] - List recent posts\n" +
	"  post view <id> - View a specific post\n" +
	"  post new <title> <content> - Create a new post\n" +
	"  post announce <message> - Send an announcement\n" +
	"  post status <message> - Update your status\n" +
	"  post weekly - Weekly accountability posts"

func registerPosts(reg *command.Registry, d *Deps) error {
	if err := reg.Register("post", &command.Descriptor{
		Description: "Create and view various types of posts",
		Usage:       "post list | post view <id> | post new <title> <content> | post announce <message> | post status <message> | post weekly",
		Aliases:     []string{"p"},
		Handler: func(args []string, sess *command.Session) (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf(postUsage)
			}
			sub, rest := strings.ToLower(args[0]), args[1:]
			switch sub {
			case "list":
				return listPosts(d, rest)
			case "view":
				return viewPost(d, rest)
			case "new":
				return newPost(d, rest, sess)
			case "announce":
				return announce(d, rest, sess)
			case "status":
				return updateStatus(d, rest, sess)
			case "weekly":
				return weekly(d, rest, sess)
			default:
				return "", fmt.Errorf(postUsage)
			}
		},
	}); err != nil {
		return err
	}

	if err := reg.Register("announce", &command.Descriptor{
		Description: "Make or view announcements",
		Usage:       "announce [message]",
		Aliases:     []string{"a"},
		RequiresAuth: true,
		Handler: func(args []string, sess *command.Session) (string, error) {
			return announce(d, args, sess)
		},
	}); err != nil {
		return err
	}

	return reg.Register("status", &command.Descriptor{
		Description: "Update your status or view recent statuses",
		Usage:       "status [message]",
		Aliases:     []string{"s"},
		RequiresAuth: true,
		Handler: func(args []string, sess *command.Session) (string, error) {
			return updateStatus(d, args, sess)
		},
	})
}

func listPosts(d *Deps, args []string) (string, error) {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return "", fmt.Errorf("Invalid limit: %s", args[0])
		}
		limit = min(n, 50)
	}

	posts, err := d.Posts.ListByType(post.TypePost, limit)
	if err != nil {
		return "", fmt.Errorf("Failed to list posts: %v", err)
	}
	if len(posts) == 0 {
		return theme.Info("No posts found. Be the first to post something!"), nil
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Recent Posts") + "\n\n")
	for _, p := range posts {
		fmt.Fprintf(&b, "%s\n", theme.Highlight(fmt.Sprintf("#%d: %s", p.ID, p.Title)))
		fmt.Fprintf(&b, "%s\n", theme.Dim(fmt.Sprintf("  Posted by %s on %s", author(p.Username), p.CreatedAt.Format("2006-01-02"))))
	}
	b.WriteString("\n" + theme.Info("Use 'post view <id>' to read a post"))
	return b.String(), nil
}

func viewPost(d *Deps, args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("Usage: post view <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("Invalid post ID")
	}

	p, err := d.Posts.GetByID(id)
	if err != nil {
		return "", fmt.Errorf("Post #%d not found", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Primary(fmt.Sprintf("Post #%d: %s", p.ID, p.Title)))
	fmt.Fprintf(&b, "%s\n\n", theme.Dim(fmt.Sprintf("Posted by %s on %s", author(p.Username), p.CreatedAt.Format("2006-01-02 15:04"))))
	b.WriteString(p.Content)
	return b.String(), nil
}

func newPost(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to create a post")
	}
	if len(args) < 2 {
		return "", fmt.Errorf("Usage: post new <title> <content>")
	}

	title := args[0]
	content := strings.Join(args[1:], " ")
	if _, err := d.Posts.Create(sess.User.ID, title, content, post.TypePost); err != nil {
		return "", fmt.Errorf("Failed to create post: %v", err)
	}
	return theme.Success("Post created successfully"), nil
}

func announce(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to make announcements")
	}

	if len(args) < 1 {
		announcements, err := d.Posts.ListByType(post.TypeAnnounce, 5)
		if err != nil {
			return "", fmt.Errorf("Failed to list announcements: %v", err)
		}
		if len(announcements) == 0 {
			return theme.Info("No announcements yet"), nil
		}
		var b strings.Builder
		b.WriteString(theme.Primary("Recent Announcements") + "\n\n")
		for _, p := range announcements {
			fmt.Fprintf(&b, "%s\n", theme.Highlight(fmt.Sprintf("Announcement from %s on %s:", author(p.Username), p.CreatedAt.Format("2006-01-02"))))
			b.WriteString(p.Content + "\n\n")
		}
		return b.String(), nil
	}

	message := strings.Join(args, " ")
	if _, err := d.Posts.Create(sess.User.ID, "ANNOUNCEMENT", message, post.TypeAnnounce); err != nil {
		return "", fmt.Errorf("Failed to create announcement: %v", err)
	}
	return theme.Success("Announcement sent successfully"), nil
}

func updateStatus(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to set a status")
	}

	if len(args) < 1 {
		statuses, err := d.Posts.ListByType(post.TypeStatus, 5)
		if err != nil {
			return "", fmt.Errorf("Failed to list statuses: %v", err)
		}
		if len(statuses) == 0 {
			return theme.Info("No status updates yet"), nil
		}
		var b strings.Builder
		b.WriteString(theme.Primary("Recent Status Updates") + "\n\n")
		for _, p := range statuses {
			fmt.Fprintf(&b, "%s\n", theme.Highlight(fmt.Sprintf("%s (%s):", author(p.Username), p.CreatedAt.Format("2006-01-02"))))
			b.WriteString(p.Content + "\n\n")
		}
		return b.String(), nil
	}

	status := strings.Join(args, " ")
	if err := d.Users.UpdateStatus(sess.User.ID, status); err != nil {
		return "", fmt.Errorf("Failed to update status: %v", err)
	}
	sess.User.Status = status

	// Also record the change as a status post.
	if _, err := d.Posts.Create(sess.User.ID, "Status Update", status, post.TypeStatus); err != nil {
		return "", fmt.Errorf("Failed to update status: %v", err)
	}
	return theme.Success("Status updated successfully"), nil
}

func author(username string) string {
	if username == "" {
		return "Anonymous"
	}
	return username
}
