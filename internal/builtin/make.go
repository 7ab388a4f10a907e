package builtin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/scripting"
	"github.com/solohouse/solo-os/internal/theme"
)

const makeUsage = "Usage:\n" +
	"  make list - List custom commands\n" +
	"  make view <name> - View a custom command\n" +
	"  make <name> <description> <implementation> - Create a new command"

func registerMake(reg *command.Registry, d *Deps) error {
	return reg.Register("make", &command.Descriptor{
		Description: "Create and manage custom commands",
		Usage:       "make <name> | make list | make view <name> | make <name> <description> <implementation>",
		Aliases:     []string{"mk"},
		RequiresAuth: true,
		Handler: func(args []string, sess *command.Session) (string, error) {
			return makeCommand(d, args, sess)
		},
	})
}

func makeCommand(d *Deps, args []string, sess *command.Session) (string, error) {
	if sess.User == nil {
		return "", fmt.Errorf("You must be logged in to create custom commands")
	}

	if len(args) == 1 && args[0] == "list" {
		return listCustomCommands(d)
	}
	if len(args) == 2 && args[0] == "view" {
		return viewCustomCommand(d, args[1])
	}
	if len(args) >= 3 {
		return createCustomCommand(d, args[0], args[1], strings.Join(args[2:], " "), sess)
	}
	if len(args) == 1 {
		return makeHint(args[0]), nil
	}
	return "", fmt.Errorf(makeUsage)
}

func listCustomCommands(d *Deps) (string, error) {
	records, err := d.Scripts.All()
	if err != nil {
		return "", fmt.Errorf("Failed to list custom commands: %v", err)
	}
	if len(records) == 0 {
		return theme.Info("No custom commands yet. Create one with \"make <name>\"."), nil
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Custom Commands") + "\n\n")
	for _, rec := range records {
		b.WriteString(theme.Highlight(rec.BaseName()) + "\n")
		b.WriteString(theme.Secondary("Description: ") + rec.Description + "\n")
		b.WriteString(theme.Dim(fmt.Sprintf("Created by %s on %s", creatorName(rec.Creator), rec.CreatedAt.Format("2006-01-02"))) + "\n\n")
	}
	return b.String(), nil
}

func viewCustomCommand(d *Deps, name string) (string, error) {
	rec, err := d.Scripts.FindByName(name)
	if err != nil {
		return "", fmt.Errorf("Failed to load command: %v", err)
	}
	if rec == nil {
		return "", fmt.Errorf("Command '%s' not found", name)
	}

	var b strings.Builder
	b.WriteString(theme.Primary("Custom Command: "+rec.BaseName()) + "\n\n")
	b.WriteString(theme.Secondary("Description: ") + rec.Description + "\n")
	b.WriteString(theme.Dim(fmt.Sprintf("Created by %s on %s", creatorName(rec.Creator), rec.CreatedAt.Format("2006-01-02"))) + "\n\n")
	b.WriteString(theme.Secondary("Implementation:") + "\n")
	b.WriteString(theme.Dim("```lua") + "\n")
	b.WriteString(rec.Source + "\n")
	b.WriteString(theme.Dim("```"))
	return b.String(), nil
}

func createCustomCommand(d *Deps, name, description, source string, sess *command.Session) (string, error) {
	if err := scripting.ValidateName(name); err != nil {
		return "", fmt.Errorf("Failed to create command: %v", err)
	}
	if err := scripting.ValidateDescription(description); err != nil {
		return "", fmt.Errorf("Failed to create command: %v", err)
	}
	if err := scripting.ValidateSource(source); err != nil {
		return "", fmt.Errorf("Failed to create command: %v", err)
	}

	stored := scripting.Namespaced(name)

	// Compile first so syntactically broken bodies never reach the store.
	if _, err := d.Engine.Compile(stored, source); err != nil {
		return "", fmt.Errorf("Failed to create command: %v", err)
	}

	if _, err := d.Scripts.Insert(sess.User.ID, name, description, source); err != nil {
		if errors.Is(err, scripting.ErrDuplicateName) {
			return "", fmt.Errorf("Command '%s' already exists", strings.TrimPrefix(name, scripting.Prefix))
		}
		return "", fmt.Errorf("Failed to create command: %v", err)
	}

	rec, err := d.Scripts.FindByName(stored)
	if err != nil || rec == nil {
		return "", fmt.Errorf("Failed to load created command")
	}
	d.Loader.LoadOne(rec)

	base := rec.BaseName()
	return theme.Success(fmt.Sprintf("Command '%s' created successfully. Use it with '%s' or '%s'.", base, base, rec.Name)), nil
}

func makeHint(name string) string {
	var b strings.Builder
	b.WriteString(theme.Primary("Creating New Command: "+name) + "\n\n")
	b.WriteString(theme.Info("To create a custom command, use:") + "\n")
	b.WriteString(theme.Highlight(fmt.Sprintf("make %s <description> <implementation>", name)) + "\n\n")
	b.WriteString(theme.Secondary("Example:") + "\n")
	b.WriteString(theme.Highlight(fmt.Sprintf("make hello \"Says hello\" return \"Hello, \" .. (args[1] or \"world\") .. \"!\"")) + "\n\n")
	b.WriteString(theme.Secondary("Available in implementation (Lua):") + "\n")
	b.WriteString(theme.Dim("- args: table of command arguments (args[1] is the first)") + "\n")
	b.WriteString(theme.Dim("- context: table with user {id, username, admin} and current_view") + "\n")
	return b.String()
}

func creatorName(username string) string {
	if username == "" {
		return "Unknown"
	}
	return username
}
