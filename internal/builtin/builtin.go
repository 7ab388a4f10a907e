// Package builtin registers the built-in board commands: help, accounts,
// posts, the guestbook, system info and custom command management.
package builtin

import (
	"time"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/db"
	"github.com/solohouse/solo-os/internal/guestbook"
	"github.com/solohouse/solo-os/internal/post"
	"github.com/solohouse/solo-os/internal/scripting"
	"github.com/solohouse/solo-os/internal/user"
)

// Deps holds the collaborators built-in commands work against.
type Deps struct {
	Users     *user.Repo
	Posts     *post.Repo
	Guestbook *guestbook.Repo
	Scripts   *scripting.Repo
	Engine    *scripting.Engine
	Loader    *scripting.Loader
	DB        *db.DB

	Version   string
	StartedAt time.Time
}

// RegisterAll registers every built-in command into the registry. A
// registration error here is a configuration bug and should abort startup.
func RegisterAll(reg *command.Registry, d *Deps) error {
	for _, register := range []func(*command.Registry, *Deps) error{
		registerHelp,
		registerAuth,
		registerUsers,
		registerPosts,
		registerWeekly,
		registerGuestbook,
		registerMake,
		registerSystem,
		registerAdmin,
	} {
		if err := register(reg, d); err != nil {
			return err
		}
	}
	return nil
}
