package command

// Handler executes a command with its arguments and the caller's session.
// All commands, built-in or user-authored, use this one shape.
type Handler func(args []string, sess *Session) (string, error)

// Descriptor holds the metadata and handler for a registered command.
type Descriptor struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	RequiresAuth bool
	AdminOnly   bool

	// CreatorID is set only for user-authored commands loaded from the
	// database; zero for built-ins.
	CreatorID int

	Handler Handler
}

// Result is the uniform envelope returned by every dispatch, valid or not.
type Result struct {
	Success bool
	Output  string
	Err     string
}

// Summary is the listing view of a descriptor, without the handler.
type Summary struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	RequiresAuth bool
	AdminOnly   bool
}
