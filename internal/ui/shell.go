// Package ui implements the interactive SOLO-OS shell: a line-oriented
// prompt where each entered command is dispatched and its result printed
// into the terminal scrollback.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/db"
	"github.com/solohouse/solo-os/internal/theme"
)

// Shell is the bubbletea model for the command prompt. It runs inline (no
// alt screen) so command output stays in the terminal history.
type Shell struct {
	dispatcher *command.Dispatcher
	sess       *command.Session
	settings   *db.BoardSettings

	input textinput.Model

	// pendingCmd is set while waiting for a masked password entry; the
	// captured password is appended and the command re-dispatched.
	pendingCmd []string
}

// NewShell creates the shell over a dispatcher and session.
func NewShell(dispatcher *command.Dispatcher, sess *command.Session, settings *db.BoardSettings) *Shell {
	ti := textinput.New()
	ti.Prompt = promptFor(sess)
	ti.Focus()
	ti.CharLimit = 0

	return &Shell{
		dispatcher: dispatcher,
		sess:       sess,
		settings:   settings,
		input:      ti,
	}
}

// Run starts the interactive loop and blocks until the user quits.
func (s *Shell) Run() error {
	p := tea.NewProgram(s)
	_, err := p.Run()
	return err
}

func (s *Shell) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(s.banner()))
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return s, tea.Sequence(tea.Println(theme.Success("Goodbye!")), tea.Quit)
		case tea.KeyEnter:
			return s.handleLine()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Shell) View() string {
	return s.input.View() + "\n"
}

func (s *Shell) handleLine() (tea.Model, tea.Cmd) {
	line := s.input.Value()
	s.input.SetValue("")

	if s.pendingCmd != nil {
		fields := append(s.pendingCmd, line)
		s.pendingCmd = nil
		s.input.EchoMode = textinput.EchoNormal
		s.input.Prompt = promptFor(s.sess)
		return s.dispatch(fields[0], fields[1:])
	}

	fields := SplitFields(line)
	if len(fields) == 0 {
		return s, nil
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "quit", "exit":
		return s, tea.Sequence(tea.Println(theme.Success("Goodbye!")), tea.Quit)
	}

	// login/register without a password get a masked prompt instead of
	// putting the password on the command line.
	if isLoginName(name) && len(args) == 1 {
		s.pendingCmd = []string{name, args[0]}
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '*'
		s.input.Prompt = "Password: "
		return s, tea.Println(theme.Info("Enter password (input is masked)"))
	}

	return s.dispatch(name, args)
}

func (s *Shell) dispatch(name string, args []string) (tea.Model, tea.Cmd) {
	res := s.dispatcher.Execute(name, args, s.sess)

	s.input.Prompt = promptFor(s.sess)

	if !res.Success {
		return s, tea.Println(theme.Error("Error: ") + res.Err)
	}
	if res.Output == "" {
		return s, nil
	}
	return s, tea.Println(res.Output)
}

func isLoginName(name string) bool {
	switch name {
	case "login", "l", "register", "signup", "reg":
		return true
	}
	return false
}

func promptFor(sess *command.Session) string {
	if sess.User != nil {
		return fmt.Sprintf("%s@SOLO-OS> ", sess.User.Username)
	}
	return "SOLO-OS> "
}

func (s *Shell) banner() string {
	var b strings.Builder
	name := "SOLO-OS"
	tagline := "Terminal BBS for the Solo House"
	if s.settings != nil {
		if s.settings.Name != "" {
			name = s.settings.Name
		}
		if s.settings.Tagline != "" {
			tagline = s.settings.Tagline
		}
	}

	b.WriteString(theme.Info(soloBanner))
	b.WriteString(theme.Success("Welcome to "+name+" - "+tagline+"!") + "\n")
	if s.settings != nil && s.settings.MOTD != "" {
		b.WriteString(theme.Accent(s.settings.MOTD) + "\n")
	}
	b.WriteString(theme.Warning("Type ") + theme.Highlight("help") + theme.Warning(" to see available commands") + "\n\n")
	b.WriteString(theme.Secondary("Popular commands:") + "\n")
	b.WriteString(theme.Highlight("  user") + " - User management and profiles\n")
	b.WriteString(theme.Highlight("  post") + " - Create and view posts, announcements, and status updates\n")
	b.WriteString(theme.Highlight("  guest") + " - Sign the guestbook\n")
	b.WriteString(theme.Highlight("  make") + " - Create your own commands\n")
	b.WriteString(theme.Highlight("  quit") + " - Exit (or use Ctrl+C)\n\n")
	b.WriteString(theme.Dim("Not logged in. Use ") + theme.Highlight("login <username>") +
		theme.Dim(" to log in or ") + theme.Highlight("guest") + theme.Dim(" to sign the guestbook"))
	return b.String()
}

const soloBanner = `
 ____   ___  _     ___        ___  ____
/ ___| / _ \| |   / _ \      / _ \/ ___|
\___ \| | | | |  | | | |____| | | \___ \
 ___) | |_| | |__| |_| |____| |_| |___) |
|____/ \___/|_____\___/      \___/|____/
`

// SplitFields splits an input line into command fields. Double-quoted
// segments keep their spaces, so a quoted description survives as one
// argument.
func SplitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch {
		case r == '"':
			if inQuotes {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			inQuotes = !inQuotes
		case r == ' ' || r == '\t':
			if inQuotes {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}
