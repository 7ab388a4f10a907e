package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solohouse/solo-os/internal/admin/app"
)

type screen int

const (
	screenHome screen = iota
	screenSettings
	screenUsers
	screenCommands
)

type rootModel struct {
	app *app.App

	width  int
	height int

	active screen

	homeList list.Model
	err      error

	settings *settingsModel
	users    *usersModel
	commands *commandsModel
}

type menuItem struct {
	title string
	desc  string
	to    screen
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func NewRootModel(a *app.App) tea.Model {
	items := []list.Item{
		menuItem{title: "Board Settings", desc: "Edit board name, tagline, MOTD", to: screenSettings},
		menuItem{title: "Users", desc: "Manage user accounts", to: screenUsers},
		menuItem{title: "Custom Commands", desc: "Inspect and remove user-authored commands", to: screenCommands},
		menuItem{title: "Quit", desc: "Exit", to: -1},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "SOLO-OS Admin"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return &rootModel{
		app:      a,
		active:   screenHome,
		homeList: l,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.homeList.SetSize(msg.Width, msg.Height-2)
		if m.settings != nil {
			m.settings.SetSize(msg.Width, msg.Height)
		}
		if m.users != nil {
			m.users.SetSize(msg.Width, msg.Height)
		}
		if m.commands != nil {
			m.commands.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.active {
	case screenHome:
		return m.updateHome(msg)
	case screenSettings:
		if m.settings == nil {
			m.settings = newSettingsModel(m.app)
			m.settings.SetSize(m.width, m.height)
		}
		cmd := m.settings.Update(msg)
		if m.settings.Done {
			m.active = screenHome
			m.settings = nil
		}
		return m, cmd
	case screenUsers:
		if m.users == nil {
			m.users = newUsersModel(m.app)
			m.users.SetSize(m.width, m.height)
		}
		cmd := m.users.Update(msg)
		if m.users.Done {
			m.active = screenHome
			m.users = nil
		}
		return m, cmd
	case screenCommands:
		if m.commands == nil {
			m.commands = newCommandsModel(m.app)
			m.commands.SetSize(m.width, m.height)
		}
		cmd := m.commands.Update(msg)
		if m.commands.Done {
			m.active = screenHome
			m.commands = nil
		}
		return m, cmd
	default:
		return m, nil
	}
}

func (m *rootModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.homeList.SelectedItem().(menuItem); ok {
				if it.to == -1 {
					return m, tea.Quit
				}
				m.activate(it.to)
				return m, nil
			}
		}
	}

	return m, cmd
}

func (m *rootModel) activate(s screen) {
	m.active = s

	switch s {
	case screenSettings:
		if m.settings == nil {
			m.settings = newSettingsModel(m.app)
			m.settings.SetSize(m.width, m.height)
		}
	case screenUsers:
		if m.users == nil {
			m.users = newUsersModel(m.app)
			m.users.SetSize(m.width, m.height)
		}
	case screenCommands:
		if m.commands == nil {
			m.commands = newCommandsModel(m.app)
			m.commands.SetSize(m.width, m.height)
		}
	}
}

func (m *rootModel) View() string {
	if m.err != nil {
		return errStyle.Render("Error: ") + m.err.Error()
	}

	switch m.active {
	case screenHome:
		return m.homeList.View()
	case screenSettings:
		if m.settings == nil {
			return "Loading settings..."
		}
		return m.settings.View()
	case screenUsers:
		if m.users == nil {
			return "Loading users..."
		}
		return m.users.View()
	case screenCommands:
		if m.commands == nil {
			return "Loading commands..."
		}
		return m.commands.View()
	default:
		return titleStyle.Render("Unknown screen") + "\n" + fmt.Sprint(m.active)
	}
}
