package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/solohouse/solo-os/internal/admin/app"
	"github.com/solohouse/solo-os/internal/user"
)

type usersModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state usersState

	list list.Model
	err  error

	selected *user.User

	form *huh.Form

	createUsername string
	createPassword string
	createAdmin    bool
	createSave     bool

	editBio     string
	editContact string
	editStatus  string
	editSave    bool

	newPassword string
	pwConfirm   string
	pwSave      bool

	adminEnabled bool
	adminSave    bool

	deleteConfirm bool
}

type usersState int

const (
	usersStateList usersState = iota
	usersStateDetail
	usersStateCreate
	usersStateEditProfile
	usersStateResetPassword
	usersStateSetAdmin
	usersStateDelete
)

type userItem struct {
	id    int
	title string
	desc  string
	kind  string
}

func (i userItem) Title() string       { return i.title }
func (i userItem) Description() string { return i.desc }
func (i userItem) FilterValue() string { return i.title }

func newUsersModel(a *app.App) *usersModel {
	m := &usersModel{app: a, state: usersStateList}
	m.reloadList()
	return m
}

func (m *usersModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *usersModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = usersStateList
				m.form = nil
				m.selected = nil
				m.reloadList()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == usersStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	switch m.state {
	case usersStateList:
		return m.updateList(msg)
	case usersStateDetail:
		return m.updateDetail(msg)
	case usersStateCreate, usersStateEditProfile, usersStateResetPassword, usersStateSetAdmin, usersStateDelete:
		return m.updateForm(msg)
	default:
		return nil
	}
}

func (m *usersModel) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(userItem)
			if !ok {
				return cmd
			}
			if it.kind == "create" {
				m.startCreate()
				return nil
			}

			u, err := m.app.Users.GetByID(it.id)
			if err != nil {
				m.err = err
				return nil
			}
			m.selected = u
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
			return nil
		}
	}

	return cmd
}

func (m *usersModel) updateDetail(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(userItem)
			if !ok {
				return cmd
			}
			switch it.kind {
			case "edit_profile":
				m.startEditProfile()
			case "set_admin":
				m.startSetAdmin()
			case "reset_password":
				m.startResetPassword()
			case "delete":
				m.startDelete()
			case "back":
				m.back()
			}
			return nil
		}
	}

	return cmd
}

func (m *usersModel) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.err = fmt.Errorf("internal error: form not initialized")
		return nil
	}
	var cmd tea.Cmd
	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f
	if m.form.State == huh.StateCompleted {
		switch m.state {
		case usersStateCreate:
			if m.createSave {
				if m.app.Users.Exists(m.createUsername) {
					m.err = fmt.Errorf("username already exists")
					return nil
				}
				_, err := m.app.Users.Create(m.createUsername, m.createPassword, m.createAdmin)
				if err != nil {
					m.err = err
					return nil
				}
			}
			m.form = nil
			m.state = usersStateList
			m.reloadList()
		case usersStateEditProfile:
			if m.editSave && m.selected != nil {
				if err := m.app.Users.UpdateProfile(m.selected.ID, m.editBio, m.editContact, m.editStatus); err != nil {
					m.err = err
					return nil
				}
			}
			m.refreshSelected()
			m.form = nil
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
		case usersStateResetPassword:
			if m.pwSave && m.selected != nil {
				if err := m.app.Users.UpdatePassword(m.selected.ID, m.newPassword); err != nil {
					m.err = err
					return nil
				}
			}
			m.form = nil
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
		case usersStateSetAdmin:
			if m.adminSave && m.selected != nil {
				if !m.adminEnabled && m.selected.IsAdmin && m.app.Users.AdminCount() <= 1 {
					m.err = fmt.Errorf("cannot demote the last admin user")
					return nil
				}
				if err := m.app.Users.SetAdmin(m.selected.ID, m.adminEnabled); err != nil {
					m.err = err
					return nil
				}
			}
			m.refreshSelected()
			m.form = nil
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
		case usersStateDelete:
			if m.deleteConfirm && m.selected != nil {
				if m.selected.IsAdmin && m.app.Users.AdminCount() <= 1 {
					m.err = fmt.Errorf("cannot delete the last admin user")
					return nil
				}
				if err := m.app.Users.Delete(m.selected.ID); err != nil {
					m.err = err
					return nil
				}
				m.selected = nil
				m.form = nil
				m.state = usersStateList
				m.reloadList()
				return nil
			}
			m.form = nil
			m.state = usersStateDetail
			m.list = newActionList(m.width, m.height)
		}
		return nil
	}
	return cmd
}

func (m *usersModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Users error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case usersStateList:
		m.list.Title = "Users"
		return m.list.View() + "\n(q to quit, enter to select)"
	case usersStateDetail:
		if m.selected == nil {
			return "No user selected\n\n(esc to go back)"
		}
		role := "member"
		if m.selected.IsAdmin {
			role = "admin"
		}
		header := fmt.Sprintf("User: %s (%s)\n", m.selected.Username, role)
		meta := fmt.Sprintf("Bio: %s\nContact: %s\nStatus: %s\nJoined: %s\n\n",
			m.selected.Bio, m.selected.Contact, m.selected.Status,
			m.selected.CreatedAt.Format("2006-01-02"),
		)
		m.list.Title = "Actions"
		return header + meta + m.list.View() + "\n(esc to go back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *usersModel) reloadList() {
	users, err := m.app.Users.List()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(users)+1)
	items = append(items, userItem{title: "+ Create new user", desc: "Add a new account", kind: "create"})
	for _, u := range users {
		desc := "member"
		if u.IsAdmin {
			desc = "admin"
		}
		if u.Status != "" {
			desc += " • " + u.Status
		}
		items = append(items, userItem{id: u.ID, title: u.Username, desc: desc, kind: "user"})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
	m.list.Title = "Users"
}

func newActionList(w, h int) list.Model {
	items := []list.Item{
		userItem{title: "Edit profile", desc: "Bio, contact, status", kind: "edit_profile"},
		userItem{title: "Toggle admin", desc: "Grant or revoke admin privileges", kind: "set_admin"},
		userItem{title: "Reset password", desc: "Set a new password", kind: "reset_password"},
		userItem{title: "Delete user", desc: "Remove account and profile", kind: "delete"},
		userItem{title: "Back", desc: "Return to users list", kind: "back"},
	}
	l := list.New(items, list.NewDefaultDelegate(), w, h-8)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	return l
}

func (m *usersModel) startCreate() {
	m.state = usersStateCreate
	m.createUsername = ""
	m.createPassword = ""
	m.createAdmin = false
	m.createSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(&m.createUsername).Validate(nonEmpty("username")),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&m.createPassword).Validate(nonEmpty("password")),
			huh.NewConfirm().Title("Admin").Value(&m.createAdmin),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Create user?").Value(&m.createSave),
		),
	)
}

func (m *usersModel) startEditProfile() {
	m.state = usersStateEditProfile
	m.editBio = m.selected.Bio
	m.editContact = m.selected.Contact
	m.editStatus = m.selected.Status
	m.editSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Bio").Value(&m.editBio),
			huh.NewInput().Title("Contact").Value(&m.editContact),
			huh.NewInput().Title("Status").Value(&m.editStatus),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(&m.editSave),
		),
	)
}

func (m *usersModel) startResetPassword() {
	m.state = usersStateResetPassword
	m.newPassword = ""
	m.pwConfirm = ""
	m.pwSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&m.newPassword).Validate(nonEmpty("password")),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&m.pwConfirm).Validate(func(s string) error {
				if s != m.newPassword {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Reset password?").Value(&m.pwSave),
		),
	)
}

func (m *usersModel) startSetAdmin() {
	m.state = usersStateSetAdmin
	m.adminEnabled = m.selected.IsAdmin
	m.adminSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Admin privileges").Value(&m.adminEnabled),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(&m.adminSave),
		),
	)
}

func (m *usersModel) startDelete() {
	m.state = usersStateDelete
	m.deleteConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete user %q?", m.selected.Username)).
				Description("Posts and guestbook entries remain, attributed to a removed account.").
				Value(&m.deleteConfirm),
		),
	)
}

func (m *usersModel) back() {
	switch m.state {
	case usersStateList:
		m.Done = true
	case usersStateDetail:
		m.state = usersStateList
		m.selected = nil
		m.form = nil
		m.reloadList()
	default:
		m.state = usersStateDetail
		m.form = nil
		m.list = newActionList(m.width, m.height)
	}
}

func (m *usersModel) refreshSelected() {
	if m.selected == nil {
		return
	}
	u, err := m.app.Users.GetByID(m.selected.ID)
	if err == nil {
		m.selected = u
	}
}
