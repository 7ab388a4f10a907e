package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/solohouse/solo-os/internal/admin/app"
	"github.com/solohouse/solo-os/internal/scripting"
)

type commandsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state commandsState

	list list.Model
	err  error

	selected *scripting.Record

	form          *huh.Form
	deleteConfirm bool
}

type commandsState int

const (
	commandsStateList commandsState = iota
	commandsStateDetail
	commandsStateDelete
)

type commandItem struct {
	id    int
	title string
	desc  string
}

func (i commandItem) Title() string       { return i.title }
func (i commandItem) Description() string { return i.desc }
func (i commandItem) FilterValue() string { return i.title }

func newCommandsModel(a *app.App) *commandsModel {
	m := &commandsModel{app: a, state: commandsStateList}
	m.reloadList()
	return m
}

func (m *commandsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *commandsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = commandsStateList
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
			if m.state == commandsStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	switch m.state {
	case commandsStateList:
		return m.updateList(msg)
	case commandsStateDetail:
		return m.updateDetail(msg)
	case commandsStateDelete:
		return m.updateForm(msg)
	default:
		return nil
	}
}

func (m *commandsModel) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			it, ok := m.list.SelectedItem().(commandItem)
			if !ok {
				return cmd
			}
			rec, err := m.app.Scripts.FindByName(it.title)
			if err != nil {
				m.err = err
				return nil
			}
			if rec == nil {
				m.err = fmt.Errorf("command %q no longer exists", it.title)
				return nil
			}
			m.selected = rec
			m.state = commandsStateDetail
			return nil
		}
	}

	return cmd
}

func (m *commandsModel) updateDetail(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "d", "x":
			m.startDelete()
			return nil
		case "enter":
			m.back()
			return nil
		}
	}
	return nil
}

func (m *commandsModel) updateForm(msg tea.Msg) tea.Cmd {
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
		if m.deleteConfirm && m.selected != nil {
			if err := m.app.Scripts.Delete(m.selected.ID); err != nil {
				m.err = err
				return nil
			}
			m.selected = nil
			m.form = nil
			m.state = commandsStateList
			m.reloadList()
			return nil
		}
		m.form = nil
		m.state = commandsStateDetail
		return nil
	}
	return cmd
}

func (m *commandsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Commands error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case commandsStateList:
		m.list.Title = "Custom Commands"
		return m.list.View() + "\n(q to quit, enter to inspect)"
	case commandsStateDetail:
		if m.selected == nil {
			return "No command selected\n\n(esc to go back)"
		}
		creator := m.selected.Creator
		if creator == "" {
			creator = "(removed)"
		}
		header := fmt.Sprintf("Command: %s\nCreated by: %s on %s\n%s\n\n",
			m.selected.Name, creator,
			m.selected.CreatedAt.Format("2006-01-02"),
			m.selected.Description,
		)
		return header + m.selected.Source + "\n\n(d to delete, esc to go back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *commandsModel) reloadList() {
	records, err := m.app.Scripts.All()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(records))
	for _, rec := range records {
		desc := rec.Description
		if rec.Creator != "" {
			desc += " • by " + rec.Creator
		}
		items = append(items, commandItem{id: rec.ID, title: rec.Name, desc: desc})
	}

	m.list = list.New(items, list.NewDefaultDelegate(), m.width, m.height-2)
	m.list.SetShowStatusBar(false)
	m.list.SetFilteringEnabled(true)
	m.list.SetShowHelp(true)
	m.list.Title = "Custom Commands"
}

func (m *commandsModel) startDelete() {
	m.state = commandsStateDelete
	m.deleteConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete command %q?", m.selected.Name)).
				Description("Takes effect for new sessions on the next restart.").
				Value(&m.deleteConfirm),
		),
	)
}

func (m *commandsModel) back() {
	switch m.state {
	case commandsStateList:
		m.Done = true
	case commandsStateDetail:
		m.state = commandsStateList
		m.selected = nil
		m.reloadList()
	default:
		m.state = commandsStateDetail
		m.form = nil
	}
}
