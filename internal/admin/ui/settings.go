package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/solohouse/solo-os/internal/admin/app"
	"github.com/solohouse/solo-os/internal/db"
)

type settingsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form *huh.Form
	err  error

	name    string
	tagline string
	motd    string
	save    bool
}

func newSettingsModel(a *app.App) *settingsModel {
	m := &settingsModel{app: a}

	settings, err := a.DB.GetBoardSettings()
	if err != nil {
		m.err = err
		return m
	}

	m.name = settings.Name
	m.tagline = settings.Tagline
	m.motd = settings.MOTD

	m.form = buildSettingsForm(&m.name, &m.tagline, &m.motd, &m.save)
	return m
}

func buildSettingsForm(name, tagline, motd *string, save *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Board Name").Value(name).Validate(nonEmpty("name")),
			huh.NewInput().Title("Tagline").Value(tagline),
			huh.NewText().Title("Message of the Day").Value(motd),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(save),
		),
	)
}

func (m *settingsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *settingsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.Done = true
			}
		}
		return nil
	}

	if m.form == nil {
		m.form = buildSettingsForm(&m.name, &m.tagline, &m.motd, &m.save)
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
		if m.save {
			settings := &db.BoardSettings{
				Name:    strings.TrimSpace(m.name),
				Tagline: strings.TrimSpace(m.tagline),
				MOTD:    strings.TrimSpace(m.motd),
			}
			if err := m.app.DB.UpdateBoardSettings(settings); err != nil {
				m.err = err
				return nil
			}
		}
		m.Done = true
		return nil
	}

	return cmd
}

func (m *settingsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Settings error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	return m.form.View() + "\n\n(esc to go back)"
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
