package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/reminder"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

func (m *Model) openSettings() {
	m.SettingsOpen = true
	m.SettingsForm = SettingsForm{Enabled: m.Settings.Enabled, Window: m.Settings.Window}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	keyStr := msg.String()
	if m.SettingsForm.ConfirmClear {
		m.SettingsForm.ConfirmClear = false
		if keyStr == "y" || keyStr == "Y" {
			m.clearAll()
		} else {
			m.Status = StatusBar{Text: "clear cancelled"}
		}
		return m
	}

	switch keyStr {
	case " ", "t":
		m.SettingsForm.Enabled = !m.SettingsForm.Enabled
	case "left", "h":
		m.SettingsForm.Window = m.SettingsForm.Window.Next(-1)
	case "right", "l":
		m.SettingsForm.Window = m.SettingsForm.Window.Next(1)
	case "enter":
		m.saveSettings(m.SettingsForm.Enabled, m.SettingsForm.Window)
		if m.LastError == nil {
			m.SettingsOpen = false
		}
	case "C":
		m.SettingsForm.ConfirmClear = true
		m.Status = StatusBar{Text: "erase all tasks, settings and stats? y to confirm", IsError: true}
	case "esc", m.Keys.Settings:
		m.SettingsOpen = false
	}
	return m
}

// saveSettings keeps the dismissal history and replaces enabled/window.
func (m *Model) saveSettings(enabled bool, window model.ReminderWindow) {
	next := m.Settings
	next.Enabled = enabled
	next.Window = window
	if m.store != nil {
		if err := m.store.SaveReminderSettings(m.ctx(), next); err != nil {
			m.setError(err)
			return
		}
	}
	m.LastError = nil
	m.Settings = next
	m.refreshReminder()
	m.Status = StatusBar{Text: fmt.Sprintf("reminders %s, window %s", onOff(enabled), window)}
}

// clearAll wipes every record and returns to the picker with nothing selected.
func (m *Model) clearAll() {
	if m.store != nil {
		if err := m.store.ClearAll(m.ctx()); err != nil {
			m.setError(err)
			return
		}
	}
	m.SettingsOpen = false
	m.Editing = false
	m.PendingDelete = ""
	m.ShowReminder = false
	m.SelectedContext = ""
	m.Cursor = 0
	m.CurrentView = model.ViewContextPicker
	m.Form = newTaskForm(model.ContextQuick)
	m.reload()
	if m.store == nil {
		m.Tasks = nil
		m.Settings = model.DefaultReminderSettings()
		m.Stats = model.NewCompletionStats()
	}
	m.Status = StatusBar{Text: "all data cleared"}
}

func (m Model) renderSettings() string {
	next := "reminders off"
	draft := m.Settings
	draft.Enabled = m.SettingsForm.Enabled
	draft.Window = m.SettingsForm.Window
	if at, ok := reminder.NextOpportunity(draft, m.now()); ok {
		next = at.Format("Mon Jan 2 15:04")
	}
	lastDismissed := "never"
	if m.Settings.LastDismissed != nil {
		lastDismissed = m.Settings.LastDismissed.In(m.opts.Location).Format("Mon Jan 2 15:04")
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Enabled:       m.SettingsForm.Enabled,
		Window:        string(m.SettingsForm.Window),
		NextReminder:  next,
		LastDismissed: lastDismissed,
		ConfirmClear:  m.SettingsForm.ConfirmClear,
	})
}
