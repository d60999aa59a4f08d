package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/reminder"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

func (m Model) handlePickerKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Quick:
		m.selectContext(model.ContextQuick)
	case m.Keys.Focused:
		m.selectContext(model.ContextFocused)
	case m.Keys.LowEnergy:
		m.selectContext(model.ContextLowEnergy)
	case m.Keys.Dashboard:
		m.switchView(model.ViewDashboard)
	case m.Keys.Dismiss:
		m.dismissReminder()
	}
	return m
}

func (m *Model) selectContext(c model.TaskContext) {
	m.SelectedContext = c
	m.Cursor = 0
	m.switchView(model.ViewTaskList)
}

func (m *Model) dismissReminder() {
	if !m.ShowReminder {
		return
	}
	next := reminder.Dismiss(m.Settings, m.now())
	if m.store != nil {
		if err := m.store.SaveReminderSettings(m.ctx(), next); err != nil {
			m.setError(err)
			return
		}
	}
	m.Settings = next
	m.ShowReminder = false
	m.Status = StatusBar{Text: "reminder dismissed for 12 hours"}
}

func (m Model) openCounts() map[model.TaskContext]int {
	counts := make(map[model.TaskContext]int, len(model.Contexts))
	for _, t := range m.Tasks {
		if !t.Completed {
			counts[t.Context]++
		}
	}
	return counts
}

func (m Model) renderPicker() string {
	counts := m.openCounts()
	options := make([]views.ContextOptionData, 0, len(model.Contexts))
	keys := []string{m.Keys.Quick, m.Keys.Focused, m.Keys.LowEnergy}
	for i, c := range model.Contexts {
		options = append(options, views.ContextOptionData{
			Key:         keys[i],
			Label:       c.Label(),
			Description: c.Description(),
			Open:        counts[c],
		})
	}
	banner := ""
	if m.ShowReminder {
		banner = views.RenderReminderBanner(reminder.OpenTaskCount(m.Tasks), m.Keys.Dismiss)
	}
	return views.RenderPickerPanel(views.PickerPanelData{
		Banner:  banner,
		Options: options,
		Loaded:  m.Loaded,
	})
}
