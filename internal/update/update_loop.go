package update

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/reminder"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

// Init defers the first read until after the initial render.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.recheckCmd())
}

func (m Model) loadCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx()
	return func() tea.Msg {
		if store == nil {
			return TasksLoadedMsg{Settings: model.DefaultReminderSettings(), Stats: model.NewCompletionStats()}
		}
		return TasksLoadedMsg{
			Tasks:    store.GetTasks(ctx),
			Settings: store.GetReminderSettings(ctx),
			Stats:    store.GetStats(ctx),
		}
	}
}

func (m Model) recheckCmd() tea.Cmd {
	return tea.Tick(m.opts.RecheckInterval, func(t time.Time) tea.Msg { return RecheckMsg{At: t} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case TasksLoadedMsg:
		m.Tasks = typed.Tasks
		m.Settings = typed.Settings
		m.Stats = typed.Stats
		m.Loaded = true
		m.clampCursor()
		m.refreshReminder()
		return m, nil
	case RecheckMsg:
		m.refreshReminder()
		return m, m.recheckCmd()
	case HideToastMsg:
		if typed.Seq == m.Toast.seq {
			m.Toast.Text = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.PendingDelete != "" {
		return m.handleDeleteConfirm(msg), nil
	}
	if m.SettingsOpen {
		return m.handleSettingsKey(msg), nil
	}
	if m.Editing || m.CurrentView == model.ViewCreateTask {
		return m.handleFormKey(msg), nil
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Settings:
		m.openSettings()
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case model.ViewContextPicker:
		return m.handlePickerKey(msg), nil
	case model.ViewTaskList:
		return m.handleListKey(msg)
	case model.ViewDashboard:
		if keyStr == "esc" || keyStr == "b" || keyStr == m.Keys.Dashboard {
			m.switchView(model.ViewContextPicker)
		}
	}
	return m, nil
}

// switchView applies a base-view transition and re-evaluates the banner.
func (m *Model) switchView(v model.View) {
	m.CurrentView = v
	if v == model.ViewContextPicker {
		m.Cursor = 0
	}
	m.refreshReminder()
}

// refreshReminder only ever raises the banner; dismissal and clear-all
// lower it.
func (m *Model) refreshReminder() {
	if !m.Loaded {
		return
	}
	if reminder.ShouldShow(reminder.Input{
		Settings: m.Settings,
		View:     m.CurrentView,
		Tasks:    m.Tasks,
		Now:      m.now(),
	}) {
		m.ShowReminder = true
	}
}

// reload pulls all three records after a mutation.
func (m *Model) reload() {
	if m.store == nil {
		return
	}
	m.Tasks = m.store.GetTasks(m.ctx())
	m.Settings = m.store.GetReminderSettings(m.ctx())
	m.Stats = m.store.GetStats(m.ctx())
	m.clampCursor()
	m.refreshReminder()
}

func (m *Model) setError(err error) {
	m.LastError = err
	if err != nil {
		log.Printf("contexttasks: %v", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m *Model) showToast(text string) tea.Cmd {
	m.Toast.seq++
	m.Toast.Text = text
	seq := m.Toast.seq
	return tea.Tick(m.opts.ToastDuration, func(time.Time) tea.Msg { return HideToastMsg{Seq: seq} })
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case model.ViewContextPicker:
		leftPane = m.renderPicker()
	case model.ViewTaskList:
		leftPane = m.renderTaskList()
		rightPane = m.renderTaskDetail()
	case model.ViewCreateTask:
		leftPane = m.renderForm("new task")
	case model.ViewDashboard:
		leftPane = m.renderDashboard()
	}
	if m.Editing {
		rightPane = m.renderForm("edit task")
	}
	if m.SettingsOpen {
		rightPane = m.renderSettings()
	}
	if m.Palette.Active {
		rightPane = strings.TrimSpace(rightPane + "\n\n" + views.RenderCommandPalette(m.commandInput.View()))
	}
	rightPane = strings.TrimSpace(rightPane + m.renderHelpIfVisible())

	header := fmt.Sprintf("contexttasks | view: %s", m.CurrentView)
	if m.SelectedContext != "" {
		header += fmt.Sprintf(" | context: %s", m.SelectedContext.Label())
	}

	return views.RenderApp(views.AppData{
		Header:       header,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: views.RenderToast(m.Toast.Text),
		Footer:       m.footer(),
	})
}

func (m Model) footer() string {
	switch m.CurrentView {
	case model.ViewTaskList:
		return "keys: j/k move | a add | enter done | e edit | D delete | o sort | b back | / cmd | ? help"
	case model.ViewCreateTask:
		return "keys: tab field | ←/→ adjust | enter save | ctrl+s save | esc cancel"
	case model.ViewDashboard:
		return "keys: b back | s settings | ? help | q quit"
	default:
		return fmt.Sprintf("keys: %s/%s/%s context | %s dashboard | %s settings | %s dismiss | / cmd | %s help | %s quit",
			m.Keys.Quick, m.Keys.Focused, m.Keys.LowEnergy, m.Keys.Dashboard, m.Keys.Settings, m.Keys.Dismiss, m.Keys.Help, m.Keys.Quit)
	}
}
