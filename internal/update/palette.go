package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/commands"
	"github.com/sandeepkv93/contexttasks/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	m.commandInput = typeInto(m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	m.LastError = nil
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := model.NewTask(a.Title, a.Context, a.Duration, a.Tags, "", m.opts.Now())
			if err := task.Validate(); err != nil {
				return commands.Result{}, err
			}
			if m.store != nil {
				if err := m.store.AddTask(m.ctx(), task); err != nil {
					return commands.Result{}, err
				}
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("added %q to %s (%s)", task.Title, task.Context.Label(), shortID(task.ID))}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := m.findTask(a.IDPrefix)
			if err != nil {
				return commands.Result{}, err
			}
			if t.Completed {
				return commands.Result{Message: fmt.Sprintf("%q is already done", t.Title)}, nil
			}
			follow = m.completeTask(t)
			if m.LastError != nil {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("completed %q", t.Title)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := m.findTask(a.IDPrefix)
			if err != nil {
				return commands.Result{}, err
			}
			if m.store != nil {
				if err := m.store.DeleteTask(m.ctx(), t.ID); err != nil {
					return commands.Result{}, err
				}
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("deleted %q", t.Title)}, nil
		},
		Window: func(a commands.WindowArgs) (commands.Result, error) {
			m.saveSettings(m.Settings.Enabled, a.Window)
			if m.LastError != nil {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reminders: func(a commands.RemindersArgs) (commands.Result, error) {
			m.saveSettings(a.Enabled, m.Settings.Window)
			if m.LastError != nil {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.Screen {
			case "dashboard":
				m.SelectedContext = ""
				m.switchView(model.ViewDashboard)
			case "context":
				m.selectContext(a.Context)
			default:
				m.SelectedContext = ""
				m.switchView(model.ViewContextPicker)
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", m.CurrentView)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.openSettings()
			m.SettingsForm.ConfirmClear = true
			return commands.Result{Message: "erase all tasks, settings and stats? y to confirm"}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}

// findTask resolves a unique task by id prefix.
func (m Model) findTask(prefix string) (model.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var match *model.Task
	for i := range m.Tasks {
		if strings.HasPrefix(m.Tasks[i].ID, prefix) {
			if match != nil {
				return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("id prefix %q is ambiguous", prefix)}
			}
			match = &m.Tasks[i]
		}
	}
	if match == nil {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %q", prefix)}
	}
	return *match, nil
}
