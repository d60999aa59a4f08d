package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

func (m *Model) openEditor(t model.Task) {
	f := newTaskForm(t.Context)
	f.EditingID = t.ID
	f.Duration = model.SnapDuration(t.Duration)
	f.Tags = append([]string{}, t.Tags...)
	f.title.SetValue(t.Title)
	f.title.CursorEnd()
	f.note.SetValue(t.Note)
	f.note.CursorEnd()
	m.Form = f
	m.Editing = true
}

func (m *Model) closeForm() {
	if m.Editing {
		m.Editing = false
	} else {
		m.switchView(model.ViewTaskList)
	}
	m.Form = newTaskForm(m.SelectedContext)
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	f := &m.Form
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "cancelled"}
		return m
	case "ctrl+s":
		return m.saveForm()
	case "tab", "down":
		f.focus((f.Focus + 1) % fieldCount)
		return m
	case "shift+tab", "up":
		f.focus((f.Focus + fieldCount - 1) % fieldCount)
		return m
	case "enter":
		if f.Focus == fieldTags {
			f.addTag()
			return m
		}
		return m.saveForm()
	}

	switch f.Focus {
	case fieldContext:
		switch msg.String() {
		case "left", "h":
			f.Context = cycleContext(f.Context, -1)
		case "right", "l", " ":
			f.Context = cycleContext(f.Context, 1)
		}
	case fieldDuration:
		switch msg.String() {
		case "left", "h", "-":
			f.Duration = model.SnapDuration(f.Duration - model.DurationStepMinutes)
		case "right", "l", "+":
			f.Duration = model.SnapDuration(f.Duration + model.DurationStepMinutes)
		}
	case fieldTitle:
		f.title = typeInto(f.title, msg)
	case fieldTags:
		if msg.Type == tea.KeyBackspace && f.tagInput.Value() == "" {
			if len(f.Tags) > 0 {
				f.Tags = f.Tags[:len(f.Tags)-1]
			}
			return m
		}
		f.tagInput = typeInto(f.tagInput, msg)
	case fieldNote:
		f.note = typeInto(f.note, msg)
	}
	return m
}

func (f *TaskForm) focus(field formField) {
	f.Focus = field
	f.title.Blur()
	f.tagInput.Blur()
	f.note.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldTags:
		f.tagInput.Focus()
	case fieldNote:
		f.note.Focus()
	}
}

// addTag appends the pending tag input, ignoring blanks and duplicates.
func (f *TaskForm) addTag() {
	tag := strings.TrimSpace(f.tagInput.Value())
	f.tagInput.SetValue("")
	if tag == "" {
		return
	}
	for _, existing := range f.Tags {
		if existing == tag {
			return
		}
	}
	f.Tags = append(f.Tags, tag)
}

func (m Model) saveForm() Model {
	f := m.Form
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		m.Form.Err = "title is required"
		return m
	}
	tags := f.Tags
	if pending := strings.TrimSpace(f.tagInput.Value()); pending != "" {
		tags = append(append([]string{}, tags...), pending)
	}

	if f.EditingID != "" {
		note := f.note.Value()
		c := f.Context
		duration := f.Duration
		patch := model.TaskPatch{
			Title:    &title,
			Context:  &c,
			Duration: &duration,
			Tags:     tags,
			SetTags:  true,
			Note:     &note,
		}
		if m.store != nil {
			if err := m.store.UpdateTask(m.ctx(), f.EditingID, patch); err != nil {
				m.setError(err)
				return m
			}
		}
		m.closeForm()
		m.reload()
		m.Status = StatusBar{Text: fmt.Sprintf("updated %q", title)}
		return m
	}

	task := model.NewTask(title, f.Context, f.Duration, tags, f.note.Value(), m.opts.Now())
	if err := task.Validate(); err != nil {
		m.Form.Err = err.Error()
		return m
	}
	if m.store != nil {
		if err := m.store.AddTask(m.ctx(), task); err != nil {
			m.setError(err)
			return m
		}
	}
	m.closeForm()
	m.reload()
	m.Status = StatusBar{Text: fmt.Sprintf("added %q to %s", title, task.Context.Label())}
	return m
}

func (m Model) renderForm(heading string) string {
	f := m.Form
	return views.RenderFormPanel(views.FormPanelData{
		Heading:      heading,
		Focus:        int(f.Focus),
		TitleView:    f.title.View(),
		Context:      f.Context.Label(),
		Duration:     f.Duration,
		Tags:         f.Tags,
		TagInputView: f.tagInput.View(),
		NoteView:     f.note.View(),
		Err:          f.Err,
	})
}

func cycleContext(c model.TaskContext, step int) model.TaskContext {
	n := len(model.Contexts)
	for i, candidate := range model.Contexts {
		if candidate == c {
			return model.Contexts[((i+step)%n+n)%n]
		}
	}
	return model.Contexts[0]
}

// typeInto feeds a key into a text input, keeping the cursor at the end.
func typeInto(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		in.SetValue(in.Value() + string(msg.Runes))
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			in.SetValue(in.Value() + " ")
		}
	case tea.KeyBackspace:
		runes := []rune(in.Value())
		if len(runes) > 0 {
			in.SetValue(string(runes[:len(runes)-1]))
		}
	default:
		return in
	}
	in.CursorEnd()
	return in
}
