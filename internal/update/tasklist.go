package update

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/stats"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleTasks()
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "a", "n":
		m.Form = newTaskForm(m.SelectedContext)
		m.switchView(model.ViewCreateTask)
	case "enter", "c", " ":
		if t, ok := m.selectedTask(); ok {
			cmd := m.completeTask(t)
			return m, cmd
		}
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.openEditor(t)
		}
	case "D", "delete":
		if t, ok := m.selectedTask(); ok {
			m.PendingDelete = t.ID
			m.Status = StatusBar{Text: fmt.Sprintf("delete %q? y to confirm", t.Title)}
		}
	case "o":
		if m.Sort == SortDuration {
			m.Sort = SortNewest
		} else {
			m.Sort = SortDuration
		}
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("sorted by %s", m.Sort)}
	case "b", "esc":
		m.SelectedContext = ""
		m.switchView(model.ViewContextPicker)
	}
	return m, nil
}

func (m Model) handleDeleteConfirm(msg tea.KeyMsg) Model {
	id := m.PendingDelete
	m.PendingDelete = ""
	if msg.String() != "y" && msg.String() != "Y" {
		m.Status = StatusBar{Text: "delete cancelled"}
		return m
	}
	if m.store != nil {
		if err := m.store.DeleteTask(m.ctx(), id); err != nil {
			m.setError(err)
			return m
		}
	}
	m.reload()
	m.Status = StatusBar{Text: "task deleted"}
	return m
}

func (m *Model) completeTask(t model.Task) tea.Cmd {
	if m.store != nil {
		if err := m.store.CompleteTask(m.ctx(), t.ID, m.opts.Now()); err != nil {
			m.setError(err)
			return nil
		}
	}
	m.reload()
	return m.showToast("Nice. That fit your energy.")
}

// visibleTasks lists the open tasks of the selected context in the current
// sort order.
func (m Model) visibleTasks() []model.Task {
	out := make([]model.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if t.Context == m.SelectedContext && !t.Completed {
			out = append(out, t)
		}
	}
	switch m.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Duration < out[j].Duration })
	}
	return out
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) renderTaskList() string {
	visible := m.visibleTasks()
	items := make([]views.TaskItemData, 0, len(visible))
	total := 0
	for i, t := range visible {
		total += t.Duration
		items = append(items, views.TaskItemData{
			ID:       shortID(t.ID),
			Title:    t.Title,
			Duration: t.Duration,
			Tags:     t.Tags,
			Selected: i == m.Cursor,
		})
	}

	done := make([]string, 0)
	for _, t := range stats.CompletedOn(m.Tasks, m.now(), m.opts.Location) {
		if t.Context == m.SelectedContext {
			done = append(done, t.Title)
		}
	}

	return views.RenderTaskListPanel(views.TaskListPanelData{
		Context:        m.SelectedContext.Label(),
		Description:    m.SelectedContext.Description(),
		Items:          items,
		Sort:           string(m.Sort),
		TotalEstimate:  formatMinutes(total),
		CompletedToday: done,
	})
}

func (m Model) renderTaskDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:       t.ID,
		Title:    t.Title,
		Context:  t.Context.Label(),
		Duration: t.Duration,
		Tags:     t.Tags,
		Created:  t.CreatedAt.In(m.opts.Location).Format("Jan 2 15:04"),
		NoteView: views.RenderMarkdown(t.Note, m.opts.MarkdownStyle),
	})
}
