package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ContextOptionData struct {
	Key         string
	Label       string
	Description string
	Open        int
}

type PickerPanelData struct {
	Banner  string
	Options []ContextOptionData
	Loaded  bool
}

type TaskItemData struct {
	ID       string
	Title    string
	Duration int
	Tags     []string
	Selected bool
}

type TaskListPanelData struct {
	Context        string
	Description    string
	Items          []TaskItemData
	Sort           string
	TotalEstimate  string
	CompletedToday []string
}

type TaskDetailData struct {
	ID       string
	Title    string
	Context  string
	Duration int
	Tags     []string
	Created  string
	NoteView string
}

// FormPanelData.Focus indexes title, context, duration, tags, note.
type FormPanelData struct {
	Heading      string
	Focus        int
	TitleView    string
	Context      string
	Duration     int
	Tags         []string
	TagInputView string
	NoteView     string
	Err          string
}

type SettingsPanelData struct {
	Enabled       bool
	Window        string
	NextReminder  string
	LastDismissed string
	ConfirmClear  bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderReminderBanner(openTasks int, dismissKey string) string {
	noun := "tasks"
	if openTasks == 1 {
		noun = "task"
	}
	return bannerStyle.Render(fmt.Sprintf("Tasks ready for you\nYou have %d %s that might match\nyour energy right now.\n[%s] got it", openTasks, noun, dismissKey))
}

func RenderPickerPanel(data PickerPanelData) string {
	var b strings.Builder
	if data.Banner != "" {
		b.WriteString(data.Banner + "\n\n")
	}
	b.WriteString("How much energy do you have right now?\n\n")
	if !data.Loaded {
		b.WriteString(mutedStyle.Render("loading...") + "\n")
	}
	for _, opt := range data.Options {
		count := "no open tasks"
		if opt.Open == 1 {
			count = "1 open task"
		} else if opt.Open > 1 {
			count = fmt.Sprintf("%d open tasks", opt.Open)
		}
		b.WriteString(fmt.Sprintf("[%s] %s (%s)\n", opt.Key, opt.Label, count))
		b.WriteString("    " + mutedStyle.Render(opt.Description) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.Context) + "\n")
	noun := "tasks"
	if len(data.Items) == 1 {
		noun = "task"
	}
	b.WriteString(fmt.Sprintf("%d %s • ~%s total • sort: %s\n\n", len(data.Items), noun, data.TotalEstimate, data.Sort))

	if len(data.Items) == 0 {
		b.WriteString(fmt.Sprintf("No %s right now\n", strings.ToLower(data.Context)))
		b.WriteString(mutedStyle.Render("Your energy might be better spent elsewhere, or create a new task.") + "\n")
	}
	for _, item := range data.Items {
		cursor := " "
		line := fmt.Sprintf("%s %s (%dm)", item.ID, item.Title, item.Duration)
		if item.Selected {
			cursor = cursorStyle.Render(">")
		}
		if len(item.Tags) > 0 {
			line += " " + mutedStyle.Render("#"+strings.Join(item.Tags, " #"))
		}
		b.WriteString(cursor + " " + line + "\n")
	}

	if len(data.CompletedToday) > 0 {
		b.WriteString("\nCompleted today\n")
		for _, title := range data.CompletedToday {
			b.WriteString("  ✓ " + doneStyle.Render(title) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	tags := "-"
	if len(data.Tags) > 0 {
		tags = strings.Join(data.Tags, ", ")
	}
	out := fmt.Sprintf("details:\nid: %s\ntitle: %s\ncontext: %s\nduration: %dm\ntags: %s\ncreated: %s",
		data.ID, data.Title, data.Context, data.Duration, tags, data.Created)
	if data.NoteView != "" {
		out += "\n\nnote:\n" + data.NoteView
	}
	return out
}

func RenderFormPanel(data FormPanelData) string {
	labels := []string{"title", "context", "duration", "tags", "note"}
	values := []string{
		data.TitleView,
		fmt.Sprintf("◀ %s ▶", data.Context),
		fmt.Sprintf("◀ %d min ▶", data.Duration),
		renderTagRow(data.Tags, data.TagInputView),
		data.NoteView,
	}

	var b strings.Builder
	b.WriteString(data.Heading + ":\n")
	for i, label := range labels {
		marker := " "
		if i == data.Focus {
			marker = cursorStyle.Render(">")
		}
		b.WriteString(fmt.Sprintf("%s %-8s %s\n", marker, label, values[i]))
	}
	if data.Err != "" {
		b.WriteString(errorStyle.Render("error: "+data.Err) + "\n")
	}
	b.WriteString(mutedStyle.Render("[tab] field [←/→] adjust [enter] save [esc] cancel"))
	return b.String()
}

func renderTagRow(tags []string, inputView string) string {
	if len(tags) == 0 {
		return inputView
	}
	chips := make([]string, 0, len(tags))
	for _, tag := range tags {
		chips = append(chips, "#"+tag)
	}
	return strings.Join(chips, " ") + " " + inputView
}

func RenderSettingsPanel(data SettingsPanelData) string {
	enabled := "off"
	if data.Enabled {
		enabled = "on"
	}
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("reminders: %s  [space] toggle\n", enabled))
	b.WriteString(fmt.Sprintf("window:    ◀ %s ▶\n", data.Window))
	b.WriteString(fmt.Sprintf("next:      %s\n", data.NextReminder))
	b.WriteString(fmt.Sprintf("dismissed: %s\n", data.LastDismissed))
	if data.ConfirmClear {
		b.WriteString(errorStyle.Render("erase all tasks, settings and stats? [y] yes, any key cancels") + "\n")
	}
	b.WriteString(mutedStyle.Render("[enter] save [C] clear all data [esc] close"))
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("help (%s):", strings.ToLower(data.CurrentView)),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
