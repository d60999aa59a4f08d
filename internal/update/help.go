package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: m.keyBindings(m.globalBindings()),
			full:  [][]key.Binding{m.keyBindings(m.globalBindings())},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Settings, Action: "settings"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case model.ViewContextPicker:
		return []KeyBinding{
			{Key: m.Keys.Quick, Action: "quick tasks"},
			{Key: m.Keys.Focused, Action: "focused tasks"},
			{Key: m.Keys.LowEnergy, Action: "low-energy tasks"},
			{Key: m.Keys.Dashboard, Action: "dashboard"},
			{Key: m.Keys.Dismiss, Action: "dismiss reminder"},
		}
	case model.ViewTaskList:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a", Action: "new task"},
			{Key: "enter/c", Action: "complete"},
			{Key: "e", Action: "edit"},
			{Key: "D", Action: "delete (confirm with y)"},
			{Key: "o", Action: "toggle sort"},
			{Key: "b/esc", Action: "back to contexts"},
		}
	case model.ViewCreateTask:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "←/→", Action: "change context or duration"},
			{Key: "enter", Action: "add tag / save"},
			{Key: "ctrl+s", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	case model.ViewDashboard:
		return []KeyBinding{{Key: "b/esc", Action: "back to contexts"}}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) keyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
