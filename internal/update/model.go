package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/contexttasks/internal/model"
)

// Store is the subset of the persistence gateway the shell drives.
type Store interface {
	GetTasks(ctx context.Context) []model.Task
	AddTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) error
	CompleteTask(ctx context.Context, id string, at time.Time) error
	DeleteTask(ctx context.Context, id string) error
	GetReminderSettings(ctx context.Context) model.ReminderSettings
	SaveReminderSettings(ctx context.Context, settings model.ReminderSettings) error
	GetStats(ctx context.Context) model.CompletionStats
	ClearAll(ctx context.Context) error
}

type SortOrder string

const (
	SortDuration SortOrder = "duration"
	SortNewest   SortOrder = "newest"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Quick     string
	Focused   string
	LowEnergy string
	Dashboard string
	Settings  string
	Dismiss   string
	Help      string
	Quit      string
}

type formField int

const (
	fieldTitle formField = iota
	fieldContext
	fieldDuration
	fieldTags
	fieldNote
	fieldCount
)

// TaskForm backs both the create-task view and the editing overlay.
type TaskForm struct {
	EditingID string
	Focus     formField
	Context   model.TaskContext
	Duration  int
	Tags      []string
	Err       string

	title    textinput.Model
	tagInput textinput.Model
	note     textinput.Model
}

type SettingsForm struct {
	Enabled      bool
	Window       model.ReminderWindow
	ConfirmClear bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Toast struct {
	Text string
	seq  int
}

type Options struct {
	Now             func() time.Time
	Location        *time.Location
	ToastDuration   time.Duration
	RecheckInterval time.Duration
	MarkdownStyle   string
}

type Model struct {
	CurrentView     model.View
	SelectedContext model.TaskContext
	Tasks           []model.Task
	Settings        model.ReminderSettings
	Stats           model.CompletionStats
	Loaded          bool
	ShowReminder    bool
	Editing         bool
	SettingsOpen    bool
	Form            TaskForm
	SettingsForm    SettingsForm
	PendingDelete   string
	Sort            SortOrder
	Cursor          int
	Toast           Toast
	Palette         CommandPaletteState
	HelpVisible     bool
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	store         Store
	opts          Options
	commandInput  textinput.Model
	shareProgress progress.Model
	helpModel     help.Model
}

type TasksLoadedMsg struct {
	Tasks    []model.Task
	Settings model.ReminderSettings
	Stats    model.CompletionStats
}

// RecheckMsg re-evaluates reminder eligibility as the wall clock moves.
type RecheckMsg struct {
	At time.Time
}

type HideToastMsg struct {
	Seq int
}

func DefaultOptions() Options {
	return Options{
		Now:             time.Now,
		Location:        time.Local,
		ToastDuration:   2 * time.Second,
		RecheckInterval: time.Minute,
		MarkdownStyle:   "dark",
	}
}

func NewModel(store Store, opts Options) Model {
	def := DefaultOptions()
	if opts.Now == nil {
		opts.Now = def.Now
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = def.ToastDuration
	}
	if opts.RecheckInterval <= 0 {
		opts.RecheckInterval = def.RecheckInterval
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = def.MarkdownStyle
	}

	m := Model{
		CurrentView: model.ViewContextPicker,
		Settings:    model.DefaultReminderSettings(),
		Stats:       model.NewCompletionStats(),
		Sort:        SortDuration,
		Keys: GlobalKeyMap{
			Quick:     "1",
			Focused:   "2",
			LowEnergy: "3",
			Dashboard: "d",
			Settings:  "s",
			Dismiss:   "x",
			Help:      "?",
			Quit:      "q",
		},
		store: store,
		opts:  opts,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add quick 10 email client #work"

	m.shareProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	m.helpModel = help.New()
	m.Form = newTaskForm(model.ContextQuick)
}

func newTaskForm(c model.TaskContext) TaskForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 120
	title.Focus()

	tagInput := textinput.New()
	tagInput.Placeholder = "tag, enter to add"
	tagInput.CharLimit = 32

	note := textinput.New()
	note.Placeholder = "optional note (markdown)"
	note.CharLimit = 500

	if !c.IsValid() {
		c = model.ContextQuick
	}
	return TaskForm{
		Focus:    fieldTitle,
		Context:  c,
		Duration: model.DefaultDurationMinutes,
		Tags:     []string{},
		title:    title,
		tagInput: tagInput,
		note:     note,
	}
}

func (m Model) ctx() context.Context {
	return context.Background()
}

func (m Model) now() time.Time {
	return m.opts.Now().In(m.opts.Location)
}
