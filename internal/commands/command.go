package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

type Type string

const (
	TypeAdd       Type = "add"
	TypeDone      Type = "done"
	TypeDelete    Type = "delete"
	TypeWindow    Type = "window"
	TypeReminders Type = "reminders"
	TypeShow      Type = "show"
	TypeClear     Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Context  model.TaskContext
	Duration int
	Title    string
	Tags     []string
}

type TargetArgs struct {
	IDPrefix string
}

type WindowArgs struct {
	Window model.ReminderWindow
}

type RemindersArgs struct {
	Enabled bool
}

// ShowArgs names a screen: "picker", "dashboard" or a task context.
type ShowArgs struct {
	Screen  string
	Context model.TaskContext
}

type Command struct {
	Type      Type
	Raw       string
	Add       *AddArgs
	Target    *TargetArgs
	Window    *WindowArgs
	Reminders *RemindersArgs
	Show      *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch head {
	case "add", "new":
		return parseAdd(input, args)
	case "done", "complete":
		return parseTarget(input, TypeDone, args)
	case "delete", "rm":
		return parseTarget(input, TypeDelete, args)
	case "window":
		return parseWindow(input, args)
	case "reminders", "remind":
		return parseReminders(input, args)
	case "show", "go":
		return parseShow(input, args)
	case "clear":
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseMinutes accepts "25m" at any size, or a bare number only inside the
// form range so titles such as "2024 report" keep their leading number.
func parseMinutes(word string) (int, bool) {
	if trimmed := strings.TrimSuffix(strings.ToLower(word), "m"); trimmed != strings.ToLower(word) {
		n, err := strconv.Atoi(trimmed)
		return n, err == nil
	}
	n, err := strconv.Atoi(word)
	if err != nil || n < model.MinDurationMinutes || n > model.MaxDurationMinutes {
		return 0, false
	}
	return n, true
}

// parseAdd reads "add <context> [minutes] <title...> [#tag...]".
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a context and a title"}
	}
	c, err := model.ParseContext(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	rest := args[1:]
	duration := model.DefaultDurationMinutes
	if n, ok := parseMinutes(rest[0]); ok {
		duration = model.SnapDuration(n)
		rest = rest[1:]
	}

	words := make([]string, 0, len(rest))
	tags := make([]string, 0)
	for _, word := range rest {
		if strings.HasPrefix(word, "#") && len(word) > 1 {
			tags = append(tags, strings.TrimPrefix(word, "#"))
			continue
		}
		words = append(words, word)
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		Context:  c,
		Duration: duration,
		Title:    title,
		Tags:     model.NormalizeTags(tags),
	}}, nil
}

func parseTarget(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", t)}
	}
	return Command{Type: t, Raw: raw, Target: &TargetArgs{IDPrefix: strings.ToLower(args[0])}}, nil
}

func parseWindow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "window requires morning, afternoon, evening or anytime"}
	}
	w, err := model.ParseReminderWindow(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{Window: w}}, nil
}

func parseReminders(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reminders requires on or off"}
	}
	switch strings.ToLower(args[0]) {
	case "on", "enable", "yes":
		return Command{Type: TypeReminders, Raw: raw, Reminders: &RemindersArgs{Enabled: true}}, nil
	case "off", "disable", "no":
		return Command{Type: TypeReminders, Raw: raw, Reminders: &RemindersArgs{Enabled: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("reminders expects on or off, got %q", args[0])}
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a screen"}
	}
	screen := strings.ToLower(args[0])
	switch screen {
	case "picker", "home":
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: "picker"}}, nil
	case "dashboard", "stats":
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: "dashboard"}}, nil
	}
	c, err := model.ParseContext(screen)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown screen: %s", args[0])}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: "context", Context: c}}, nil
}
