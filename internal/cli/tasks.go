package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/spf13/cobra"
)

func addCmd(flags *globalFlags) *cobra.Command {
	var (
		contextName string
		minutes     int
		tags        []string
		note        string
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseContext(contextName)
			if err != nil {
				return err
			}
			task := model.NewTask(strings.Join(args, " "), c, model.SnapDuration(minutes), tags, note, time.Now())
			if err := task.Validate(); err != nil {
				return err
			}

			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.gateway.AddTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %q to %s (%dm)\n", shortID(task.ID), task.Title, task.Context.Label(), task.Duration)
			return nil
		},
	}
	cmd.Flags().StringVarP(&contextName, "context", "c", string(model.ContextQuick), "Energy context (quick, focused, low-energy)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", model.DefaultDurationMinutes, "Estimated minutes (5-120, step 5)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional markdown note")
	return cmd
}

func listCmd(flags *globalFlags) *cobra.Command {
	var (
		contextName string
		tag         string
		all         bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter model.TaskContext
			if contextName != "" {
				c, err := model.ParseContext(contextName)
				if err != nil {
					return err
				}
				filter = c
			}

			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			tasks := s.gateway.GetTasks(cmd.Context())
			shown := make([]model.Task, 0, len(tasks))
			for _, t := range tasks {
				if filter != "" && t.Context != filter {
					continue
				}
				if t.Completed && !all {
					continue
				}
				if tag != "" && !t.HasTag(strings.TrimPrefix(tag, "#")) {
					continue
				}
				shown = append(shown, t)
			}
			sort.SliceStable(shown, func(i, j int) bool { return shown[i].Duration < shown[j].Duration })

			out := cmd.OutOrStdout()
			if len(shown) == 0 {
				fmt.Fprintln(out, "no tasks")
				return nil
			}
			for _, t := range shown {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				line := fmt.Sprintf("[%s] %s  %-10s %3dm  %s", mark, shortID(t.ID), t.Context, t.Duration, t.Title)
				if len(t.Tags) > 0 {
					line += "  #" + strings.Join(t.Tags, " #")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&contextName, "context", "c", "", "Only show this context")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only show tasks with this tag")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func doneCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			t, err := resolveTask(s.gateway.GetTasks(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			if t.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%q is already done\n", t.Title)
				return nil
			}
			if err := s.gateway.CompleteTask(cmd.Context(), t.ID, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %q. Nice. That fit your energy.\n", t.Title)
			return nil
		},
	}
}

func rmCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task by id or unique id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			t, err := resolveTask(s.gateway.GetTasks(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			if err := s.gateway.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", t.Title)
			return nil
		},
	}
}

func resolveTask(tasks []model.Task, prefix string) (model.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return model.Task{}, fmt.Errorf("task id is required")
	}
	var matches []model.Task
	for _, t := range tasks {
		if t.ID == prefix {
			return t, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("no task with id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("id prefix %q matches %d tasks", prefix, len(matches))
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
