package cli

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/reminder"
	"github.com/sandeepkv93/contexttasks/internal/stats"
	"github.com/spf13/cobra"
)

func remindCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Report whether the reminder banner would show right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			now := time.Now().In(s.cfg.Location)
			tasks := s.gateway.GetTasks(cmd.Context())
			settings := s.gateway.GetReminderSettings(cmd.Context())
			out := cmd.OutOrStdout()
			if reminder.ShouldShow(reminder.Input{
				Settings: settings,
				View:     model.ViewContextPicker,
				Tasks:    tasks,
				Now:      now,
			}) {
				fmt.Fprintf(out, "yes: %d open tasks might match your energy right now\n", reminder.OpenTaskCount(tasks))
				return nil
			}
			fmt.Fprintln(out, "no")
			if at, ok := reminder.NextOpportunity(settings, now); ok && reminder.OpenTaskCount(tasks) > 0 {
				fmt.Fprintf(out, "next opportunity: %s\n", at.Format("Mon Jan 2 15:04"))
			}
			return nil
		},
	}
}

func settingsCmd(flags *globalFlags) *cobra.Command {
	var (
		enabled bool
		window  string
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change reminder settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			current := s.gateway.GetReminderSettings(cmd.Context())
			changed := false
			if cmd.Flags().Changed("enabled") {
				current.Enabled = enabled
				changed = true
			}
			if cmd.Flags().Changed("window") {
				w, err := model.ParseReminderWindow(window)
				if err != nil {
					return err
				}
				current.Window = w
				changed = true
			}
			if changed {
				if err := s.gateway.SaveReminderSettings(cmd.Context(), current); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enabled: %t\nwindow: %s\n", current.Enabled, current.Window)
			if current.LastDismissed != nil {
				fmt.Fprintf(out, "last dismissed: %s\n", current.LastDismissed.In(s.cfg.Location).Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", true, "Enable reminders")
	cmd.Flags().StringVar(&window, "window", "", "Reminder window (morning, afternoon, evening, anytime)")
	return cmd
}

func statsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print completion statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			summary := stats.Summarize(s.gateway.GetStats(cmd.Context()), time.Now(), s.cfg.Location)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "completed: %d\n", summary.Total)
			for _, c := range summary.Contexts {
				fmt.Fprintf(out, "  %-12s %3d (%.0f%%)\n", c.Context, c.Count, c.Percent)
			}
			fmt.Fprintln(out, "last 7 days:")
			for _, d := range summary.LastWeek {
				fmt.Fprintf(out, "  %s %s %d\n", d.Day, d.Weekday, d.Count)
			}
			if len(summary.PeakHours) > 0 {
				fmt.Fprintln(out, "peak hours:")
				for _, h := range summary.PeakHours {
					fmt.Fprintf(out, "  %-5s %d\n", h.Label, h.Count)
				}
			}
			return nil
		},
	}
}

func clearCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase all tasks, reminder settings and statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			s, err := openSession(flags, cliLogger(cmd))
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.gateway.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm erasing everything")
	return cmd
}
