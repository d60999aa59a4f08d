package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/contexttasks/internal/config"
	"github.com/sandeepkv93/contexttasks/internal/storage"
	"github.com/sandeepkv93/contexttasks/internal/update"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	dbPath   string
	memory   bool
	debugLog string
}

// session is an opened gateway plus whatever must be closed with it.
type session struct {
	cfg     config.Config
	gateway *storage.Gateway
	close   func() error
}

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the TUI.
func NewRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "contexttasks",
		Short: "Pick tasks by how much energy you have right now",
		Long: `contexttasks files tasks under three energy contexts (quick, focused,
low-energy), nudges you when open tasks fit your reminder window, and keeps a
running ledger of what you finish and when.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().BoolVar(&flags.memory, "memory", false, "Keep everything in memory for this run")
	root.PersistentFlags().StringVar(&flags.debugLog, "debug-log", "", "Write debug logs to this file")

	root.AddCommand(addCmd(flags))
	root.AddCommand(listCmd(flags))
	root.AddCommand(doneCmd(flags))
	root.AddCommand(rmCmd(flags))
	root.AddCommand(statsCmd(flags))
	root.AddCommand(remindCmd(flags))
	root.AddCommand(settingsCmd(flags))
	root.AddCommand(clearCmd(flags))
	root.AddCommand(versionCmd(version))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func openSession(flags *globalFlags, logger *log.Logger) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.debugLog != "" {
		cfg.DebugLog = flags.debugLog
	}

	opts := []storage.Option{storage.WithLocation(cfg.Location), storage.WithLogger(logger)}
	if flags.memory {
		return &session{
			cfg:     cfg,
			gateway: storage.NewGateway(storage.NewMemoryKV(), opts...),
			close:   func() error { return nil },
		}, nil
	}
	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	return &session{
		cfg:     cfg,
		gateway: storage.NewGateway(kv, opts...),
		close:   kv.Close,
	}, nil
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	s, err := openSession(flags, log.Default())
	if err != nil {
		return err
	}
	defer s.close()

	if s.cfg.DebugLog != "" {
		f, err := tea.LogToFile(s.cfg.DebugLog, "contexttasks")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := update.NewModel(s.gateway, update.Options{
		Location:        s.cfg.Location,
		ToastDuration:   s.cfg.ToastDuration(),
		RecheckInterval: s.cfg.RecheckInterval(),
		MarkdownStyle:   s.cfg.MarkdownStyle,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("contexttasks failed: %w", err)
	}
	return nil
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contexttasks %s\n", version)
		},
	}
}

func cliLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}
