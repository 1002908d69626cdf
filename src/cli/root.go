package cli

import (
	"fmt"

	"github.com/Zaphoood/histedit/src/config"
	"github.com/Zaphoood/histedit/src/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags and the state derived from them.
type RootOptions struct {
	ConfigPath string
	Capacity   int
	Verbose    bool

	// Set up before any command runs
	Config config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the root command, which opens the editor.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "histedit [FILE]",
		Short: "histedit - a terminal text editor with bounded undo history",
		Long: `histedit edits a single text file. Every change is recorded in a bounded,
linear undo history which can be stepped through with the undo and redo keys,
saved to and restored from snapshot files.

Run without arguments to pick a file interactively.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(path, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/histedit/config.yaml)")
	cmd.PersistentFlags().IntVar(&opts.Capacity, "capacity", 0, "maximum number of history entries (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug messages")

	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

func (opts *RootOptions) setup(cmd *cobra.Command) error {
	c, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("capacity") {
		c.Capacity = opts.Capacity
		if err := c.Validate(); err != nil {
			return fmt.Errorf("Invalid --capacity: %w", err)
		}
	}
	opts.Config = c

	opts.Logger, err = NewLogger(c.LogFile, opts.Verbose)
	if err != nil {
		return fmt.Errorf("Failed to initialize logger: %w", err)
	}
	opts.Logger.Debug("Loaded config", zap.Int("capacity", c.Capacity), zap.String("path", opts.ConfigPath))
	return nil
}

func runEditor(path string, opts *RootOptions) error {
	p := tea.NewProgram(
		tui.NewMainModel(path, tui.Options{Config: opts.Config, Logger: opts.Logger}),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		opts.Logger.Error("Editor exited with error", zap.Error(err))
		return err
	}
	return nil
}
