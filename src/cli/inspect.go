package cli

import (
	"fmt"
	"io"

	"github.com/Zaphoood/histedit/src/history"
	"github.com/Zaphoood/histedit/src/snapshot"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9dcbf4"))
)

// NewInspectCommand creates the command that prints a history snapshot.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SNAPSHOT",
		Short: "Print the entries of a history snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.LoadFile(args[0])
			if err != nil {
				return err
			}
			h, err := s.Store()
			if err != nil {
				return fmt.Errorf("Invalid snapshot '%s': %w", args[0], err)
			}
			opts.Logger.Debug("Inspecting snapshot", zap.String("path", args[0]), zap.Int("entries", h.Len()))
			printHistory(cmd.OutOrStdout(), args[0], h)
			return nil
		},
	}
}

func printHistory(w io.Writer, path string, h *history.Store[string]) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Snapshot:"), path)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Capacity:"), h.Capacity())
	fmt.Fprintf(w, "%s %d (cursor at %d)\n", labelStyle.Render("Entries: "), h.Len(), h.Cursor()+1)
	fmt.Fprintf(w, "%s %t\n", labelStyle.Render("Can undo:"), h.CanUndo())
	fmt.Fprintf(w, "%s %t\n\n", labelStyle.Render("Can redo:"), h.CanRedo())

	for i, entry := range h.Entries() {
		line := fmt.Sprintf("%3d  %q", i+1, entry)
		if i == h.Cursor() {
			fmt.Fprintln(w, cursorStyle.Render("> "+line))
		} else {
			fmt.Fprintln(w, "  "+line)
		}
	}
}
