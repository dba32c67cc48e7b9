package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/blackline/internal/app"
	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/infrastructure/editor"
	"github.com/doeshing/blackline/internal/ports"
)

// newFormatCommand reformats a single file in place.
func newFormatCommand(container *app.Container) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Reformat a Python file with Black",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := editor.LoadFile(args[0], encoding)
			if err != nil {
				return err
			}
			outcome, err := container.FormatService.Run(cmd.Context(), view, domain.FormatOptions{})
			if err != nil {
				return err
			}
			if outcome.Status == domain.StatusSkipped {
				retried, retryErr := offerDaemonStart(cmd, container, view)
				if retryErr != nil {
					return retryErr
				}
				if retried != nil {
					outcome = *retried
				}
			}
			if outcome.Status == domain.StatusReformatted {
				if err := view.Save(); err != nil {
					return fmt.Errorf("write %s: %w", args[0], err)
				}
			}
			RenderOutcome(cmd.OutOrStdout(), args[0], outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", "source encoding label sent to blackd")
	return cmd
}

// offerDaemonStart asks whether to start blackd after a skipped run and
// retries the invocation once when the user agrees.
func offerDaemonStart(cmd *cobra.Command, container *app.Container, view ports.EditorView) (*domain.FormatOutcome, error) {
	prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	yes, err := prompter.Confirm("blackd is not running, start it now?")
	if err != nil || !yes {
		return nil, nil
	}
	if err := container.Daemon.Start(cmd.Context(), 0); err != nil {
		return nil, fmt.Errorf("start blackd: %w", err)
	}
	outcome, err := container.FormatService.Run(cmd.Context(), view, domain.FormatOptions{})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// newDiffCommand shows what a reformat would change without touching the
// file.
func newDiffCommand(container *app.Container) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show the Black diff for a file without modifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := editor.LoadFile(args[0], "")
			if err != nil {
				return err
			}
			outcome, err := container.FormatService.Run(cmd.Context(), view, domain.FormatOptions{Diff: true})
			if err != nil {
				return err
			}
			RenderOutcome(cmd.OutOrStdout(), args[0], outcome)
			if outcome.Status != domain.StatusDiffed {
				return nil
			}
			var diff string
			for _, scratch := range view.Scratch() {
				diff = string(scratch.Content())
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			if copyToClipboard {
				clipboard := NewClipboard()
				if !clipboard.Enabled() {
					return fmt.Errorf("clipboard not available on this platform")
				}
				if err := clipboard.Copy(diff); err != nil {
					return fmt.Errorf("copy diff: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "diff copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "copy the diff to the system clipboard")
	return cmd
}

// newProjectCommand formats every selected file under a directory tree.
func newProjectCommand(container *app.Container) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "project [dir]",
		Short: "Reformat all Python files under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			spinner := NewSpinner(cmd.ErrOrStderr())
			spinner.Start()
			report, err := container.ProjectRunner.Run(cmd.Context(), root, check)
			spinner.Stop()
			if err != nil {
				return err
			}
			RenderProjectReport(cmd.OutOrStdout(), report, check)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "report diffs instead of rewriting files")
	return cmd
}

// newDoctorCommand runs environment diagnostics.
func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the formatter environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			RenderHealthReport(cmd.OutOrStdout(), report)
			return err
		},
	}
}
