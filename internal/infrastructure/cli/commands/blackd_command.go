package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/blackline/internal/app"
)

// NewBlackdCommand manages the blackd daemon lifecycle.
func NewBlackdCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blackd",
		Short: "Manage the blackd formatting daemon",
	}
	cmd.AddCommand(newBlackdStartCommand(container))
	cmd.AddCommand(newBlackdStopCommand(container))
	cmd.AddCommand(newBlackdStatusCommand(container))
	return cmd
}

func newBlackdStartCommand(container *app.Container) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start blackd and wait until it accepts connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Daemon.Ready() {
				fmt.Fprintf(cmd.OutOrStdout(), "blackd already running on port %d\n", container.Daemon.RunningPort())
				return nil
			}
			if err := container.Daemon.Start(cmd.Context(), port); err != nil {
				return fmt.Errorf("start blackd: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blackd listening on port %d\n", container.Daemon.RunningPort())
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override the configured blackd port")
	return cmd
}

func newBlackdStopCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the blackd process started by this tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Daemon.Stop(); err != nil {
				return fmt.Errorf("stop blackd: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "blackd stopped")
			return nil
		},
	}
}

func newBlackdStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and readiness",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if container.Daemon.Ready() {
				fmt.Fprintf(cmd.OutOrStdout(), "blackd is ready on port %d\n", container.Daemon.RunningPort())
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blackd is not responding (state %s)\n", container.Daemon.State())
		},
	}
}
