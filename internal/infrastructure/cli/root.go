package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/blackline/internal/app"
	"github.com/doeshing/blackline/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	formatCmd := newFormatCommand(container)

	root := &cobra.Command{
		Use:   "blackline [file]",
		Short: "blackline - Black formatter integration",
		Long:  "blackline reformats Python buffers through the Black formatter, either as a subprocess or via a local blackd daemon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			formatCmd.SetArgs(args)
			return formatCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(formatCmd)
	root.AddCommand(newDiffCommand(container))
	root.AddCommand(newProjectCommand(container))
	root.AddCommand(commands.NewBlackdCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
