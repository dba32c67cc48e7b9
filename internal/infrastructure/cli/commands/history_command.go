package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/blackline/internal/app"
	"github.com/doeshing/blackline/internal/domain"
)

// NewHistoryCommand lists and clears past format invocations.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past format invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.HistoryStore.Records(limit, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no history")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-11s  %-7s  %s\n",
					record.Timestamp.Format(domain.TimestampFormat),
					record.Status, record.Transport, record.File)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "maximum records to show")
	cmd.Flags().StringVar(&search, "search", "", "filter records by file or command substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	})

	return cmd
}
