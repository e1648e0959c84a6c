package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/flouze/internal/storage"
)

func newAccountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), opts, func(ctx context.Context, repo storage.Repository) error {
				accounts, err := repo.ListAccounts(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tLABEL\tMEMBERS")
				for _, a := range accounts {
					fmt.Fprintf(w, "%s\t%s\t%d\n", a.UUID, a.Label, len(a.Members))
				}
				return w.Flush()
			})
		},
	}
}
