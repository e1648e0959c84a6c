package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

func newBalanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Print each member's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := models.ParseAccountID(args[0])
			if err != nil {
				return err
			}

			return withRepository(cmd.Context(), opts, func(ctx context.Context, repo storage.Repository) error {
				account, err := repo.GetAccount(ctx, accountID)
				if err != nil {
					return err
				}
				balances, err := ledger.MemberBalances(ctx, repo, account)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(w, "MEMBER\tPAID\tOWED\tBALANCE\t")
				for _, b := range balances {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
						b.Person.Name,
						formatAmount(b.TotalPaid),
						formatAmount(b.TotalOwed),
						formatAmount(b.NetBalance),
					)
				}
				return w.Flush()
			})
		},
	}
}
