package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/flouze/internal/ledger"
	"github.com/mmynk/flouze/internal/models"
	"github.com/mmynk/flouze/internal/storage"
)

func newHistoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "history <account-id>",
		Short: "Print an account's transactions, newest first",
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

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tLABEL\tAMOUNT\tPAID BY\tFLAGS")

				// Rows already written stay visible when the chain breaks
				for tx, err := range ledger.NewChain(repo, account).All(ctx) {
					if err != nil {
						w.Flush()
						return err
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						time.Unix(tx.Timestamp, 0).UTC().Format(time.DateOnly),
						tx.Label,
						formatAmount(tx.Amount),
						payers(account, tx),
						flags(tx),
					)
				}
				return w.Flush()
			})
		},
	}
}

func payers(account *models.Account, tx *models.Transaction) string {
	names := make([]string, 0, len(tx.PayedBy))
	for _, p := range tx.PayedBy {
		name := p.Person.String()
		if m, ok := account.Member(p.Person); ok {
			name = m.Name
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func flags(tx *models.Transaction) string {
	var f []string
	if tx.Deleted {
		f = append(f, "deleted")
	}
	if !tx.Replaces.IsZero() {
		f = append(f, "replaces "+tx.Replaces.String())
	}
	return strings.Join(f, " ")
}
