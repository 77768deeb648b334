package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/carson-networks/neofin-server/internal/client"
)

type remote struct {
	token string
	user  string
}

// client builds a Client against API_URL with a cache namespaced by --user.
func (a *app) client(r *remote) *client.Client {
	var opts []client.APIOption
	if r.token != "" {
		opts = append(opts, client.WithToken(r.token))
	}
	api := client.NewAPI(a.env.APIURL, opts...)

	var cache *client.Cache
	if a.env.CacheDir != "" {
		cache = client.NewCache(a.env.CacheDir, r.user)
	}
	return client.New(api, client.NewStore(cache, a.logger), a.logger)
}

func (a *app) txCmd() *cobra.Command {
	r := &remote{}

	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Work with transactions on a running server",
	}
	cmd.PersistentFlags().StringVar(&r.token, "token", os.Getenv("NEOFIN_TOKEN"), "bearer token (default $NEOFIN_TOKEN)")
	cmd.PersistentFlags().StringVar(&r.user, "user", "", "cache namespace for this account")

	cmd.AddCommand(
		a.txListCmd(r, false),
		a.txListCmd(r, true),
		a.txAddCmd(r),
		a.txRemoveCmd(r),
		a.txRestoreCmd(r),
		a.txPurgeCmd(r),
		a.txSummaryCmd(r),
		a.loginCmd(r),
		a.debtCmd(r),
	)
	return cmd
}

func (a *app) txListCmd(r *remote, trash bool) *cobra.Command {
	use, short := "list", "List active transactions"
	if trash {
		use, short = "trash", "List trashed transactions"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.client(r)
			if err := c.Refresh(cmd.Context()); err != nil {
				return err
			}

			rows := c.State().Transactions
			if trash {
				rows = c.State().Trash
			}
			printTransactions(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

func (a *app) txAddCmd(r *remote) *cobra.Command {
	var (
		category  string
		date      string
		hidden    bool
		freelance bool
		prompt    string
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "add [text] [amount]",
		Short: "Add a transaction, or draft one from --ai",
		Args: func(cmd *cobra.Command, args []string) error {
			if prompt != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client(r)
			out := cmd.OutOrStdout()

			if prompt != "" {
				tx, debt, err := c.AddParsed(cmd.Context(), prompt, mode)
				if err != nil {
					return err
				}
				if debt != nil {
					fmt.Fprintf(out, "recorded debt %s: %s %s %s\n", debt.ID, debt.Type, debt.Person, debt.Amount.StringFixed(2))
					return nil
				}
				printTransactions(out, []client.Transaction{*tx})
				return nil
			}

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			tx := client.Transaction{
				Text:        args[0],
				Amount:      amount,
				Category:    category,
				IsHidden:    hidden,
				IsFreelance: freelance,
			}
			if date != "" {
				if tx.Date, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}

			added, err := c.AddTransaction(cmd.Context(), tx)
			if err != nil {
				return err
			}
			printTransactions(out, []client.Transaction{added})
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category, e.g. Food")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "hide from the main list")
	cmd.Flags().BoolVar(&freelance, "freelance", false, "mark as freelance income")
	cmd.Flags().StringVar(&prompt, "ai", "", "describe the record in free text instead")
	cmd.Flags().StringVar(&mode, "mode", "transaction", "AI parse mode: transaction or debt")
	return cmd
}

func (a *app) txRemoveCmd(r *remote) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Move a transaction to trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client(r).DeleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %s to trash\n", args[0])
			return nil
		},
	}
}

func (a *app) txRestoreCmd(r *remote) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id]",
		Short: "Restore a transaction from trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := a.client(r).RestoreTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), []client.Transaction{tx})
			return nil
		},
	}
}

func (a *app) txPurgeCmd(r *remote) *cobra.Command {
	return &cobra.Command{
		Use:   "purge [id]",
		Short: "Permanently delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client(r).DeletePermanent(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) txSummaryCmd(r *remote) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := client.NewAPI(a.env.APIURL, client.WithToken(r.token))
			s, err := api.Summary(cmd.Context(), scope)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income\t%s\n", s.Income.StringFixed(2))
			fmt.Fprintf(w, "Expense\t%s\n", s.Expense.StringFixed(2))
			fmt.Fprintf(w, "Balance\t%s\n", s.Balance.StringFixed(2))
			fmt.Fprintf(w, "Count\t%d\n", s.Count)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "business or personal (default all)")
	return cmd
}

func (a *app) loginCmd(r *remote) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := client.NewAPI(a.env.APIURL).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) debtCmd(r *remote) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Work with debts kept in the local cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recorded debts",
			RunE: func(cmd *cobra.Command, _ []string) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTYPE\tPERSON\tAMOUNT\tDATE")
				for _, d := range a.client(r).State().Debts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Type, d.Person, d.Amount.StringFixed(2), d.Date.Format(time.DateOnly))
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "add [lent|borrowed] [person] [amount]",
			Short: "Record money lent or borrowed",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				debtType := strings.ToLower(args[0])
				if debtType != client.DebtLent && debtType != client.DebtBorrowed {
					return fmt.Errorf("invalid debt type %q: want lent or borrowed", args[0])
				}
				amount, err := decimal.NewFromString(args[2])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[2], err)
				}
				debt := a.client(r).AddDebt(client.Debt{
					Type:   debtType,
					Person: args[1],
					Amount: amount,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "recorded debt %s\n", debt.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm [id]",
			Short: "Forget a debt",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.client(r).DeleteDebt(args[0])
				return nil
			},
		},
	)
	return cmd
}

func printTransactions(out io.Writer, rows []client.Transaction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTEXT\tCATEGORY\tAMOUNT\tFLAGS")
	for _, tx := range rows {
		var flags []string
		if tx.IsHidden {
			flags = append(flags, "hidden")
		}
		if tx.IsFreelance {
			flags = append(flags, "freelance")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date.Format(time.DateOnly), tx.Text, tx.Category, tx.Amount.StringFixed(2), strings.Join(flags, ","))
	}
	_ = w.Flush()
}
