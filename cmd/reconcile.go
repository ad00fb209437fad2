package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/mehndi-booking-service/internal/config"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/reconciliation"
)

func newReconcileCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Inspect and resolve paid bookings that need manual action",
	}
	cmd.AddCommand(newReconcileListCmd(configPath))
	cmd.AddCommand(newReconcileResolveCmd(configPath))
	return cmd
}

func newReconcileListCmd(configPath *string) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "List open reconciliation items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := openReconciliation(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := repo.ListOpen(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPAYMENT INTENT\tREASON\tCREATED\tDETAILS")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					it.ID, it.PaymentIntentID, it.Reason, it.CreatedAt.Format(time.RFC3339), it.Details)
			}
			return w.Flush()
		},
	}
	c.Flags().IntVar(&limit, "limit", 50, "maximum number of items")
	return c
}

func newReconcileResolveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark a reconciliation item as handled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			repo, closeDB, err := openReconciliation(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Resolve(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "resolved item %d\n", id)
			return nil
		},
	}
}

func openReconciliation(ctx context.Context, configPath string) (*reconciliation.Repository, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return reconciliation.NewRepository(db), func() { _ = db.Close() }, nil
}
