package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mesaYaDash/internal/modules/tables/domain"
)

func tablesCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Floor tables",
	}
	cmd.AddCommand(tablesListCmd(cl), tablesStatusCmd(cl))
	return cmd
}

func tablesListCmd(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tables with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			tables, err := services.Tables.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tables))
			for _, t := range tables {
				rows = append(rows, []string{
					t.ID,
					orDash(t.Number),
					orDash(t.Location),
					strconv.Itoa(t.Capacity),
					t.Status.Label(),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NUMBER", "LOCATION", "CAPACITY", "STATUS"}, rows)
		},
	}
}

func tablesStatusCmd(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a table",
		Example: `  mesaya tables status T-4 ocupada
  mesaya tables status T-4 free`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			// Load the floor first so the change goes through the cached list.
			if _, err := services.Tables.List(cmd.Context()); err != nil {
				return err
			}
			change, err := services.Tables.ChangeStatus(cmd.Context(), domain.UpdateStatusCommand{ID: args[0], Status: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", change.After.ID, orDash(change.Before.Status.Label()), change.After.Status.Label())
			return nil
		},
	}
}
