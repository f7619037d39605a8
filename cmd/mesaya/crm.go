package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	customers "mesaYaDash/internal/modules/customers/domain"
	waitlist "mesaYaDash/internal/modules/waitlist/domain"
)

func customersCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"clientes"},
		Short:   "Customer directory",
	}
	cmd.AddCommand(customersListCmd(cl))
	return cmd
}

func customersListCmd(cl *cli) *cobra.Command {
	var list customers.ListCustomersCommand

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			page, err := services.Customers.List(cmd.Context(), list)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, c := range page.Items {
				rows = append(rows, []string{
					c.ID,
					c.Name,
					c.Phone,
					orDash(string(c.Tier)),
					strconv.Itoa(c.Visits),
					fmt.Sprintf("%.0f%%", c.NoShowRate()*100),
					orDash(c.LastVisit),
				})
			}
			if err := printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "PHONE", "TIER", "VISITS", "NO-SHOWS", "LAST VISIT"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d (source: %s)\n", len(page.Items), page.Total, services.Customers.Source())
			return nil
		},
	}

	cmd.Flags().StringVar(&list.Search, "search", "", "name, phone or email contains")
	cmd.Flags().StringVar(&list.Tier, "tier", "", "only this tier (regular, frecuente, vip)")
	cmd.Flags().IntVar(&list.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&list.Limit, "limit", 20, "page size")

	return cmd
}

func waitlistCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "waitlist",
		Aliases: []string{"espera"},
		Short:   "Walk-in waitlist",
	}
	cmd.AddCommand(waitlistListCmd(cl))
	return cmd
}

func waitlistListCmd(cl *cli) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parties still waiting, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			var entries []waitlist.Entry
			if all {
				entries, err = services.Waitlist.List(cmd.Context())
			} else {
				entries, err = services.Waitlist.Queue(cmd.Context())
			}
			if err != nil {
				return err
			}
			now := time.Now()
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				waited := "-"
				if !e.CreatedAt.IsZero() {
					waited = now.Sub(e.CreatedAt).Round(time.Minute).String()
				}
				status := string(e.Status)
				if e.Overdue(now) {
					status += " (overdue)"
				}
				rows = append(rows, []string{
					e.ID,
					e.CustomerName,
					strconv.Itoa(e.PartySize),
					strconv.Itoa(e.QuotedMinutes) + "m",
					waited,
					status,
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "PARTY", "QUOTED", "WAITED", "STATUS"}, rows)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include seated and cancelled entries")

	return cmd
}
