package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/modules/reservations/infrastructure"
	"mesaYaDash/internal/platform/export"
	"mesaYaDash/internal/shared/forms"
	"mesaYaDash/internal/shared/paging"
)

func reservationsCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"reservas"},
		Short:   "Reservations book",
	}
	cmd.AddCommand(reservationsListCmd(cl), reservationsCreateCmd(cl), reservationsExportCmd(cl))
	return cmd
}

func reservationsListCmd(cl *cli) *cobra.Command {
	var list domain.ListReservationsCommand

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := forms.Check(list); err != nil {
				return err
			}
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			page, err := services.Reservations.List(cmd.Context(), list)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, r := range page.Items {
				rows = append(rows, []string{
					r.ID,
					r.Date,
					r.Time,
					r.CustomerName,
					strconv.Itoa(r.PartySize),
					orDash(r.TableID),
					string(r.Status),
				})
			}
			if err := printTable(cmd.OutOrStdout(), []string{"ID", "DATE", "TIME", "NAME", "PARTY", "TABLE", "STATUS"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(page.Items), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&list.Date, "date", "", "day to list (YYYY-MM-DD)")
	cmd.Flags().StringVar(&list.Status, "status", "", "only this status")
	cmd.Flags().StringVar(&list.Search, "search", "", "name or phone contains")
	cmd.Flags().IntVar(&list.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&list.Limit, "limit", 20, "page size")

	return cmd
}

func reservationsCreateCmd(cl *cli) *cobra.Command {
	var values domain.ReservationForm

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Book a table",
		Example: `  mesaya reservations create --name "Ana Ruiz" --phone 612345678 --date 2024-05-10 --time 21:30 --party 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			// Submit validates first; invalid input never reaches the backend.
			var created domain.Reservation
			err = forms.New(values).Submit(cmd.Context(), func(ctx context.Context, v domain.ReservationForm) error {
				var sendErr error
				created, sendErr = services.Reservations.Create(ctx, v)
				return sendErr
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reservation %s: %s %s %s, party of %d (%s)\n",
				created.ID, created.CustomerName, created.Date, created.Time, created.PartySize, created.Status)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&values.CustomerName, "name", "", "customer name")
	flags.StringVar(&values.Phone, "phone", "", "customer phone")
	flags.StringVar(&values.Email, "email", "", "customer email")
	flags.StringVar(&values.Date, "date", "", "day (YYYY-MM-DD)")
	flags.StringVar(&values.Time, "time", "", "time (HH:MM)")
	flags.IntVar(&values.PartySize, "party", 2, "number of guests")
	flags.StringVar(&values.TableID, "table", "", "table id")
	flags.StringVar(&values.Notes, "notes", "", "free text notes")

	return cmd
}

func reservationsExportCmd(cl *cli) *cobra.Command {
	var (
		list   domain.ListReservationsCommand
		target exportTarget
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reservations as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			list.Limit = paging.MaxLimit
			items, err := collectPages(list.Limit, func(page int) ([]domain.Reservation, int, error) {
				list.Page = page
				result, err := services.Reservations.List(cmd.Context(), list)
				return result.Items, result.Total, err
			})
			if err != nil {
				return err
			}
			body, err := export.CSV(infrastructure.ReservationColumns, items)
			if err != nil {
				return err
			}
			return cl.writeExport(cmd, target, "reservations", body, len(items))
		},
	}

	cmd.Flags().StringVar(&list.Date, "date", time.Now().Format(time.DateOnly), "day to export (YYYY-MM-DD)")
	cmd.Flags().StringVar(&list.Status, "status", "", "only this status")
	target.bind(cmd)

	return cmd
}
