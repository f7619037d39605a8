package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	messaging "mesaYaDash/internal/modules/messaging/domain"
	messaginginfra "mesaYaDash/internal/modules/messaging/infrastructure"
	system "mesaYaDash/internal/modules/system/domain"
	systeminfra "mesaYaDash/internal/modules/system/infrastructure"
	"mesaYaDash/internal/platform/export"
	"mesaYaDash/internal/shared/paging"
)

var errSystemDown = errors.New("system is down")

func healthCmd(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show backend health per service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			health, err := services.System.Health(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			uptime := (time.Duration(health.UptimeSeconds) * time.Second).String()
			fmt.Fprintf(out, "status: %s (uptime %s)\n", orDash(string(health.Overall())), uptime)
			rows := make([][]string, 0, len(health.Services))
			for _, svc := range health.Services {
				rows = append(rows, []string{svc.Name, string(svc.Status), strconv.Itoa(svc.LatencyMS) + "ms", orDash(svc.Detail)})
			}
			if err := printTable(out, []string{"SERVICE", "STATUS", "LATENCY", "DETAIL"}, rows); err != nil {
				return err
			}
			if health.Overall() == system.HealthDown {
				return errSystemDown
			}
			return nil
		},
	}
}

func activityCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Activity log",
	}
	cmd.AddCommand(activityExportCmd(cl))
	return cmd
}

func activityExportCmd(cl *cli) *cobra.Command {
	var (
		list   system.ListActivityCommand
		target exportTarget
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the activity log as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			list.Limit = paging.MaxLimit
			items, err := collectPages(list.Limit, func(page int) ([]system.ActivityEntry, int, error) {
				list.Page = page
				result, err := services.System.Activity(cmd.Context(), list)
				return result.Items, result.Total, err
			})
			if err != nil {
				return err
			}
			body, err := export.CSV(systeminfra.ActivityColumns, items)
			if err != nil {
				return err
			}
			return cl.writeExport(cmd, target, "activity", body, len(items))
		},
	}

	cmd.Flags().StringVar(&list.Entity, "entity", "", "only this entity (tables, reservations, ...)")
	cmd.Flags().StringVar(&list.Action, "action", "", "only this action")
	cmd.Flags().StringVar(&list.Since, "since", "", "entries after this date (YYYY-MM-DD)")
	target.bind(cmd)

	return cmd
}

func messagesCmd(cl *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"whatsapp"},
		Short:   "Outgoing message logs",
	}
	cmd.AddCommand(messagesExportCmd(cl))
	return cmd
}

func messagesExportCmd(cl *cli) *cobra.Command {
	var (
		list   messaging.ListMessagesCommand
		target exportTarget
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export message logs as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := cl.load(cmd)
			if err != nil {
				return err
			}
			list.Limit = paging.MaxLimit
			items, err := collectPages(list.Limit, func(page int) ([]messaging.MessageLog, int, error) {
				list.Page = page
				result, err := services.Messaging.List(cmd.Context(), list)
				return result.Items, result.Total, err
			})
			if err != nil {
				return err
			}
			body, err := export.CSV(messaginginfra.MessageColumns, items)
			if err != nil {
				return err
			}
			return cl.writeExport(cmd, target, "messages-"+services.Messaging.Source(), body, len(items))
		},
	}

	cmd.Flags().StringVar(&list.Status, "status", "", "only this delivery status")
	target.bind(cmd)

	return cmd
}
