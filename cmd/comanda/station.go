package main

import (
	"comanda-service/internal/client"
	"comanda-service/internal/domain"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func station(a *app) (*client.StationDashboard, error) {
	d, ok := a.client.DashboardFor().(*client.StationDashboard)
	if !ok {
		return nil, errors.New("only kitchen, bar and chef users have a work queue")
	}
	return d, nil
}

func workCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "work [sort]",
		Short: "List pending lines for your station",
		Long:  "Sort keys: created_asc (default), created_desc, table_asc, table_desc, priority_asc, priority_desc.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := station(a)
			if err != nil {
				return err
			}
			key := domain.SortCreatedAsc
			if len(args) == 1 {
				key = domain.SortKey(args[0])
			}
			items, err := s.Pending(cmd.Context(), key)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}
}

func deliverCmd(a *app) *cobra.Command {
	var cancel bool
	cmd := &cobra.Command{
		Use:   "deliver <line>",
		Short: "Mark a pending line delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			s, err := station(a)
			if err != nil {
				return err
			}
			var line *domain.OrderLine
			if cancel {
				line, err = s.CancelLine(cmd.Context(), ids[0])
			} else {
				line, err = s.Deliver(cmd.Context(), ids[0])
			}
			if err != nil {
				return err
			}
			return printJSON(line)
		},
	}
	cmd.Flags().BoolVar(&cancel, "cancel", false, "cancel the line instead")
	return cmd
}
