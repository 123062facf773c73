package main

import (
	"comanda-service/internal/client"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Administrator reports",
	}
	cmd.AddCommand(reportTodayCmd(a))
	return cmd
}

func reportTodayCmd(a *app) *cobra.Command {
	var excel bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Open orders, pending lines and sales so far today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, ok := a.client.DashboardFor().(*client.AdminDashboard)
			if !ok {
				return errors.New("reports are for administrators")
			}
			if excel {
				url, err := admin.Reports().Export(cmd.Context(), client.ReportRequest{Kind: client.ReportToday})
				if err != nil {
					return err
				}
				return printJSON(map[string]string{"url": url})
			}
			r, err := admin.Reports().TodayReport(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(r)
		},
	}
	cmd.Flags().BoolVar(&excel, "excel", false, "export a spreadsheet and print its URL")
	return cmd
}
