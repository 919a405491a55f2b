package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moppie/ops-console/internal/infrastructure/api"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Business reporting",
}

var analyticsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the overview summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		dash, err := app.client.AnalyticsDashboard(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Total revenue\t%.2f\n", dash.TotalRevenue)
		fmt.Fprintf(w, "Jobs completed\t%d\n", dash.JobsCompleted)
		fmt.Fprintf(w, "Jobs scheduled\t%d\n", dash.JobsScheduled)
		fmt.Fprintf(w, "Active employees\t%d\n", dash.ActiveEmployees)
		fmt.Fprintf(w, "Active clients\t%d\n", dash.ActiveClients)
		fmt.Fprintf(w, "Pending media\t%d\n", dash.PendingMedia)
		return w.Flush()
	},
}

var analyticsRevenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show the revenue report",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		revenue, err := app.client.AnalyticsRevenue(cmd.Context(), rangeFromFlags(cmd))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PERIOD\tREVENUE\tJOBS")
		for _, point := range revenue.Series {
			fmt.Fprintf(w, "%s\t%.2f\t%d\n", point.Period, point.Revenue, point.Jobs)
		}
		fmt.Fprintf(w, "TOTAL\t%.2f\t\n", revenue.Total)
		return w.Flush()
	},
}

var analyticsEmployeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Show per-employee standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		standings, err := app.client.AnalyticsEmployees(cmd.Context(), rangeFromFlags(cmd))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tJOBS\tRATING")
		for _, s := range standings {
			fmt.Fprintf(w, "%s\t%d\t%.1f\n", s.Name, s.Jobs, s.Rating)
		}
		return w.Flush()
	},
}

var analyticsKPIsCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Show the KPI tiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		kpis, err := app.client.AnalyticsKPIs(cmd.Context(), rangeFromFlags(cmd))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KPI\tVALUE\tTARGET\tUNIT")
		for _, kpi := range kpis {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", kpi.Name, kpi.Value, kpi.Target, kpi.Unit)
		}
		return w.Flush()
	},
}

var analyticsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a report",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = "report." + format
		}

		data, err := app.client.AnalyticsExportReport(cmd.Context(), format, rangeFromFlags(cmd))
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", output, len(data))
		return nil
	},
}

func rangeFromFlags(cmd *cobra.Command) api.RangeParams {
	period, _ := cmd.Flags().GetString("period")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return api.RangeParams{Period: period, From: from, To: to}
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "month", "Reporting period (week|month|quarter|year)")
	cmd.Flags().String("from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Range end (YYYY-MM-DD)")
}

func init() {
	addRangeFlags(analyticsRevenueCmd)
	addRangeFlags(analyticsEmployeesCmd)
	addRangeFlags(analyticsKPIsCmd)
	addRangeFlags(analyticsExportCmd)
	analyticsExportCmd.Flags().String("format", "csv", "Export format (csv|pdf)")
	analyticsExportCmd.Flags().String("output", "", "Output file (defaults to report.<format>)")

	analyticsCmd.AddCommand(analyticsDashboardCmd)
	analyticsCmd.AddCommand(analyticsRevenueCmd)
	analyticsCmd.AddCommand(analyticsEmployeesCmd)
	analyticsCmd.AddCommand(analyticsKPIsCmd)
	analyticsCmd.AddCommand(analyticsExportCmd)
}
