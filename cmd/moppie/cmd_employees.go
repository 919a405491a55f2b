package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage the staff directory",
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff members",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		employees, err := app.client.ListEmployees(cmd.Context(), app.cfg.DefaultPageSize)
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			fmt.Println("No employees found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tACTIVE")
		for _, e := range employees {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%t\n", e.ID, e.FirstName, e.LastName, e.Email, e.Role, e.IsActive)
		}
		return w.Flush()
	},
}

var employeesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one staff member with schedule and stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		id := args[0]
		emp, err := app.client.GetEmployee(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s <%s>\n", emp.FirstName, emp.LastName, emp.Email)
		fmt.Printf("Role: %s  Active: %t\n", emp.Role, emp.IsActive)
		if !emp.HiredAt.IsZero() {
			fmt.Printf("Hired: %s\n", emp.HiredAt.Format("2006-01-02"))
		}

		if stats, err := app.client.EmployeeStats(cmd.Context(), id); err == nil {
			fmt.Printf("Jobs: %d  Pending media: %d  Approved media: %d  Rating: %.1f\n",
				stats.TotalJobs, stats.PendingMedia, stats.ApprovedMedia, stats.AverageRating)
		}

		schedule, err := app.client.EmployeeSchedule(cmd.Context(), id)
		if err != nil || len(schedule) == 0 {
			return nil
		}
		fmt.Println("\nUpcoming shifts:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, entry := range schedule {
			fmt.Fprintf(w, "  %s\t%s\t%s - %s\n", entry.JobTitle, entry.Location,
				entry.Start.Format("2006-01-02 15:04"), entry.End.Format("15:04"))
		}
		return w.Flush()
	},
}

var employeesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a staff member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.client.DeleteEmployee(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Employee removed")
		return nil
	},
}

func init() {
	employeesCmd.AddCommand(employeesListCmd)
	employeesCmd.AddCommand(employeesShowCmd)
	employeesCmd.AddCommand(employeesDeleteCmd)
}
