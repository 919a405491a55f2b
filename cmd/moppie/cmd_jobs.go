package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List cleaning jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		jobs, err := app.client.ListJobs(cmd.Context(), app.cfg.DefaultPageSize)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Println("No jobs found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCUSTOMER\tSTATUS\tSCHEDULED\tASSIGNED")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				j.ID, j.Title, j.Customer, j.Status,
				j.ScheduledAt.Format("2006-01-02 15:04"), strings.Join(j.AssignedTo, ", "))
		}
		return w.Flush()
	},
}
