package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moppie/ops-console/internal/domain/media"
	"github.com/moppie/ops-console/internal/domain/review"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Review uploaded job media",
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List media matching the given filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		filter, err := mediaFilterFromFlags(cmd)
		if err != nil {
			return err
		}
		if mine, _ := cmd.Flags().GetBool("mine"); mine {
			if err := app.review.SetViewMode(cmd.Context(), review.ViewEmployee); err != nil {
				return err
			}
		}
		if err := app.review.SetFilter(cmd.Context(), filter); err != nil {
			return err
		}

		items := app.review.Filtered()
		if len(items) == 0 {
			fmt.Println("No media found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tJOB\tTYPE\tCATEGORY\tSTATUS\tIMPORTANT\tUPLOADED\tSTAFF")
		for _, item := range items {
			important := ""
			if item.IsImportant {
				important = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				item.ID, item.JobTitle, item.MediaType, item.Category,
				item.Status, important, item.UploadedAt.Format("2006-01-02 15:04"), item.Staff)
		}
		return w.Flush()
	},
}

var mediaApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve one media item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mediaSetStatus(cmd, args[0], media.StatusApproved)
	},
}

var mediaRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject one media item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mediaSetStatus(cmd, args[0], media.StatusRejected)
	},
}

var mediaFlagCmd = &cobra.Command{
	Use:   "flag <id>",
	Short: "Flag one media item for follow-up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mediaSetStatus(cmd, args[0], media.StatusFlagged)
	},
}

var mediaBulkCmd = &cobra.Command{
	Use:   "bulk <id>...",
	Short: "Apply one status to several media items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		statusFlag, _ := cmd.Flags().GetString("status")
		status := media.Status(statusFlag)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q (pending|approved|flagged|rejected)", statusFlag)
		}

		if err := app.review.Reload(cmd.Context()); err != nil {
			return err
		}
		for _, id := range args {
			app.review.ToggleSelect(id)
		}
		if app.review.SelectedCount() != len(args) {
			return fmt.Errorf("one or more ids do not match the current listing")
		}
		return app.review.BulkUpdateStatus(cmd.Context(), status)
	},
}

var mediaImportanceCmd = &cobra.Command{
	Use:   "importance <id>",
	Short: "Toggle the importance flag on one media item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.review.Reload(cmd.Context()); err != nil {
			return err
		}
		return app.review.ToggleImportance(cmd.Context(), args[0])
	},
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a photo or video for a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		jobID, _ := cmd.Flags().GetString("job")
		category, _ := cmd.Flags().GetString("category")
		if jobID == "" {
			return fmt.Errorf("--job is required")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read upload file: %w", err)
		}

		item, err := app.client.UploadMedia(cmd.Context(), jobID, filepath.Base(args[0]), data, media.Category(category))
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s, %d bytes)\n", item.ID, item.MimeType, item.FileSize)
		return nil
	},
}

func mediaSetStatus(cmd *cobra.Command, id string, status media.Status) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.review.Reload(cmd.Context()); err != nil {
		return err
	}
	return app.review.UpdateStatus(cmd.Context(), id, status)
}

func mediaFilterFromFlags(cmd *cobra.Command) (media.Filter, error) {
	var filter media.Filter

	if v, _ := cmd.Flags().GetString("status"); v != "" {
		status := media.Status(v)
		if !status.IsValid() {
			return filter, fmt.Errorf("invalid status %q (pending|approved|flagged|rejected)", v)
		}
		filter.Status = status
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		filter.Category = media.Category(v)
	}
	filter.JobID, _ = cmd.Flags().GetString("job")
	filter.Search, _ = cmd.Flags().GetString("search")
	filter.ImportantOnly, _ = cmd.Flags().GetBool("important")

	if v, _ := cmd.Flags().GetString("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: %w", v, err)
		}
		filter.From = from
	}
	if v, _ := cmd.Flags().GetString("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: %w", v, err)
		}
		filter.To = to
	}
	return filter, nil
}

func init() {
	mediaListCmd.Flags().String("status", "", "Filter by review status")
	mediaListCmd.Flags().String("category", "", "Filter by category (before|after)")
	mediaListCmd.Flags().String("job", "", "Filter by job id")
	mediaListCmd.Flags().String("search", "", "Search job title, customer and staff")
	mediaListCmd.Flags().String("from", "", "Only items uploaded on or after this date (YYYY-MM-DD)")
	mediaListCmd.Flags().String("to", "", "Only items uploaded on or before this date (YYYY-MM-DD)")
	mediaListCmd.Flags().Bool("important", false, "Only items flagged important")
	mediaListCmd.Flags().Bool("mine", false, "Show only your own uploads")

	mediaBulkCmd.Flags().String("status", "", "Status to apply (pending|approved|flagged|rejected)")
	_ = mediaBulkCmd.MarkFlagRequired("status")

	mediaUploadCmd.Flags().String("job", "", "Job the media belongs to")
	mediaUploadCmd.Flags().String("category", string(media.CategoryAfter), "Category (before|after)")

	mediaCmd.AddCommand(mediaListCmd)
	mediaCmd.AddCommand(mediaApproveCmd)
	mediaCmd.AddCommand(mediaRejectCmd)
	mediaCmd.AddCommand(mediaFlagCmd)
	mediaCmd.AddCommand(mediaBulkCmd)
	mediaCmd.AddCommand(mediaImportanceCmd)
	mediaCmd.AddCommand(mediaUploadCmd)
}
