// cmd/jobs.go
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	jobsKind  string
	jobsLimit int
)

// jobsCmd lists the jobs and endpoints this machine has submitted. The list
// is local bookkeeping; the platform remains the source of truth for status.
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs and endpoints submitted from this machine",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openHandleStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error opening local job store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		records, err := store.List(jobsKind, jobsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error listing jobs: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("🤷 No jobs recorded yet. Submissions are tracked automatically.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tSTATUS\tSUBMITTED\tLAST SEEN")
		for _, r := range records {
			status := r.Status
			if status == "" {
				status = "-"
			}
			submitted := r.SubmittedAt.Local().Format("2006-01-02 15:04")
			seen := time.Since(r.UpdatedAt).Round(time.Minute).String() + " ago"
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Kind, status, submitted, seen)
		}
		w.Flush()
	},
}

var jobsForgetCmd = &cobra.Command{
	Use:   "forget <name>",
	Short: "Drop a job from the local list (the remote job is untouched)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openHandleStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error opening local job store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error forgetting %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("✅ Forgot %s\n", args[0])
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsKind, "kind", "", "Filter by kind: recommendation, training, tuning, or endpoint")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 0, "Maximum rows to show (default 50)")

	jobsCmd.AddCommand(jobsForgetCmd)
	rootCmd.AddCommand(jobsCmd)
}
