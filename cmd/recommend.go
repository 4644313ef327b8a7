// cmd/recommend.go
/*
Copyright © 2026 Lattice ML <dev@lattice-ml.dev>
*/
package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lattice-ml/lattice-cli/internal/config"
	"github.com/lattice-ml/lattice-cli/internal/handles"
	"github.com/lattice-ml/lattice-cli/internal/jobname"
	"github.com/lattice-ml/lattice-cli/internal/lattice"
	"github.com/lattice-ml/lattice-cli/internal/poll"
	"github.com/lattice-ml/lattice-cli/internal/recommend"
	"github.com/lattice-ml/lattice-cli/internal/telemetry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// recommendCmd is the parent for instance-recommendation operations.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Benchmark a model package to find the cheapest serving instance",
}

var (
	submitPackageID  string
	submitNamePrefix string
	submitRole       string
	submitAdvanced   string
	submitWait       bool
)

// advancedSpec is the YAML shape accepted via --advanced. It mirrors
// recommend.AdvancedConfig with file-friendly field names.
type advancedSpec struct {
	Description        string `yaml:"description"`
	JobDurationSeconds int    `yaml:"job_duration_seconds"`
	Candidates         []struct {
		InstanceType string `yaml:"instance_type"`
		Environment  []struct {
			Name   string   `yaml:"name"`
			Values []string `yaml:"values"`
		} `yaml:"environment"`
	} `yaml:"candidates"`
	Traffic []struct {
		InitialUsers    int `yaml:"initial_users"`
		SpawnRate       int `yaml:"spawn_rate"`
		DurationSeconds int `yaml:"duration_seconds"`
	} `yaml:"traffic"`
	MaxInvocations   int `yaml:"max_invocations"`
	P99LatencyMs     int `yaml:"p99_latency_ms"`
	MaxTests         int `yaml:"max_tests"`
	MaxParallelTests int `yaml:"max_parallel_tests"`
}

func (s advancedSpec) toConfig(name, packageID, role string) recommend.AdvancedConfig {
	cfg := recommend.AdvancedConfig{
		Name:               name,
		PackageID:          packageID,
		Role:               role,
		Description:        s.Description,
		JobDurationSeconds: s.JobDurationSeconds,
		MaxInvocations:     s.MaxInvocations,
		P99LatencyMs:       s.P99LatencyMs,
		MaxTests:           s.MaxTests,
		MaxParallelTests:   s.MaxParallelTests,
	}
	for _, c := range s.Candidates {
		candidate := lattice.EndpointCandidate{InstanceType: c.InstanceType}
		for _, env := range c.Environment {
			candidate.Environment = append(candidate.Environment, lattice.EnvironmentRange{
				Name:   env.Name,
				Values: env.Values,
			})
		}
		cfg.Candidates = append(cfg.Candidates, candidate)
	}
	for _, p := range s.Traffic {
		cfg.Traffic = append(cfg.Traffic, lattice.TrafficPhase{
			InitialUsers:    p.InitialUsers,
			SpawnRate:       p.SpawnRate,
			DurationSeconds: p.DurationSeconds,
		})
	}
	return cfg
}

var recommendSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an instance-recommendation job",
	Long: `Submits a recommendation job for a registered model package. Without
--advanced, the platform runs its automatic benchmark over the package's
registered instance types; with --advanced, the given load-test spec drives
which candidates are benchmarked and how traffic ramps.

Job names are generated with a timestamp and a random suffix, so repeated
submissions never collide. Pass --wait to block until the job finishes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if submitPackageID == "" {
			fmt.Fprintln(os.Stderr, "❌ --package is required")
			os.Exit(1)
		}

		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		role := submitRole
		if role == "" {
			role = cfg.Role
		}
		if role == "" {
			fmt.Fprintln(os.Stderr, "❌ No execution role: pass --role or set it in the config file")
			os.Exit(1)
		}

		name := jobname.JobName(submitNamePrefix)

		var req lattice.CreateRecommendationJobRequest
		if submitAdvanced != "" {
			data, err := os.ReadFile(submitAdvanced)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ Error reading advanced spec: %v\n", err)
				os.Exit(1)
			}
			var spec advancedSpec
			if err := yaml.Unmarshal(data, &spec); err != nil {
				fmt.Fprintf(os.Stderr, "❌ Error parsing advanced spec: %v\n", err)
				os.Exit(1)
			}
			req, err = recommend.AdvancedJob(spec.toConfig(name, submitPackageID, role))
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ Invalid advanced spec: %v\n", err)
				os.Exit(1)
			}
		} else {
			req = recommend.DefaultJob(name, submitPackageID, role)
		}

		ctx, cancel := signalContext()
		defer cancel()

		job, err := client.CreateRecommendationJob(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error submitting job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Submitted %s recommendation job: %s\n", job.Type, job.Name)
		recordHandle(handles.Record{
			Name:   job.Name,
			Kind:   handles.KindRecommendation,
			Status: string(job.Status),
		})

		if submitWait {
			waitRecommendation(ctx, client, cfg, job.Name)
		}
	},
}

var recommendStatusCmd = &cobra.Command{
	Use:   "status <job-name>",
	Short: "Show the current status of a recommendation job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		job, err := client.DescribeRecommendationJob(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error describing job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Job:     %s (%s)\n", job.Name, job.Type)
		fmt.Printf("Status:  %s\n", job.Status)
		if job.FailureReason != "" {
			fmt.Printf("Reason:  %s\n", job.FailureReason)
		}
		fmt.Printf("Created: %s\n", job.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		if job.CompletedAt != nil {
			fmt.Printf("Ended:   %s\n", job.CompletedAt.Format("2006-01-02 15:04:05 MST"))
		}
		if len(job.Endpoints) > 0 {
			fmt.Println("Benchmark endpoints:")
			for _, ep := range job.Endpoints {
				fmt.Printf("  - %s\n", ep.EndpointName)
			}
		}

		updateHandle(job.Name, string(job.Status), job.FailureReason)
	},
}

var recommendWaitCmd = &cobra.Command{
	Use:   "wait <job-name>",
	Short: "Block until a recommendation job reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()
		waitRecommendation(ctx, client, cfg, args[0])
	},
}

var resultsFormat string

var recommendResultsCmd = &cobra.Command{
	Use:   "results <job-name>",
	Short: "Show the flattened results of a completed recommendation job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		table, err := fetchRecommendationResults(cmd.Context(), client, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		if table.Empty() {
			fmt.Println("🤷 The job produced no recommendations.")
			return
		}

		switch resultsFormat {
		case "table":
			printResultsTable(table)
		case "csv":
			printResultsCSV(table)
		default:
			fmt.Fprintf(os.Stderr, "❌ Unknown format %q (want table or csv)\n", resultsFormat)
			os.Exit(1)
		}
	},
}

// fetchRecommendationResults describes the job and flattens its
// recommendations. A failed job is an error that carries the control
// plane's failure reason, never an empty table.
func fetchRecommendationResults(ctx context.Context, client *lattice.Client, name string) (recommend.Table, error) {
	job, err := client.DescribeRecommendationJob(ctx, name)
	if err != nil {
		return recommend.Table{}, fmt.Errorf("error describing job: %w", err)
	}
	if job.Status == lattice.JobStatusFailed {
		return recommend.Table{}, fmt.Errorf("job %s failed: %s", job.Name, job.FailureReason)
	}
	if !job.Status.Terminal() {
		return recommend.Table{}, fmt.Errorf("job %s is still %s; results are only available for finished jobs", job.Name, job.Status)
	}
	return recommend.Flatten(job.Recommendations), nil
}

func printResultsTable(table recommend.Table) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	header := ""
	for i, col := range table.Columns {
		if i > 0 {
			header += "\t"
		}
		header += col
	}
	fmt.Fprintln(w, header)
	for _, row := range table.Rows {
		line := ""
		for i, col := range table.Columns {
			if i > 0 {
				line += "\t"
			}
			line += row[col]
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

func printResultsCSV(table recommend.Table) {
	w := csv.NewWriter(os.Stdout)
	w.Write(table.Columns)
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		w.Write(record)
	}
	w.Flush()
}

var recommendStopCmd = &cobra.Command{
	Use:   "stop <job-name>",
	Short: "Stop a running recommendation job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		if err := client.StopRecommendationJob(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error stopping job: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Stop requested for %s; the job winds down asynchronously\n", args[0])
	},
}

var metricsCharts bool

var recommendMetricsCmd = &cobra.Command{
	Use:   "metrics <job-name>",
	Short: "Show endpoint telemetry captured during a recommendation job",
	Long: `Fetches the per-endpoint metric series (model latency, CPU, memory,
overhead latency) recorded over the job's execution window and renders them
as a merged table, or as per-series sparkline charts with --charts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		fetcher := telemetry.NewFetcher(client)

		if metricsCharts {
			series, err := fetcher.RawJobSeries(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ Error fetching telemetry: %v\n", err)
				os.Exit(1)
			}
			if len(series) == 0 {
				fmt.Println("🤷 No telemetry recorded for this job yet.")
				return
			}
			telemetry.RenderCharts(os.Stdout, series)
			return
		}

		rows, err := fetcher.JobSeries(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error fetching telemetry: %v\n", err)
			os.Exit(1)
		}
		if len(rows) == 0 {
			fmt.Println("🤷 No telemetry recorded for this job yet.")
			return
		}
		telemetry.RenderTable(os.Stdout, rows, telemetry.DefaultMetrics)
	},
}

// waitRecommendation blocks on the job and records the terminal status in the
// local handle store.
func waitRecommendation(ctx context.Context, client *lattice.Client, cfg config.Config, name string) {
	check := func(ctx context.Context) (lattice.JobStatus, string, error) {
		job, err := client.DescribeRecommendationJob(ctx, name)
		if err != nil {
			return "", "", err
		}
		return job.Status, job.FailureReason, nil
	}

	result, err := waitForJob(ctx, cfg, fmt.Sprintf("Waiting for %s", name), check)
	if err != nil {
		os.Exit(1)
	}
	if result.Outcome != poll.OutcomeTimedOut {
		updateHandle(name, string(result.Status), result.FailureReason)
	}
	if result.Outcome == poll.OutcomeCompleted {
		fmt.Printf("   run 'lattice recommend results %s' to see the recommendations\n", name)
	}
	if result.Outcome == poll.OutcomeFailed {
		os.Exit(1)
	}
}

func init() {
	recommendSubmitCmd.Flags().StringVar(&submitPackageID, "package", "", "Model package ID to benchmark (required)")
	recommendSubmitCmd.Flags().StringVar(&submitNamePrefix, "name-prefix", "", "Prefix for the generated job name")
	recommendSubmitCmd.Flags().StringVar(&submitRole, "role", "", "Execution role (default: from config)")
	recommendSubmitCmd.Flags().StringVar(&submitAdvanced, "advanced", "", "Path to an advanced load-test spec (YAML)")
	recommendSubmitCmd.Flags().BoolVar(&submitWait, "wait", false, "Block until the job finishes")
	recommendResultsCmd.Flags().StringVar(&resultsFormat, "format", "table", "Output format: table or csv")
	recommendMetricsCmd.Flags().BoolVar(&metricsCharts, "charts", false, "Render sparkline charts instead of a table")

	recommendCmd.AddCommand(recommendSubmitCmd)
	recommendCmd.AddCommand(recommendStatusCmd)
	recommendCmd.AddCommand(recommendWaitCmd)
	recommendCmd.AddCommand(recommendResultsCmd)
	recommendCmd.AddCommand(recommendStopCmd)
	recommendCmd.AddCommand(recommendMetricsCmd)
	rootCmd.AddCommand(recommendCmd)
}
