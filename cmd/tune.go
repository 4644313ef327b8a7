// cmd/tune.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/config"
	"github.com/lattice-ml/lattice-cli/internal/handles"
	"github.com/lattice-ml/lattice-cli/internal/jobname"
	"github.com/lattice-ml/lattice-cli/internal/lattice"
	"github.com/lattice-ml/lattice-cli/internal/poll"
	"github.com/lattice-ml/lattice-cli/internal/training"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// tuneCmd is the parent for hyperparameter-tuning operations.
var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Run hyperparameter tuning sweeps on the platform",
}

// tuningSpec is the YAML shape accepted by 'tune submit'.
type tuningSpec struct {
	NamePrefix string `yaml:"name_prefix"`
	Role       string `yaml:"role"`
	Ranges     struct {
		Integer []struct {
			Name string `yaml:"name"`
			Min  int    `yaml:"min"`
			Max  int    `yaml:"max"`
		} `yaml:"integer"`
		Categorical []struct {
			Name   string   `yaml:"name"`
			Values []string `yaml:"values"`
		} `yaml:"categorical"`
	} `yaml:"ranges"`
	Objective struct {
		Name  string `yaml:"name"`
		Regex string `yaml:"regex"`
		Goal  string `yaml:"goal"`
	} `yaml:"objective"`
	MaxJobs         int          `yaml:"max_jobs"`
	MaxParallelJobs int          `yaml:"max_parallel_jobs"`
	Definition      trainingSpec `yaml:"definition"`
}

func (s tuningSpec) toRequest(name, role string) lattice.CreateTuningJobRequest {
	def := s.Definition.toRequest("", role)
	req := lattice.CreateTuningJobRequest{
		Name: name,
		Objective: lattice.ObjectiveMetric{
			Name:  s.Objective.Name,
			Regex: s.Objective.Regex,
			Goal:  s.Objective.Goal,
		},
		MaxJobs:         s.MaxJobs,
		MaxParallelJobs: s.MaxParallelJobs,
		Definition: lattice.TrainingJobDefinition{
			StaticHyperparameters: def.Hyperparameters,
			Algorithm:             def.Algorithm,
			Role:                  def.Role,
			Channels:              def.Channels,
			OutputURI:             def.OutputURI,
			Resources:             def.Resources,
			Stopping:              def.Stopping,
		},
	}
	for _, r := range s.Ranges.Integer {
		req.Ranges.Integer = append(req.Ranges.Integer, lattice.IntegerRange{
			Name: r.Name,
			Min:  r.Min,
			Max:  r.Max,
		})
	}
	for _, r := range s.Ranges.Categorical {
		req.Ranges.Categorical = append(req.Ranges.Categorical, lattice.CategoricalRange{
			Name:   r.Name,
			Values: r.Values,
		})
	}
	return req
}

var tuneWait bool

var tuneSubmitCmd = &cobra.Command{
	Use:   "submit <sweep.yaml>",
	Short: "Submit a tuning sweep from a spec file",
	Long: `Validates and submits a hyperparameter tuning sweep. The spec file
declares the swept parameter ranges, the objective metric scraped from
training logs, trial limits, and the per-trial training job definition.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error reading spec file: %v\n", err)
			os.Exit(1)
		}

		var spec tuningSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error parsing spec file: %v\n", err)
			os.Exit(1)
		}

		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		role := spec.Role
		if role == "" {
			role = cfg.Role
		}
		if spec.Definition.Role == "" {
			spec.Definition.Role = role
		}

		req := spec.toRequest(jobname.JobName(spec.NamePrefix), role)
		if err := training.ValidateTuning(req); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Invalid tuning spec: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()

		job, err := client.CreateTuningJob(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error submitting tuning job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Submitted tuning job: %s (up to %d trials, %d in parallel)\n", job.Name, req.MaxJobs, req.MaxParallelJobs)
		recordHandle(handles.Record{
			Name:   job.Name,
			Kind:   handles.KindTuning,
			Status: string(job.Status),
		})

		if tuneWait {
			waitTuning(ctx, client, cfg, job.Name)
		}
	},
}

var tuneStatusCmd = &cobra.Command{
	Use:   "status <job-name>",
	Short: "Show the current status of a tuning job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		job, err := client.DescribeTuningJob(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error describing tuning job: %v\n", err)
			os.Exit(1)
		}

		printTuningJob(job)
		updateHandle(job.Name, string(job.Status), job.FailureReason)
	},
}

func printTuningJob(job *lattice.TuningJob) {
	fmt.Printf("Job:     %s\n", job.Name)
	fmt.Printf("Status:  %s\n", job.Status)
	if job.FailureReason != "" {
		fmt.Printf("Reason:  %s\n", job.FailureReason)
	}
	c := job.Counts
	fmt.Printf("Trials:  %d completed, %d running, %d failed, %d stopped\n",
		c.Completed, c.InProgress, c.Failed, c.Stopped)
	if best := job.BestTrainingJob; best != nil {
		fmt.Printf("Best:    %s (objective %g)\n", best.Name, best.ObjectiveValue)
		for k, v := range best.TunedHyperparameters {
			fmt.Printf("         %s = %s\n", k, v)
		}
	}
}

var tuneWaitCmd = &cobra.Command{
	Use:   "wait <job-name>",
	Short: "Block until a tuning job reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()
		waitTuning(ctx, client, cfg, args[0])
	},
}

var tuneStopCmd = &cobra.Command{
	Use:   "stop <job-name>",
	Short: "Stop a running tuning job and its trials",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		if err := client.StopTuningJob(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error stopping tuning job: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Stop requested for %s\n", args[0])
	},
}

func waitTuning(ctx context.Context, client *lattice.Client, cfg config.Config, name string) {
	check := func(ctx context.Context) (lattice.JobStatus, string, error) {
		job, err := client.DescribeTuningJob(ctx, name)
		if err != nil {
			return "", "", err
		}
		return job.Status, job.FailureReason, nil
	}

	result, err := waitForJob(ctx, cfg, fmt.Sprintf("Tuning %s", name), check)
	if err != nil {
		os.Exit(1)
	}
	if result.Outcome != poll.OutcomeTimedOut {
		updateHandle(name, string(result.Status), result.FailureReason)
	}
	if result.Outcome == poll.OutcomeCompleted {
		if job, err := client.DescribeTuningJob(ctx, name); err == nil {
			printTuningJob(job)
		}
	}
	if result.Outcome == poll.OutcomeFailed {
		os.Exit(1)
	}
}

func init() {
	tuneSubmitCmd.Flags().BoolVar(&tuneWait, "wait", false, "Block until the sweep finishes")

	tuneCmd.AddCommand(tuneSubmitCmd)
	tuneCmd.AddCommand(tuneStatusCmd)
	tuneCmd.AddCommand(tuneWaitCmd)
	tuneCmd.AddCommand(tuneStopCmd)
	rootCmd.AddCommand(tuneCmd)
}
