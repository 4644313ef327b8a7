// cmd/train.go
/*
Copyright © 2026 Lattice ML <dev@lattice-ml.dev>
*/
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

// trainCmd is the parent for training-job operations.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run training jobs on the platform",
}

// trainingSpec is the YAML shape accepted by 'train submit'. Hyperparameters
// may be numbers or strings in the file; they are stringified before
// submission because the platform only takes string values.
type trainingSpec struct {
	NamePrefix      string         `yaml:"name_prefix"`
	Role            string         `yaml:"role"`
	Hyperparameters map[string]any `yaml:"hyperparameters"`
	Algorithm       struct {
		Image             string `yaml:"image"`
		InputMode         string `yaml:"input_mode"`
		MetricDefinitions []struct {
			Name  string `yaml:"name"`
			Regex string `yaml:"regex"`
		} `yaml:"metric_definitions"`
	} `yaml:"algorithm"`
	Channels []struct {
		Name        string `yaml:"name"`
		DataURI     string `yaml:"data_uri"`
		ContentType string `yaml:"content_type"`
	} `yaml:"channels"`
	OutputURI string `yaml:"output_uri"`
	Resources struct {
		InstanceType  string `yaml:"instance_type"`
		InstanceCount int    `yaml:"instance_count"`
		VolumeSizeGB  int    `yaml:"volume_size_gb"`
	} `yaml:"resources"`
	MaxRuntimeSeconds int  `yaml:"max_runtime_seconds"`
	NetworkIsolation  bool `yaml:"network_isolation"`
}

func (s trainingSpec) toRequest(name, role string) lattice.CreateTrainingJobRequest {
	req := lattice.CreateTrainingJobRequest{
		Name:            name,
		Role:            role,
		Hyperparameters: training.Hyperparameters(s.Hyperparameters),
		Algorithm: lattice.AlgorithmSpec{
			Image:     s.Algorithm.Image,
			InputMode: s.Algorithm.InputMode,
		},
		OutputURI: s.OutputURI,
		Resources: lattice.ResourceConfig{
			InstanceType:  s.Resources.InstanceType,
			InstanceCount: s.Resources.InstanceCount,
			VolumeSizeGB:  s.Resources.VolumeSizeGB,
		},
		Stopping:         lattice.StoppingCondition{MaxRuntimeSeconds: s.MaxRuntimeSeconds},
		NetworkIsolation: s.NetworkIsolation,
	}
	for _, md := range s.Algorithm.MetricDefinitions {
		req.Algorithm.MetricDefinitions = append(req.Algorithm.MetricDefinitions, lattice.MetricDefinition{
			Name:  md.Name,
			Regex: md.Regex,
		})
	}
	for _, ch := range s.Channels {
		req.Channels = append(req.Channels, lattice.Channel{
			Name:        ch.Name,
			DataURI:     ch.DataURI,
			ContentType: ch.ContentType,
		})
	}
	return req
}

var trainWait bool

var trainSubmitCmd = &cobra.Command{
	Use:   "submit <job.yaml>",
	Short: "Submit a training job from a spec file",
	Long: `Validates and submits a training job. The spec file names the
training container, input channels, compute, and hyperparameters; metric
definitions let the platform scrape training metrics from the container's
log stream. A unique job name is generated from the spec's name prefix.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error reading spec file: %v\n", err)
			os.Exit(1)
		}

		var spec trainingSpec
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

		req := spec.toRequest(jobname.JobName(spec.NamePrefix), role)
		if err := training.ValidateJob(req); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Invalid training spec: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()

		job, err := client.CreateTrainingJob(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error submitting training job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Submitted training job: %s\n", job.Name)
		recordHandle(handles.Record{
			Name:   job.Name,
			Kind:   handles.KindTraining,
			Status: string(job.Status),
		})

		if trainWait {
			waitTraining(ctx, client, cfg, job.Name)
		}
	},
}

var trainStatusCmd = &cobra.Command{
	Use:   "status <job-name>",
	Short: "Show the current status of a training job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		job, err := client.DescribeTrainingJob(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error describing training job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Job:     %s\n", job.Name)
		fmt.Printf("Status:  %s\n", job.Status)
		if job.FailureReason != "" {
			fmt.Printf("Reason:  %s\n", job.FailureReason)
		}
		if job.ArtifactURI != "" {
			fmt.Printf("Output:  %s\n", job.ArtifactURI)
		}
		for _, m := range job.FinalMetrics {
			fmt.Printf("Metric:  %s = %g\n", m.Name, m.Value)
		}

		updateHandle(job.Name, string(job.Status), job.FailureReason)
	},
}

var trainWaitCmd = &cobra.Command{
	Use:   "wait <job-name>",
	Short: "Block until a training job reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()
		waitTraining(ctx, client, cfg, args[0])
	},
}

var trainStopCmd = &cobra.Command{
	Use:   "stop <job-name>",
	Short: "Stop a running training job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		if err := client.StopTrainingJob(cmd.Context(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error stopping training job: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Stop requested for %s\n", args[0])
	},
}

func waitTraining(ctx context.Context, client *lattice.Client, cfg config.Config, name string) {
	check := func(ctx context.Context) (lattice.JobStatus, string, error) {
		job, err := client.DescribeTrainingJob(ctx, name)
		if err != nil {
			return "", "", err
		}
		return job.Status, job.FailureReason, nil
	}

	result, err := waitForJob(ctx, cfg, fmt.Sprintf("Training %s", name), check)
	if err != nil {
		os.Exit(1)
	}
	if result.Outcome != poll.OutcomeTimedOut {
		updateHandle(name, string(result.Status), result.FailureReason)
	}
	if result.Outcome == poll.OutcomeCompleted {
		job, err := client.DescribeTrainingJob(ctx, name)
		if err == nil && job.ArtifactURI != "" {
			fmt.Printf("   model artifact: %s\n", job.ArtifactURI)
		}
	}
	if result.Outcome == poll.OutcomeFailed {
		os.Exit(1)
	}
}

func init() {
	trainSubmitCmd.Flags().BoolVar(&trainWait, "wait", false, "Block until the job finishes")

	trainCmd.AddCommand(trainSubmitCmd)
	trainCmd.AddCommand(trainStatusCmd)
	trainCmd.AddCommand(trainWaitCmd)
	trainCmd.AddCommand(trainStopCmd)
	rootCmd.AddCommand(trainCmd)
}
