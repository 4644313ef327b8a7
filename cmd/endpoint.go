// cmd/endpoint.go
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
	"github.com/lattice-ml/lattice-cli/internal/lattice"
	"github.com/lattice-ml/lattice-cli/internal/poll"
	"github.com/lattice-ml/lattice-cli/internal/ui"
	"github.com/spf13/cobra"
)

// endpointCmd is the parent for serving-endpoint operations.
var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Deploy, inspect, and tear down serving endpoints",
}

var (
	deployImage         string
	deployModelData     string
	deployInstanceType  string
	deployInstanceCount int
	deployEnv           map[string]string
	deployNoWait        bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy <name>",
	Short: "Deploy a model behind a real-time endpoint",
	Long: `Creates a servable model from a container image and a packed model
artifact, then provisions an endpoint for it. The endpoint bills from the
moment it is accepted until 'lattice endpoint delete' is run; nothing tears
it down automatically.

By default the command waits until the endpoint is in service.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if deployImage == "" || deployModelData == "" {
			fmt.Fprintln(os.Stderr, "❌ --image and --model-data are required")
			os.Exit(1)
		}

		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()

		status := ui.NewStatusLine()

		status.Step(1, 2, fmt.Sprintf("Creating model %s", name))
		_, err = client.CreateModel(ctx, lattice.CreateModelRequest{
			Name:         name,
			Image:        deployImage,
			ModelDataURI: deployModelData,
			Environment:  deployEnv,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error creating model: %v\n", err)
			os.Exit(1)
		}

		status.Step(2, 2, fmt.Sprintf("Creating endpoint %s (%d × %s)", name, deployInstanceCount, deployInstanceType))
		ep, err := client.CreateEndpoint(ctx, lattice.CreateEndpointRequest{
			Name:          name,
			ModelName:     name,
			InstanceType:  deployInstanceType,
			InstanceCount: deployInstanceCount,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error creating endpoint: %v\n", err)
			os.Exit(1)
		}

		recordHandle(handles.Record{
			Name:   ep.Name,
			Kind:   handles.KindEndpoint,
			Status: string(ep.Status),
		})

		if deployNoWait {
			fmt.Printf("✅ Endpoint %s accepted (status %s)\n", ep.Name, ep.Status)
			status.Warning(fmt.Sprintf("The endpoint bills until you run 'lattice endpoint delete %s'", ep.Name))
			return
		}

		spinner := ui.NewSpinner()
		spinner.Start(fmt.Sprintf("Waiting for %s to come in service", ep.Name))
		final, err := waitEndpointInService(ctx, client, cfg, spinner, ep.Name)
		if err != nil {
			spinner.Fail(fmt.Sprintf("Endpoint wait failed: %v", err))
			os.Exit(1)
		}

		updateHandle(ep.Name, string(final.Status), final.FailureReason)
		if final.Status != lattice.EndpointStatusInService {
			spinner.Fail(fmt.Sprintf("Endpoint %s entered %s: %s", ep.Name, final.Status, final.FailureReason))
			os.Exit(1)
		}

		spinner.Success(fmt.Sprintf("Endpoint %s is in service", ep.Name))
		status.Warning(fmt.Sprintf("The endpoint bills until you run 'lattice endpoint delete %s'", ep.Name))
	},
}

var endpointStatusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the current state of an endpoint",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ep, err := client.DescribeEndpoint(cmd.Context(), args[0])
		if err != nil {
			if lattice.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "❌ No endpoint %q\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "❌ Error describing endpoint: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Endpoint:  %s\n", ep.Name)
		fmt.Printf("Model:     %s\n", ep.ModelName)
		fmt.Printf("Status:    %s\n", ep.Status)
		if ep.FailureReason != "" {
			fmt.Printf("Reason:    %s\n", ep.FailureReason)
		}
		fmt.Printf("Compute:   %d × %s\n", ep.InstanceCount, ep.InstanceType)
		fmt.Printf("Created:   %s\n", ep.CreatedAt.Format("2006-01-02 15:04:05 MST"))

		updateHandle(ep.Name, string(ep.Status), ep.FailureReason)
	},
}

var endpointDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Tear down an endpoint and stop its billing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		if err := client.DeleteEndpoint(cmd.Context(), args[0]); err != nil {
			if lattice.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "❌ No endpoint %q\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "❌ Error deleting endpoint: %v\n", err)
			}
			os.Exit(1)
		}

		updateHandle(args[0], string(lattice.EndpointStatusDeleting), "")
		fmt.Printf("✅ Endpoint %s is being deleted\n", args[0])
	},
}

// waitEndpointInService polls the endpoint until it leaves CREATING. Endpoint
// provisioning has its own state machine; it is mapped onto the job poller's
// states so the same backoff and the configured interval and timeout apply.
func waitEndpointInService(ctx context.Context, client *lattice.Client, cfg config.Config, spinner *ui.Spinner, name string) (*lattice.Endpoint, error) {
	var last *lattice.Endpoint
	check := func(ctx context.Context) (lattice.JobStatus, string, error) {
		ep, err := client.DescribeEndpoint(ctx, name)
		if err != nil {
			return "", "", err
		}
		last = ep
		spinner.UpdateDetail(string(ep.Status))
		switch ep.Status {
		case lattice.EndpointStatusInService:
			return lattice.JobStatusCompleted, "", nil
		case lattice.EndpointStatusFailed:
			return lattice.JobStatusFailed, ep.FailureReason, nil
		default:
			return lattice.JobStatusInProgress, "", nil
		}
	}

	pollCfg := poll.Config{
		Interval: cfg.PollInterval.Std(),
		Timeout:  cfg.WaitTimeout.Std(),
	}
	if _, err := poll.Wait(ctx, check, pollCfg); err != nil {
		return nil, err
	}
	return last, nil
}

func init() {
	deployCmd.Flags().StringVar(&deployImage, "image", "", "Serving container image (required)")
	deployCmd.Flags().StringVar(&deployModelData, "model-data", "", "Storage URI of the packed model artifact (required)")
	deployCmd.Flags().StringVar(&deployInstanceType, "instance-type", "std.c5.xlarge", "Instance type to serve on")
	deployCmd.Flags().IntVar(&deployInstanceCount, "instance-count", 1, "Number of instances")
	deployCmd.Flags().StringToStringVar(&deployEnv, "env", nil, "Container environment variables (key=value)")
	deployCmd.Flags().BoolVar(&deployNoWait, "no-wait", false, "Return as soon as the endpoint is accepted")

	endpointCmd.AddCommand(deployCmd)
	endpointCmd.AddCommand(endpointStatusCmd)
	endpointCmd.AddCommand(endpointDeleteCmd)
	rootCmd.AddCommand(endpointCmd)
}
