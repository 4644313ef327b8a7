// cmd/registry.go
/*
Copyright © 2026 Lattice ML <dev@lattice-ml.dev>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// registryCmd is the parent for model-registry operations.
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage model groups and registered model packages",
}

var groupDescription string

var createGroupCmd = &cobra.Command{
	Use:   "create-group <name>",
	Short: "Create a model group to hold package versions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		group, err := client.CreateModelGroup(cmd.Context(), lattice.CreateModelGroupRequest{
			Name:        args[0],
			Description: groupDescription,
		})
		if err != nil {
			if lattice.IsConflict(err) {
				fmt.Fprintf(os.Stderr, "❌ Model group %q already exists\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "❌ Error creating model group: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("✅ Created model group %s (id %s)\n", group.Name, group.ID)
	},
}

// packageSpec is the YAML shape accepted by 'registry register'. It mirrors
// the create-package request, with the model data URI injectable from the
// --model-data flag so a fresh upload can be registered without editing the
// file.
type packageSpec struct {
	GroupName        string `yaml:"group_name"`
	Domain           string `yaml:"domain"`
	Task             string `yaml:"task"`
	SamplePayloadURI string `yaml:"sample_payload_uri"`
	ApprovalStatus   string `yaml:"approval_status"`
	Inference        struct {
		Image                  string   `yaml:"image"`
		Framework              string   `yaml:"framework"`
		FrameworkVersion       string   `yaml:"framework_version"`
		NearestModelName       string   `yaml:"nearest_model_name"`
		SupportedContentTypes  []string `yaml:"supported_content_types"`
		SupportedResponseTypes []string `yaml:"supported_response_types"`
		SupportedInstanceTypes []string `yaml:"supported_instance_types"`
		ModelDataURI           string   `yaml:"model_data_uri"`
	} `yaml:"inference"`
}

var registerModelData string

var registerCmd = &cobra.Command{
	Use:   "register <package.yaml>",
	Short: "Register a model package version from a spec file",
	Long: `Registers a new immutable package version in a model group. The spec
file describes the serving container and the content and instance types the
platform may benchmark. Versions are issued by the platform in registration
order.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error reading spec file: %v\n", err)
			os.Exit(1)
		}

		var spec packageSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error parsing spec file: %v\n", err)
			os.Exit(1)
		}
		if registerModelData != "" {
			spec.Inference.ModelDataURI = registerModelData
		}
		if spec.Inference.ModelDataURI == "" {
			fmt.Fprintln(os.Stderr, "❌ No model data URI: set inference.model_data_uri or pass --model-data")
			os.Exit(1)
		}

		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		pkg, err := client.CreateModelPackage(cmd.Context(), lattice.CreateModelPackageRequest{
			GroupName:        spec.GroupName,
			Domain:           spec.Domain,
			Task:             spec.Task,
			SamplePayloadURI: spec.SamplePayloadURI,
			ApprovalStatus:   spec.ApprovalStatus,
			Inference: lattice.InferenceSpec{
				Image:                  spec.Inference.Image,
				Framework:              spec.Inference.Framework,
				FrameworkVersion:       spec.Inference.FrameworkVersion,
				NearestModelName:       spec.Inference.NearestModelName,
				SupportedContentTypes:  spec.Inference.SupportedContentTypes,
				SupportedResponseTypes: spec.Inference.SupportedResponseTypes,
				SupportedInstanceTypes: spec.Inference.SupportedInstanceTypes,
				ModelDataURI:           spec.Inference.ModelDataURI,
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error registering package: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✅ Registered %s version %d\n", pkg.GroupName, pkg.Version)
		fmt.Printf("   package id: %s\n", pkg.ID)
	},
}

var describePackageCmd = &cobra.Command{
	Use:   "describe <package-id>",
	Short: "Show a registered model package",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		pkg, err := client.DescribeModelPackage(cmd.Context(), args[0])
		if err != nil {
			if lattice.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "❌ No model package %q\n", args[0])
			} else {
				fmt.Fprintf(os.Stderr, "❌ Error describing package: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Package:  %s\n", pkg.ID)
		fmt.Printf("Group:    %s\n", pkg.GroupName)
		fmt.Printf("Version:  %d\n", pkg.Version)
		fmt.Printf("Created:  %s\n", pkg.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	},
}

func init() {
	createGroupCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	registerCmd.Flags().StringVar(&registerModelData, "model-data", "", "Storage URI of the packed model archive (overrides the spec file)")

	registryCmd.AddCommand(createGroupCmd)
	registryCmd.AddCommand(registerCmd)
	registryCmd.AddCommand(describePackageCmd)
	rootCmd.AddCommand(registryCmd)
}
