// cmd/configure.go
package cmd

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	configureToken    string
	configureRole     string
	configurePrefix   string
	configureShowOnly bool
)

// configureCmd writes the per-user config file so other commands can run
// without repeating flags.
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the CLI configuration file",
	Long: `Stores the control-plane URL, API token, default execution role, and
artifact key prefix in the config file (default $HOME/.lattice-cli.yaml).
Values not passed as flags keep their current setting. With --show, prints
the effective configuration without writing anything.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		if configureShowOnly {
			fmt.Printf("control plane:   %s\n", cfg.ControlPlane)
			if cfg.Token != "" {
				fmt.Println("token:           (set)")
			} else {
				fmt.Println("token:           (unset)")
			}
			fmt.Printf("role:            %s\n", cfg.Role)
			fmt.Printf("artifact prefix: %s\n", cfg.ArtifactPrefix)
			fmt.Printf("poll interval:   %s\n", cfg.PollInterval.Std())
			fmt.Printf("wait timeout:    %s\n", cfg.WaitTimeout.Std())
			return
		}

		if configureToken != "" {
			cfg.Token = configureToken
		}
		if configureRole != "" {
			cfg.Role = configureRole
		}
		if configurePrefix != "" {
			cfg.ArtifactPrefix = configurePrefix
		}

		path := cfgFile
		if path == "" {
			path, err = config.DefaultPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ %v\n", err)
				os.Exit(1)
			}
		}

		if err := config.Save(cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Wrote %s\n", path)
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureToken, "token", "", "API token for the control plane")
	configureCmd.Flags().StringVar(&configureRole, "role", "", "Default execution role for job submissions")
	configureCmd.Flags().StringVar(&configurePrefix, "artifact-prefix", "", "Default object key prefix for uploads")
	configureCmd.Flags().BoolVar(&configureShowOnly, "show", false, "Print the effective configuration and exit")
	rootCmd.AddCommand(configureCmd)
}
