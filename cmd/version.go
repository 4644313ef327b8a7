// cmd/version.go
package cmd

import (
	"fmt"
	"os"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

// Version will be set at build time
var Version = "dev"

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of the Lattice CLI",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Lattice CLI version %s\n", Version)
		if !versionCheck {
			return
		}
		if err := checkForUpdate(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Update check failed: %v\n", err)
		}
	},
}

// checkForUpdate compares the running build against the control plane's
// published latest and minimum-supported versions.
func checkForUpdate(cmd *cobra.Command) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	info, err := client.GetVersionInfo(cmd.Context())
	if err != nil {
		return err
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		// Dev builds carry no comparable version.
		fmt.Printf("Latest release: %s\n", info.Latest)
		return nil
	}

	latest, err := goversion.NewVersion(info.Latest)
	if err != nil {
		return fmt.Errorf("control plane reported unparseable latest version %q: %w", info.Latest, err)
	}

	if minimum, err := goversion.NewVersion(info.Minimum); err == nil && current.LessThan(minimum) {
		fmt.Printf("⚠ This build is below the minimum supported version %s; some commands may be rejected.\n", info.Minimum)
	}

	if current.LessThan(latest) {
		fmt.Printf("A newer release is available: %s\n", info.Latest)
	} else {
		fmt.Println("You are on the latest release.")
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check the control plane for a newer release")
	rootCmd.AddCommand(versionCmd)
}
