// cmd/upload.go
package cmd

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/artifact"
	"github.com/lattice-ml/lattice-cli/internal/ui"
	"github.com/spf13/cobra"
)

var uploadKey string

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <archive>",
	Short: "Upload a packed model archive to platform storage",
	Long: `Uploads an archive produced by 'lattice pack' through the control
plane's presigned-upload flow and prints the storage URI that registry and
training commands accept.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		archivePath := args[0]

		client, cfg, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		key := uploadKey
		if key == "" {
			key = artifact.DefaultKey(cfg.ArtifactPrefix, archivePath)
		}

		spinner := ui.NewSpinner()
		spinner.Start(fmt.Sprintf("Uploading %s", archivePath))

		ctx, cancel := signalContext()
		defer cancel()

		storageURI, err := artifact.Upload(ctx, client, archivePath, key)
		if err != nil {
			spinner.Fail(fmt.Sprintf("Upload failed: %v", err))
			os.Exit(1)
		}

		spinner.Success("Upload complete")
		fmt.Printf("   storage URI: %s\n", storageURI)
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadKey, "key", "", "Object key to upload under (default: derived from the artifact prefix and file name)")
	rootCmd.AddCommand(uploadCmd)
}
