// cmd/pack.go
/*
Copyright © 2026 Lattice ML <dev@lattice-ml.dev>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/artifact"
	"github.com/spf13/cobra"
)

var packOutput string
var packEntry string
var packSample bool

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <model-dir>",
	Short: "Package a model directory into a deployable archive",
	Long: `Packs the contents of a model directory into a gzipped tarball the
platform's serving containers can unpack. The directory must contain the
inference entry script; pass --entry if yours is not named inference.py.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		srcDir := args[0]

		if !packSample {
			if err := artifact.ValidateModelDir(srcDir, packEntry); err != nil {
				fmt.Fprintf(os.Stderr, "❌ Invalid model directory: %v\n", err)
				os.Exit(1)
			}
		}

		info, err := artifact.Pack(srcDir, packOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error packing %s: %v\n", srcDir, err)
			os.Exit(1)
		}

		fmt.Printf("✅ Packed %d files into %s (%d bytes)\n", info.Files, info.Path, info.SizeBytes)
		fmt.Printf("   sha256: %s\n", info.SHA256)
	},
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "model.tar.gz", "Output archive path")
	packCmd.Flags().StringVar(&packEntry, "entry", "inference.py", "Inference entry script the archive must contain")
	packCmd.Flags().BoolVar(&packSample, "sample", false, "Package a sample-payload directory (skips the entry-script check)")
	rootCmd.AddCommand(packCmd)
}
