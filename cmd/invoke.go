// cmd/invoke.go
package cmd

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/endpoint"
	"github.com/spf13/cobra"
)

var (
	invokeData        string
	invokeContentType string
	invokeAccept      string
	invokeCount       int
	invokeRPS         float64
)

// invokeCmd represents the invoke command
var invokeCmd = &cobra.Command{
	Use:   "invoke <endpoint-name>",
	Short: "Send inference requests to a live endpoint",
	Long: `Reads feature rows from a CSV file and invokes the endpoint with them,
encoded as CSV or as a binary NPY tensor depending on --content-type. With
--count above one, the run repeats and reports latency statistics, optionally
rate-limited with --rps. This is a sanity check, not a benchmark; use
'lattice recommend' for real load testing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if invokeData == "" {
			fmt.Fprintln(os.Stderr, "❌ --data is required")
			os.Exit(1)
		}

		raw, err := os.ReadFile(invokeData)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error reading data file: %v\n", err)
			os.Exit(1)
		}

		rows, err := endpoint.ParseCSV(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error parsing data file: %v\n", err)
			os.Exit(1)
		}
		if len(rows) == 0 {
			fmt.Fprintln(os.Stderr, "❌ Data file holds no feature rows")
			os.Exit(1)
		}

		var payload []byte
		var contentType string
		switch invokeContentType {
		case "csv":
			payload = endpoint.EncodeCSV(rows)
			contentType = endpoint.ContentTypeCSV
		case "npy":
			values := make([]float32, 0, len(rows)*len(rows[0]))
			for _, row := range rows {
				for _, v := range row {
					values = append(values, float32(v))
				}
			}
			payload, err = endpoint.EncodeNPY(values, []int{len(rows), len(rows[0])})
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ Error encoding tensor: %v\n", err)
				os.Exit(1)
			}
			contentType = endpoint.ContentTypeNPY
		default:
			fmt.Fprintf(os.Stderr, "❌ Unknown content type %q (want csv or npy)\n", invokeContentType)
			os.Exit(1)
		}

		client, _, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := signalContext()
		defer cancel()

		result, err := endpoint.Smoke(ctx, client, endpoint.SmokeConfig{
			EndpointName: args[0],
			ContentType:  contentType,
			Accept:       invokeAccept,
			Payload:      payload,
			Count:        invokeCount,
			RPS:          invokeRPS,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Invocation run aborted: %v\n", err)
			os.Exit(1)
		}

		if invokeCount <= 1 {
			if result.Errors > 0 {
				fmt.Fprintf(os.Stderr, "❌ Invocation failed: %v\n", result.FirstError)
				os.Exit(1)
			}
			os.Stdout.Write(result.LastResponse)
			if n := len(result.LastResponse); n > 0 && result.LastResponse[n-1] != '\n' {
				fmt.Println()
			}
			return
		}

		fmt.Printf("Invocations: %d (%d failed)\n", result.Count, result.Errors)
		if result.Errors > 0 && result.FirstError != nil {
			fmt.Printf("First error: %v\n", result.FirstError)
		}
		if result.Count > result.Errors {
			fmt.Printf("Latency:     min %s / mean %s / p50 %s / p99 %s / max %s\n",
				result.MinLatency, result.MeanLatency, result.P50Latency, result.P99Latency, result.MaxLatency)
		}
		if result.Errors > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	invokeCmd.Flags().StringVar(&invokeData, "data", "", "CSV file of feature rows to send (required)")
	invokeCmd.Flags().StringVar(&invokeContentType, "content-type", "csv", "Payload encoding: csv or npy")
	invokeCmd.Flags().StringVar(&invokeAccept, "accept", "", "Accept header for the response (default: the container's choice)")
	invokeCmd.Flags().IntVar(&invokeCount, "count", 1, "Number of invocations")
	invokeCmd.Flags().Float64Var(&invokeRPS, "rps", 0, "Rate limit in requests per second (0: unlimited)")
	rootCmd.AddCommand(invokeCmd)
}
