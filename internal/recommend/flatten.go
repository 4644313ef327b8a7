package recommend

import (
	"sort"
	"strconv"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// Table is a flattened view of recommendation results: one row per
// recommendation, columns the union of all keys seen across rows. Ordering
// of rows follows the platform's response; columns are sorted for stable
// rendering.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Empty reports whether the table has no rows. An empty table is a valid
// outcome of a stopped job, not an error.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Flatten merges each recommendation's endpoint configuration, model
// configuration, and metrics into a single key-value row. Environment
// variables and environment parameters are inlined as their own columns.
// The per-variant label is dropped: it repeats the endpoint name and adds
// nothing to the comparison. Fixed columns are written after the environment
// entries and take precedence over any same-named variable.
func Flatten(recs []lattice.Recommendation) Table {
	rows := make([]map[string]string, 0, len(recs))
	seen := map[string]bool{}

	for _, rec := range recs {
		row := map[string]string{}

		for k, v := range rec.EndpointConfig.Environment {
			row[k] = v
		}
		for k, v := range rec.ModelConfig.EnvironmentParameters {
			row[k] = v
		}

		row["EndpointName"] = rec.EndpointConfig.EndpointName
		row["InstanceType"] = rec.EndpointConfig.InstanceType
		row["InitialInstanceCount"] = strconv.Itoa(rec.EndpointConfig.InitialInstanceCount)

		if rec.ModelConfig.PackageID != "" {
			row["PackageID"] = rec.ModelConfig.PackageID
		}

		row["CostPerHour"] = strconv.FormatFloat(rec.Metrics.CostPerHour, 'f', -1, 64)
		row["CostPerInference"] = strconv.FormatFloat(rec.Metrics.CostPerInference, 'f', -1, 64)
		row["MaxInvocations"] = strconv.Itoa(rec.Metrics.MaxInvocations)
		row["ModelLatencyMs"] = strconv.Itoa(rec.Metrics.ModelLatencyMs)

		for k := range row {
			seen[k] = true
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	return Table{Columns: columns, Rows: rows}
}
