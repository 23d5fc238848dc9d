package report

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/utils/safe"
)

// WriteCSV serializes the table to a CSV file with a header row.
func WriteCSV(ctx context.Context, path string, table Table) error {
	f, err := os.Create(path) // #nosec G304 - path comes from the CLI out-prefix
	if err != nil {
		return goerr.Wrap(err, "failed to create CSV file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	w := csv.NewWriter(f)
	if err := w.Write(table.Fields); err != nil {
		return goerr.Wrap(err, "failed to write CSV header", goerr.V("path", path))
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("path", path))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV file", goerr.V("path", path))
	}
	return nil
}
