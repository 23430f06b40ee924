package dimfield

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExportCSV appends one row per snapshot to the flat file at path, creating
// it (and writing the header) if it does not exist or is empty. There is no
// schema versioning; the header is fixed.
func ExportCSV(path string, snapshots []Snapshot) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
		if err := w.Write(strings.Split(CSVHeader, ",")); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	for _, s := range snapshots {
		r := s.Result
		record := []string{
			strconv.Itoa(s.Dimension),
			formatReal(r.Observable),
			formatReal(r.Potential),
			formatReal(r.Matter),
			formatReal(r.Energy),
			formatReal(r.Spin),
			formatReal(r.Momentum),
			formatReal(r.Field),
			formatReal(r.Wave),
			formatReal(r.Collapse),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatReal(v Real) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

// ExportCSV computes the current snapshot and appends it to path. Batch
// exports across dimensions pair Sweep with the free function.
func (e *Engine) ExportCSV(path string) error {
	snap := Snapshot{Dimension: e.CurrentDimension(), Result: e.Compute()}
	return ExportCSV(path, []Snapshot{snap})
}
