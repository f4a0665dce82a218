// Package csvreport renders a batch of simulation replication outputs
// to the single.csv / <series>.csv layout the experiment driver
// produces, one row per replication, with a header line written when a
// file is created or truncated, and not again when appending to a file
// that already has content.
package csvreport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/qcserverless/hybridsim/sim"
)

// openOutputFile opens path/filename for writing, truncating unless
// append is set. The header line is written only when the file didn't
// already exist or was empty — so repeated --append runs accumulate
// rows under a single header instead of one per run.
func openOutputFile(path, filename string, appendMode bool, header string) (*os.File, error) {
	fullPath := filepath.Join(path, filename)

	addHeader := !appendMode
	if appendMode {
		info, err := os.Stat(fullPath)
		addHeader = err != nil || info.Size() == 0
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening output file %q: %w", fullPath, err)
	}
	if addHeader {
		if _, err := fmt.Fprintln(f, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing header to %q: %w", fullPath, err)
		}
	}
	return f, nil
}

// Write renders outputs to path, one single.csv row per replication
// plus one row per recorded sample in every named series' own CSV
// file. configHeader is the static column header for the identifying
// Config fields (sim.Config.Header()); additionalHeader/additionalFields
// prepend extra caller-supplied columns to every row, mirroring the
// original CLI's --additional-header/--additional-fields flags. Write
// is a no-op if outputs is empty.
func Write(path string, appendMode bool, additionalHeader, additionalFields, configHeader string, outputs []sim.Output) error {
	if len(outputs) == 0 {
		return nil
	}

	singleHeader := joinNonEmpty(additionalHeader, configHeader, outputs[0].Single.Header())
	singleFile, err := openOutputFile(path, "single.csv", appendMode, singleHeader)
	if err != nil {
		return err
	}
	defer singleFile.Close()

	seriesFiles := make(map[string]*os.File)
	defer func() {
		for _, f := range seriesFiles {
			f.Close()
		}
	}()

	for _, output := range outputs {
		row := joinNonEmpty(additionalFields, output.ConfigCSV, output.Single.ToCSV())
		if _, err := fmt.Fprintln(singleFile, row); err != nil {
			return fmt.Errorf("writing single.csv row: %w", err)
		}

		for _, name := range output.Series.Names() {
			series := output.Series.Series(name)
			f, ok := seriesFiles[name]
			if !ok {
				header := joinNonEmpty(additionalHeader, configHeader, series.Header, "value")
				f, err = openOutputFile(path, name+".csv", appendMode, header)
				if err != nil {
					return err
				}
				seriesFiles[name] = f
			}

			labels := make([]string, 0, len(series.Values))
			for label := range series.Values {
				labels = append(labels, label)
			}
			sort.Strings(labels)

			for _, label := range labels {
				for _, value := range series.Values[label] {
					row := joinNonEmpty(additionalFields, output.ConfigCSV, label, fmt.Sprintf("%v", value))
					if _, err := fmt.Fprintln(f, row); err != nil {
						return fmt.Errorf("writing %s.csv row: %w", name, err)
					}
				}
			}
		}
	}
	return nil
}

// joinNonEmpty joins fields with commas, skipping empty strings so an
// unused additionalHeader/additionalFields column contributes neither
// a stray leading comma nor an empty column.
func joinNonEmpty(fields ...string) string {
	var out string
	first := true
	for _, f := range fields {
		if f == "" {
			continue
		}
		if !first {
			out += ","
		}
		out += f
		first = false
	}
	return out
}
