/*
PURPOSE:
  Writes the command trace to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Inspect a batch run record by record.

  Implementation-discovered:
  - Overwrite the file on each run; a trace belongs to one batch.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Step

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).

USAGE:
  w, err := output.NewCSVWriter("trace.csv")
  w.Write(step)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Step struct changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/toyrobot/internal/model"
)

// CSVHeader is the first row of every trace file.
var CSVHeader = []string{
	"index", "input", "action", "outcome", "error",
	"placed", "x", "y", "heading", "report",
}

// CSVWriter handles writing steps to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single step to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(s model.Step) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		strconv.Itoa(s.Index),
		s.Input,
		s.Action,
		string(s.Outcome),
		s.Error,
		strconv.FormatBool(s.Placed),
		strconv.FormatUint(s.X, 10),
		strconv.FormatUint(s.Y, 10),
		s.Heading,
		s.Report,
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
