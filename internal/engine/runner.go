/*
PURPOSE:
  High-level runner that feeds input records through the parser and the
  robot, prints reports and records a trace of every record.

REQUIREMENTS:
  User-specified:
  - Interactive mode: read stdin line by line.
  - Batch mode: read a file of '|' delimited records and report completion.
  - REPORT prints "Output : <report>".

  Implementation-discovered:
  - Rejections are logged at debug level and counted, never printed.
  - A trace (CSV/JSON) of each record is handy when debugging a batch file.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/parser, internal/output, internal/metrics

ERROR HANDLING:
  - Syntax and bounds errors are swallowed (state unchanged).
  - I/O errors (unreadable file, failed writes) are returned.

IMPLEMENTATION RULES:
  - Records are processed strictly in order, one at a time.

USAGE:
  r := engine.NewRunner(engine.NewRobot(table), printer)
  err := r.RunBatch("commands.txt", '|', true)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/robot.go
  - internal/parser/parser.go

MAINTENANCE:
  - Update Process if new outcomes are introduced.
*/

package engine

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/daryltucker/toyrobot/internal/config"
	"github.com/daryltucker/toyrobot/internal/metrics"
	"github.com/daryltucker/toyrobot/internal/model"
	"github.com/daryltucker/toyrobot/internal/output"
	"github.com/daryltucker/toyrobot/internal/parser"
)

const maxRecordSize = 1024 * 1024

// StepWriter receives the trace of every processed record.
type StepWriter interface {
	Write(model.Step) error
}

// Runner drives a single Robot from a stream of input records.
type Runner struct {
	Robot   *Robot
	Printer *output.Printer
	Metrics *metrics.Recorder
	Writers []StepWriter

	processed int
}

// NewRunner creates a Runner with a fresh metrics recorder and no trace writers.
func NewRunner(robot *Robot, printer *output.Printer) *Runner {
	return &Runner{
		Robot:   robot,
		Printer: printer,
		Metrics: metrics.New(),
	}
}

// Process parses and applies one record. The returned error is only ever an
// output failure; rejected commands are reported through the Step outcome.
func (r *Runner) Process(line string) (model.Step, error) {
	r.processed++
	step := model.Step{Index: r.processed, Input: line}

	cmd, err := parser.Parse(line)
	if err != nil {
		step.Outcome = model.OutcomeSyntaxError
		step.Error = err.Error()
		output.Logger.Debug("Dropped input", "input", line, "error", err)
	} else {
		step.Action = cmd.Action.String()
		err = r.Robot.Apply(cmd)
		switch {
		case err == nil:
			step.Outcome = model.OutcomeApplied
		case errors.Is(err, ErrNotPlaced):
			step.Outcome = model.OutcomeNotPlaced
			step.Error = err.Error()
			output.Logger.Debug("Ignored command", "command", cmd, "error", err)
		default:
			step.Outcome = model.OutcomeRejected
			step.Error = err.Error()
			output.Logger.Debug("Rejected command", "command", cmd, "error", err)
		}
	}

	step.Placed = r.Robot.Placed()
	if step.Placed {
		pos := r.Robot.Position()
		step.X, step.Y = pos.X, pos.Y
		step.Heading = r.Robot.Heading().String()
	}

	if step.Outcome == model.OutcomeApplied && cmd.Action == model.Report {
		if report, ok := r.Robot.Report(); ok {
			step.Report = report
			if err := r.Printer.Report(report); err != nil {
				return step, fmt.Errorf("failed to print report: %w", err)
			}
		}
	}

	if r.Metrics != nil {
		r.Metrics.Observe(step.Action, string(step.Outcome))
	}
	for _, w := range r.Writers {
		if err := w.Write(step); err != nil {
			return step, fmt.Errorf("failed to write trace: %w", err)
		}
	}
	return step, nil
}

// RunInteractive processes lines from in until EOF. A non-empty prompt is
// printed before each line is read.
func (r *Runner) RunInteractive(in io.Reader, prompt string) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordSize)

	for {
		if prompt != "" {
			if err := r.Printer.Printf("%s", prompt); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			break
		}
		if _, err := r.Process(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunBatch processes the records of the file at path, split on delim.
// Line breaks around a record are trimmed and empty records skipped. With
// echo set, each record is printed before it runs.
func (r *Runner) RunBatch(path string, delim byte, echo bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open batch file %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Printer.Printf("processing data-set from file:%s\n", path); err != nil {
		return err
	}

	records := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordSize)
	scanner.Split(splitOn(delim))
	for scanner.Scan() {
		record := strings.Trim(scanner.Text(), "\r\n")
		if record == "" {
			continue
		}
		if echo {
			if err := r.Printer.Echo(record); err != nil {
				return err
			}
		}
		if _, err := r.Process(record); err != nil {
			return err
		}
		records++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read batch file %s: %w", path, err)
	}

	output.Logger.Info("Batch complete", "file", path, "records", records)
	return r.Printer.Printf("data-set from file:%s COMPLETE\n", path)
}

// splitOn is a bufio.SplitFunc that yields records separated by delim.
func splitOn(delim byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, delim); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// TraceFiles names optional trace outputs for a run.
type TraceFiles struct {
	JSON string
	CSV  string
}

// Session is a Runner built from configuration, together with the files it
// owns. Close must be called once the run is over.
type Session struct {
	*Runner
	cfg     *config.Config
	closers []io.Closer
}

// NewSession builds a robot on the configured table and a runner printing
// to out. Trace files are created up front so a bad path fails before any
// record is processed.
func NewSession(cfg *config.Config, out io.Writer, traces TraceFiles) (*Session, error) {
	robot := NewRobot(Table{MaxX: cfg.Table.MaxX, MaxY: cfg.Table.MaxY})
	printer := output.NewPrinter(out, cfg.OutputPrefix, cfg.Color)
	s := &Session{Runner: NewRunner(robot, printer), cfg: cfg}

	if traces.JSON != "" {
		if err := ensureDir(traces.JSON); err != nil {
			return nil, err
		}
		w, err := output.NewJSONWriter(traces.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to init JSON writer at %s: %w", traces.JSON, err)
		}
		s.Writers = append(s.Writers, w)
		s.closers = append(s.closers, w)
	}
	if traces.CSV != "" {
		if err := ensureDir(traces.CSV); err != nil {
			s.closeFiles()
			return nil, err
		}
		w, err := output.NewCSVWriter(traces.CSV)
		if err != nil {
			s.closeFiles()
			return nil, fmt.Errorf("failed to init CSV writer at %s: %w", traces.CSV, err)
		}
		s.Writers = append(s.Writers, w)
		s.closers = append(s.closers, w)
	}

	return s, nil
}

// Batch runs a batch file with the configured delimiter and echo setting.
func (s *Session) Batch(path string) error {
	return s.RunBatch(path, s.cfg.RecordDelimiter[0], s.cfg.EchoRecords)
}

// Close flushes metrics (when configured) and closes trace files.
func (s *Session) Close() error {
	var errs []error
	if s.cfg.MetricsFile != "" && s.Metrics != nil {
		if err := ensureDir(s.cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		} else if err := s.Metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics to %s: %w", s.cfg.MetricsFile, err))
		}
	}
	errs = append(errs, s.closeFiles())
	return errors.Join(errs...)
}

func (s *Session) closeFiles() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
