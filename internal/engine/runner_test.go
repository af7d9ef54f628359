package engine

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/toyrobot/internal/config"
	"github.com/daryltucker/toyrobot/internal/model"
	"github.com/daryltucker/toyrobot/internal/output"
)

type recordingWriter struct {
	steps []model.Step
}

func (w *recordingWriter) Write(s model.Step) error {
	w.steps = append(w.steps, s)
	return nil
}

func newTestRunner(out *bytes.Buffer) *Runner {
	return NewRunner(NewRobot(DefaultTable()), output.NewPrinter(out, "Output : ", false))
}

func writeBatch(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestProcessOutcomes(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)
	rec := &recordingWriter{}
	r.Writers = append(r.Writers, rec)

	lines := []string{"REPORT", "MOVE", "PLACE 9,9,NORTH", "PLACE 0,0,NORTH", "JUMP", "MOVE", "REPORT"}
	for _, line := range lines {
		_, err := r.Process(line)
		require.NoError(t, err)
	}

	require.Len(t, rec.steps, len(lines))
	outcomes := make([]model.Outcome, 0, len(lines))
	for _, s := range rec.steps {
		outcomes = append(outcomes, s.Outcome)
	}
	assert.Equal(t, []model.Outcome{
		model.OutcomeNotPlaced,
		model.OutcomeNotPlaced,
		model.OutcomeRejected,
		model.OutcomeApplied,
		model.OutcomeSyntaxError,
		model.OutcomeApplied,
		model.OutcomeApplied,
	}, outcomes)

	first := rec.steps[0]
	assert.False(t, first.Placed)
	assert.Empty(t, first.Heading)
	assert.Empty(t, first.Report)

	last := rec.steps[len(rec.steps)-1]
	assert.Equal(t, 7, last.Index)
	assert.Equal(t, "REPORT", last.Action)
	assert.Equal(t, "0,1,NORTH", last.Report)
	assert.True(t, last.Placed)
	assert.Equal(t, uint64(1), last.Y)

	// Only the REPORT after placement prints anything.
	assert.Equal(t, "Output : 0,1,NORTH\n", out.String())

	series, err := testutil.GatherAndCount(r.Metrics.Registry(), "toyrobot_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 7, series)
}

func TestRunInteractive(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)

	in := strings.NewReader("PLACE 1,2,EAST\nMOVE\nMOVE\nLEFT\nMOVE\nREPORT\n")
	require.NoError(t, r.RunInteractive(in, ""))
	assert.Equal(t, "Output : 3,3,NORTH\n", out.String())
}

func TestRunInteractivePrompt(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)

	require.NoError(t, r.RunInteractive(strings.NewReader("PLACE 0,0,NORTH\r\nREPORT\r\n"), "> "))
	assert.Equal(t, "> > Output : 0,0,NORTH\n> ", out.String())
}

func TestRunBatch(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)

	path := writeBatch(t, "PLACE 0,0,NORTH|MOVE|REPORT|\nLEFT|REPORT\n")
	require.NoError(t, r.RunBatch(path, '|', true))

	want := strings.Join([]string{
		"processing data-set from file:" + path,
		"PLACE 0,0,NORTH",
		"MOVE",
		"REPORT",
		"Output : 0,1,NORTH",
		"LEFT",
		"REPORT",
		"Output : 0,1,WEST",
		"data-set from file:" + path + " COMPLETE",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestRunBatchWithoutEcho(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)

	path := writeBatch(t, "PLACE 999999,999999,NORTH;PLACE 4,4,EAST;MOVE;;REPORT")
	require.NoError(t, r.RunBatch(path, ';', false))
	assert.Contains(t, out.String(), "Output : 4,4,EAST\n")
	assert.NotContains(t, out.String(), "\nMOVE\n")
}

func TestRunBatchMissingFile(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(&out)

	err := r.RunBatch(filepath.Join(t.TempDir(), "missing.txt"), '|', true)
	require.ErrorContains(t, err, "failed to open batch file")
	assert.Empty(t, out.String())
}

func TestSplitOn(t *testing.T) {
	split := splitOn('|')

	adv, tok, err := split([]byte("MOVE|LEFT"), false)
	require.NoError(t, err)
	assert.Equal(t, 5, adv)
	assert.Equal(t, "MOVE", string(tok))

	adv, tok, err = split([]byte("LEFT"), false)
	require.NoError(t, err)
	assert.Zero(t, adv)
	assert.Nil(t, tok)

	adv, tok, err = split([]byte("LEFT"), true)
	require.NoError(t, err)
	assert.Equal(t, 4, adv)
	assert.Equal(t, "LEFT", string(tok))
}

func TestSessionWritesTracesAndMetrics(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.EchoRecords = false
	cfg.MetricsFile = filepath.Join(dir, "metrics", "robot.prom")

	traces := TraceFiles{
		JSON: filepath.Join(dir, "trace", "steps.jsonl"),
		CSV:  filepath.Join(dir, "trace", "steps.csv"),
	}

	var out bytes.Buffer
	s, err := NewSession(cfg, &out, traces)
	require.NoError(t, err)

	path := writeBatch(t, "PLACE 1,1,SOUTH|MOVE|MOVE|REPORT")
	require.NoError(t, s.Batch(path))
	require.NoError(t, s.Close())

	assert.Contains(t, out.String(), "Output : 1,0,SOUTH\n")

	f, err := os.Open(traces.CSV)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "rejected", rows[3][3])

	jsonl, err := os.ReadFile(traces.JSON)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(jsonl), "\n"))

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `toyrobot_commands_total{action="MOVE",outcome="rejected"} 1`)
}

func TestSessionUsesConfiguredTable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Table = config.TableConfig{MaxX: 9, MaxY: 9}

	var out bytes.Buffer
	s, err := NewSession(cfg, &out, TraceFiles{})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Process("PLACE 9,9,NORTH")
	require.NoError(t, err)
	assert.True(t, s.Robot.Placed())
	assert.Equal(t, Table{MaxX: 9, MaxY: 9}, s.Robot.Table())
}
