// Package fixture provides small test doubles and scenario-text builders
// shared across the simulator packages' test suites, the same role the
// teacher's root testing.go (MockBackend) played for go-ublk's tests.
package fixture

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/oslab-go/ossim/internal/logging"
)

// Recorder is a *logging.Logger backed by an in-memory buffer, so tests
// can assert on exact trace output (spec.md §8's literal scenario
// transcripts).
type Recorder struct {
	buf *bytes.Buffer
	*logging.Logger
}

// NewRecorder builds a Recorder at the given level.
func NewRecorder(level logging.LogLevel) *Recorder {
	buf := &bytes.Buffer{}
	return &Recorder{
		buf:    buf,
		Logger: logging.NewLogger(&logging.Config{Level: level, Output: buf}),
	}
}

// Lines returns the recorded output split on newlines, with the trailing
// empty line (if any) dropped.
func (r *Recorder) Lines() []string {
	s := strings.TrimRight(r.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// String returns the raw recorded output.
func (r *Recorder) String() string {
	return r.buf.String()
}

// IOSCHScenarioText builds an IOSCH scenario file body from
// (arrival, track) pairs, per spec.md §6's "<arrival> <track>" grammar.
func IOSCHScenarioText(pairs [][2]int) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(strconv.Itoa(p[0]))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(p[1]))
		b.WriteByte('\n')
	}
	return b.String()
}

// RandomFileText builds a random-file body: a leading count followed by
// one value per line, per spec.md §6.
func RandomFileText(values []int64) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(values)))
	b.WriteByte('\n')
	for _, v := range values {
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteByte('\n')
	}
	return b.String()
}

// SCHEDScenarioText builds a SCHED scenario file body from
// (AT, TC, CB, IO) tuples, per spec.md §6's
// "<AT> <TC> <CB> <IO>" grammar (static priority is drawn at parse time,
// not present in the file).
func SCHEDScenarioText(tuples [][4]int) string {
	var b strings.Builder
	for _, t := range tuples {
		b.WriteString(strconv.Itoa(t[0]))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t[1]))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t[2]))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(t[3]))
		b.WriteByte('\n')
	}
	return b.String()
}
