// Package measurement times named subtasks across iterations and writes a
// JSON report on Finish, in the shape a protocol-benchmarking driver expects
// to parse: an array of {"name": ..., "iteration_0": "...", ...} objects.
package measurement

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Measurement holds a names x iterations table of wall-clock start times
// and elapsed durations for a set of named subtasks.
type Measurement struct {
	names      []string
	iterations int
	startTimes [][]time.Time
	elapsed    [][]time.Duration
	index      map[string]int
}

// New allocates a Measurement for the given subtask names, sized to hold
// `iterations` rounds of each.
func New(names []string, iterations int) *Measurement {
	m := &Measurement{
		names:      append([]string(nil), names...),
		iterations: iterations,
		startTimes: make([][]time.Time, len(names)),
		elapsed:    make([][]time.Duration, len(names)),
		index:      make(map[string]int, len(names)),
	}
	for i, name := range names {
		m.startTimes[i] = make([]time.Time, iterations)
		m.elapsed[i] = make([]time.Duration, iterations)
		m.index[name] = i
	}
	return m
}

// StartSubTask records the start time of taskName's iteration-th round.
// Unknown task names are silently ignored, matching the original's
// unchecked vector-index lookup.
func (m *Measurement) StartSubTask(taskName string, iteration int) {
	idx, ok := m.index[taskName]
	if !ok {
		return
	}
	m.startTimes[idx][iteration] = time.Now()
}

// EndSubTask records the elapsed duration of taskName's iteration-th round
// since the matching StartSubTask call.
func (m *Measurement) EndSubTask(taskName string, iteration int) {
	idx, ok := m.index[taskName]
	if !ok {
		return
	}
	m.elapsed[idx][iteration] = time.Since(m.startTimes[idx][iteration])
}

// ReportPath returns the path Finish(protocolName, args) writes to, without
// performing any I/O. Callers that need to locate a report written by a
// previous Finish call (e.g. to serve it over HTTP) use this instead of
// reconstructing the naming scheme themselves.
func ReportPath(protocolName string, args []string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	var name strings.Builder
	name.WriteString(cwd)
	name.WriteString("/")
	name.WriteString(protocolName)
	for _, arg := range args {
		name.WriteString("*")
		name.WriteString(arg)
	}
	name.WriteString(".json")
	return name.String(), nil
}

// Finish writes the measurement report to
// <cwd>/<protocolName>*<args...>.json, with each iteration's elapsed
// milliseconds formatted to 3 decimal places. Write failures are logged
// and swallowed, matching the original's "report, don't fail the run"
// behavior on its own destructor path (here made an explicit method, per
// Design Notes, rather than relying on a finalizer).
func (m *Measurement) Finish(protocolName string, args []string) error {
	name, err := ReportPath(protocolName, args)
	if err != nil {
		log.Printf("measurement: failed to resolve working directory: %v", err)
		return nil
	}

	report := make([]map[string]string, 0, len(m.names))
	for i, taskName := range m.names {
		entry := map[string]string{"name": taskName}
		for iter := 0; iter < m.iterations; iter++ {
			ms := float64(m.elapsed[i][iter]) / float64(time.Millisecond)
			entry["iteration_"+strconv.Itoa(iter)] = strconv.FormatFloat(ms, 'f', 3, 64)
		}
		report = append(report, entry)
	}

	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("measurement: failed to marshal report: %v", err)
		return nil
	}

	if err := os.WriteFile(name, data, 0o644); err != nil {
		log.Printf("measurement: failed to write report to %s: %v", name, err)
	}
	return nil
}
