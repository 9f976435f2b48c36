// Package joblog writes the ETL job's phase log: one "<timestamp>,<message>"
// line per event, appended to a plain text file.
package joblog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"fjacquet/bankcap-etl/internal/logging"
)

// TimestampLayout renders timestamps as YYYY-MonName-DD-HH:MM:SS.
const TimestampLayout = "2006-Jan-02-15:04:05"

// Entry is a single parsed job log line.
type Entry struct {
	Timestamp time.Time
	Message   string
}

// JobLog appends entries to a log file. The file is opened and closed for
// every entry so nothing stays buffered between phases.
type JobLog struct {
	path   string
	now    func() time.Time
	logger logging.Logger
}

// New creates a JobLog writing to path.
func New(path string, logger logging.Logger) *JobLog {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &JobLog{
		path:   path,
		now:    time.Now,
		logger: logger.WithField(logging.FieldComponent, "joblog"),
	}
}

// SetClock replaces the time source, mostly for tests.
func (j *JobLog) SetClock(now func() time.Time) {
	if now != nil {
		j.now = now
	}
}

// Path returns the log file path.
func (j *JobLog) Path() string {
	return j.path
}

// Log appends message with the current timestamp.
func (j *JobLog) Log(message string) (err error) {
	file, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening job log %s: %w", j.path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing job log %s: %w", j.path, closeErr)
		}
	}()

	if _, err := file.WriteString(FormatEntry(j.now(), message)); err != nil {
		return fmt.Errorf("error writing job log %s: %w", j.path, err)
	}

	j.logger.Debug(message, logging.Field{Key: logging.FieldFile, Value: j.path})
	return nil
}

// FormatEntry renders one log line, including the trailing newline.
func FormatEntry(ts time.Time, message string) string {
	return ts.Format(TimestampLayout) + "," + message + "\n"
}

// ParseEntry parses a line produced by FormatEntry. The timestamp is read in
// the local time zone.
func ParseEntry(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	ts, message, ok := strings.Cut(line, ",")
	if !ok {
		return Entry{}, fmt.Errorf("malformed job log line %q", line)
	}
	parsed, err := time.ParseInLocation(TimestampLayout, ts, time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed job log timestamp %q: %w", ts, err)
	}
	return Entry{Timestamp: parsed, Message: message}, nil
}

// ReadEntries parses every line of a job log file.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening job log %s: %w", path, err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry, err := ParseEntry(scanner.Text())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading job log %s: %w", path, err)
	}
	return entries, nil
}
