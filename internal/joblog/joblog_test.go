package joblog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/bankcap-etl/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2021, time.March, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "2021-Mar-05-14:07:09,ETL Job Started\n", FormatEntry(ts, "ETL Job Started"))
}

func TestLog_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfile.txt")
	mock := logging.NewMockLogger()
	jl := New(path, mock)
	jl.SetClock(fixedClock(time.Date(2022, time.December, 31, 23, 59, 58, 0, time.Local)))

	require.NoError(t, jl.Log("Extract phase Started"))
	require.NoError(t, jl.Log("Extract phase Ended"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2022-Dec-31-23:59:58,Extract phase Started\n2022-Dec-31-23:59:58,Extract phase Ended\n",
		string(content))
	assert.Len(t, mock.GetEntriesByLevel("DEBUG"), 2)
}

func TestLog_KeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfile.txt")
	require.NoError(t, os.WriteFile(path, []byte("2020-Jan-01-00:00:00,previous run\n"), 0600))

	jl := New(path, nil)
	require.NoError(t, jl.Log("ETL Job Started"))

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "previous run", entries[0].Message)
	assert.Equal(t, "ETL Job Started", entries[1].Message)
}

func TestLog_UnwritablePath(t *testing.T) {
	jl := New(filepath.Join(t.TempDir(), "missing", "logfile.txt"), nil)
	err := jl.Log("ETL Job Started")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error opening job log")
}

func TestParseEntry(t *testing.T) {
	entry, err := ParseEntry("2021-Mar-05-14:07:09,Load phase Ended\n")
	require.NoError(t, err)
	assert.Equal(t, "Load phase Ended", entry.Message)
	assert.Equal(t, time.March, entry.Timestamp.Month())
	assert.Equal(t, 9, entry.Timestamp.Second())

	_, err = ParseEntry("no separator here")
	assert.Error(t, err)

	_, err = ParseEntry("2021-03-05 14:07:09,bad timestamp")
	assert.Error(t, err)
}

func TestParseEntry_MessageWithComma(t *testing.T) {
	entry, err := ParseEntry("2021-Mar-05-14:07:09,a, b")
	require.NoError(t, err)
	assert.Equal(t, "a, b", entry.Message)
}
