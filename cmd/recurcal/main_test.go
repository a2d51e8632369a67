package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleFile = `start_date: 2018-01-02
end_date: 2018-02-28
pattern: weekly
dates_to_add: [2018-01-04]
`

func writeSchedule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recurcal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scheduleFile), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RECURCAL_LOG_FILE", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewPrintsMonth(t *testing.T) {
	out, err := run(t, "preview", "--config", writeSchedule(t), "--toggle", "2018-01-09")
	require.NoError(t, err)

	assert.Contains(t, out, "Weekly on Tuesday | 2018-01-02 to 2018-02-28")
	assert.Contains(t, out, "January 2018")
	assert.Contains(t, out, " 2@")
	assert.Contains(t, out, " 4+")
	assert.Contains(t, out, " 9x")
	assert.Contains(t, out, "16*")
	assert.Contains(t, out, "1 day will be added")
	assert.Contains(t, out, "1 day will be removed")
}

func TestPreviewFlagsOverrideFile(t *testing.T) {
	out, err := run(t, "preview", "--config", writeSchedule(t),
		"--start", "2018-01-03", "--pattern", "weekly", "--weekdays", "mon,fri", "--month", "2018-02")
	require.NoError(t, err)

	assert.Contains(t, out, "Weekly on Monday, Friday | 2018-01-03 to 2018-02-28")
	assert.Contains(t, out, "February 2018")
	assert.Contains(t, out, " 5*")
	assert.Contains(t, out, " 9*")
	assert.Contains(t, out, "exceptions:")
}

func TestPreviewRejectsBadInput(t *testing.T) {
	_, err := run(t, "preview", "--config", writeSchedule(t), "--toggle", "2018-01-02")
	assert.ErrorContains(t, err, "can not be changed")

	_, err = run(t, "preview", "--config", writeSchedule(t), "--month", "January")
	assert.Error(t, err)

	_, err = run(t, "preview", "--config", writeSchedule(t), "--weekdays", "funday")
	assert.ErrorContains(t, err, "--weekdays")

	_, err = run(t, "preview", "--config", writeSchedule(t), "--end", "2017-01-01")
	assert.ErrorContains(t, err, "End date can not be before the start date")
}

func TestExportToStdout(t *testing.T) {
	out, err := run(t, "export", "--config", writeSchedule(t), "--summary", "Gym")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "SUMMARY:Gym")
	assert.Contains(t, out, "FREQ=WEEKLY")
	assert.Contains(t, out, "20180104")
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")
	out, err := run(t, "export", "--config", writeSchedule(t), "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "END:VCALENDAR")
}
