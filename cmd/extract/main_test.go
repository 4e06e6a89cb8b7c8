package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarCSV = "Semana,Lunes,Martes\n" +
	"1,2 mar,3 mar\n" +
	",Exámenes S1,Exámenes S1\n" +
	",,\n"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCSV(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "calendario.csv")
	require.Nil(t, os.WriteFile(source, []byte(calendarCSV), 0o600))

	stdout, err := execute(t, source, "--year", "2026")
	require.Nil(t, err)

	out := filepath.Join(dir, "calendario_events.ics")
	assert.Contains(t, stdout, "1 tables, 2 items, 1 events written to "+out)

	data, err := os.ReadFile(out)
	require.Nil(t, err)

	ics := string(data)
	assert.Contains(t, ics, "SUMMARY:Exámenes S1")
	assert.Contains(t, ics, "CATEGORIES:S1")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260302")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20260304")
}

func TestExtractCustomOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "calendario.txt")
	require.Nil(t, os.WriteFile(source, []byte(calendarCSV), 0o600))

	out := filepath.Join(dir, "agenda.ics")
	_, err := execute(t, source, "--kind", "csv", "--year", "2026", "-o", out)
	require.Nil(t, err)

	_, err = os.Stat(out)
	assert.Nil(t, err)
}

func TestExtractUnknownKind(t *testing.T) {
	_, err := execute(t, "calendario.pdf", "--kind", "pdf")
	assert.ErrorContains(t, err, "unknown source kind")
}

func TestExtractMissingSource(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.csv"))
	assert.NotNil(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "cal_events.ics", outputPath("cal.html"))
	assert.Equal(t, "dir/cal_events.ics", outputPath("dir/cal.csv"))
	assert.Equal(t, "cal_events.ics", outputPath("https://example.com/x/cal.html"))
	assert.Equal(t, "calendar_events.ics", outputPath("https://example.com/"))
}
