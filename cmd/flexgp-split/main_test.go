package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flexgptest "github.com/flexgp/flexgp/testing"
)

func writeLines(t *testing.T, dir, name string, lines []string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i)
	}

	return out
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage:")

	code, _, stderr = runCLI(t, "shuffle")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "shuffle"`)

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "flexgp-split split")
}

func TestSplit_Ungrouped(t *testing.T) {
	dir := t.TempDir()
	input := writeLines(t, dir, "ids.txt", numbered("line", 20))
	splitOut := filepath.Join(dir, "test.txt")
	restOut := filepath.Join(dir, "train.txt")

	code, stdout, stderr := runCLI(t, "split", input, "0.25", splitOut, restOut, "-r", "42")
	require.Equal(t, exitOK, code, stderr)

	split := readLines(t, splitOut)
	rest := readLines(t, restOut)
	assert.Len(t, split, 5)
	assert.Len(t, rest, 15)
	assert.ElementsMatch(t, numbered("line", 20), append(append([]string{}, split...), rest...))
	assert.Contains(t, stdout, "split:    5 records")

	// Same seed, same files.
	splitOut2 := filepath.Join(dir, "test2.txt")
	restOut2 := filepath.Join(dir, "train2.txt")
	code, _, stderr = runCLI(t, "split", "-r", "42", "-stats=false", input, "0.25", splitOut2, restOut2)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, split, readLines(t, splitOut2))
	assert.Equal(t, rest, readLines(t, restOut2))
}

func TestSplit_GroupedSQLite(t *testing.T) {
	var songs []flexgptest.Song
	artistOf := make(map[string]string)
	for a := range 4 {
		artist := fmt.Sprintf("AR%d", a)
		for k := range 3 {
			track := fmt.Sprintf("TR%d%d", a, k)
			songs = append(songs, flexgptest.Song{TrackID: track, ArtistID: artist, Year: 1990 + a})
			artistOf[track] = artist
		}
	}
	songs = append(songs, flexgptest.Song{TrackID: "TRX", ArtistID: "ARX", Year: 0})
	db := flexgptest.CreateSongsDB(t, songs)

	ids := []string{"TRX"}
	for _, s := range songs[:len(songs)-1] {
		ids = append(ids, s.TrackID)
	}

	dir := t.TempDir()
	input := writeLines(t, dir, "tracks.txt", ids)
	splitOut := filepath.Join(dir, "test.txt")
	restOut := filepath.Join(dir, "train.txt")

	code, stdout, stderr := runCLI(t, "split", input, "0.5", splitOut, restOut, "-d", db, "-r", "7")
	require.Equal(t, exitOK, code, stderr)

	split := readLines(t, splitOut)
	rest := readLines(t, restOut)
	assert.Len(t, split, 6)
	assert.Len(t, rest, 6)
	assert.NotContains(t, split, "TRX")
	assert.NotContains(t, rest, "TRX")
	assert.Contains(t, stdout, "excluded 1")

	sides := make(map[string]string)
	for side, lines := range map[string][]string{"split": split, "rest": rest} {
		for _, track := range lines {
			artist := artistOf[track]
			if prev, ok := sides[artist]; ok {
				assert.Equal(t, prev, side, "artist %s split across outputs", artist)
			}
			sides[artist] = side
		}
	}
	assert.Len(t, sides, 4)
}

func TestSplit_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeLines(t, dir, "ids.txt", numbered("line", 4))
	splitOut := filepath.Join(dir, "a.txt")
	restOut := filepath.Join(dir, "b.txt")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing arguments", []string{"split", input, "0.5"}, exitUsage},
		{"bad size", []string{"split", input, "1.5", splitOut, restOut}, exitUsage},
		{"count larger than input", []string{"split", input, "9", splitOut, restOut}, exitError},
		{"missing input", []string{"split", filepath.Join(dir, "none.txt"), "0.5", splitOut, restOut}, exitError},
		{"bad strategy", []string{"split", "-strategy", "random", input, "0.5", splitOut, restOut}, exitUsage},
		{"bad log level", []string{"split", "-log-level", "loud", input, "0.5", splitOut, restOut}, exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.NoFileExists(t, splitOut)
			assert.NoFileExists(t, restOut)
		})
	}
}

func TestSplit_ConfigFileAndMetrics(t *testing.T) {
	dir := t.TempDir()
	input := writeLines(t, dir, "ids.txt", numbered("line", 10))
	metricsFile := filepath.Join(dir, "flexgp.prom")
	configPath := writeLines(t, dir, "flexgp.yaml", []string{
		"target: 0.5",
		"seed: experiment-1",
		"strategy: hash-rank",
		"metrics:",
		"  textfilePath: " + metricsFile,
	})
	splitOut := filepath.Join(dir, "a.txt")
	restOut := filepath.Join(dir, "b.txt")

	// The positional size overrides the config target.
	code, _, stderr := runCLI(t, "split", "-config", configPath, input, "0.2", splitOut, restOut)
	require.Equal(t, exitOK, code, stderr)

	assert.Len(t, readLines(t, splitOut), 2)
	assert.Len(t, readLines(t, restOut), 8)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flexgp_split_completed_total")
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	all := numbered("line", 10)
	input := writeLines(t, dir, "data.txt", all)
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	code, _, stderr := runCLI(t, "select", "-i", input, "-r", "3", "-o", a, "3", "-o", b, "7")
	require.Equal(t, exitOK, code, stderr)

	linesA := readLines(t, a)
	linesB := readLines(t, b)
	assert.Len(t, linesA, 3)
	assert.Len(t, linesB, 7)
	assert.ElementsMatch(t, all, append(append([]string{}, linesA...), linesB...))
}

func TestSelect_ConstraintViolationWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeLines(t, dir, "data.txt", numbered("line", 5))
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	code, _, stderr := runCLI(t, "select", "-i", input, "-o", a, "3", "-o", b, "4")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "exceed available records")
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
}

func TestSelect_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeLines(t, dir, "data.txt", numbered("line", 5))

	code, _, _ := runCLI(t, "select", "-o", filepath.Join(dir, "a.txt"), "3")
	assert.Equal(t, exitUsage, code, "missing -i")

	code, _, _ = runCLI(t, "select", "-i", input, "-o", filepath.Join(dir, "a.txt"))
	assert.Equal(t, exitUsage, code, "missing size")

	code, _, _ = runCLI(t, "select", "-i", input, "-o", filepath.Join(dir, "a.txt"), "zero")
	assert.Equal(t, exitUsage, code, "bad size")
}

func TestLoad_AndSplitFromKV(t *testing.T) {
	srv, _ := flexgptest.StartEmbeddedNATS(t)

	dir := t.TempDir()
	records := writeLines(t, dir, "records.tsv", []string{
		"t1\tA\t1990",
		"t2\tA\t1990",
		"t3\tB\t2000",
		"",
		"t4\tB\t2000",
		"t5\tC\t0",
	})

	code, stdout, stderr := runCLI(t, "load", "-i", records, "-kv", srv.ClientURL(), "-bucket", "tracks")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "loaded 5 records into tracks")

	input := writeLines(t, dir, "ids.txt", []string{"t1", "t2", "t3", "t4", "t5"})
	splitOut := filepath.Join(dir, "a.txt")
	restOut := filepath.Join(dir, "b.txt")
	code, stdout, stderr = runCLI(t, "split", "-kv", srv.ClientURL(), "-bucket", "tracks", "-r", "1",
		input, "0.5", splitOut, restOut)
	require.Equal(t, exitOK, code, stderr)
	// t5 is stored with an unknown year and is excluded like a missing record.
	assert.Contains(t, stdout, "excluded 1")

	split := readLines(t, splitOut)
	rest := readLines(t, restOut)
	require.Len(t, split, 2)
	require.Len(t, rest, 2)
	// Each group stays on one side.
	if split[0] == "t1" {
		assert.Equal(t, []string{"t1", "t2"}, split)
		assert.Equal(t, []string{"t3", "t4"}, rest)
	} else {
		assert.Equal(t, []string{"t3", "t4"}, split)
		assert.Equal(t, []string{"t1", "t2"}, rest)
	}
}

func TestParseRecords(t *testing.T) {
	records, err := parseRecords([]string{"t1\tA\t1.5", "  ", "t2\tB\t2"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].GroupID)
	assert.InDelta(t, 1.5, records[0].SortKey, 1e-9)

	_, err = parseRecords([]string{"t1\tA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = parseRecords([]string{"t1\tA\tlate"})
	require.Error(t, err)
}
