package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yml "gopkg.in/yaml.v2"
)

const testSuite = `
- Name: coherent
  SamplingRate: 1000
  Length: 1000
  StepPhase: 0
- Name: shifted
  SamplingRate: 1000
  Length: 1000
  StepPhase: 3.141592653589793
  Waveform: triangle
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pjvsgen.yml", "log_level: debug\noutput: yaml\nsuite: runs.yml\n")
	t.Setenv("PJVSGEN_OUT_DIR", "/tmp/pjvs")
	t.Setenv("PJVSGEN_PRETTY", "true")

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "yaml", c.Output)
	assert.Equal(t, "runs.yml", c.Suite)
	assert.Equal(t, "/tmp/pjvs", c.OutDir)
	assert.True(t, c.Pretty)
}

func TestRunWritesCSVAndSummary(t *testing.T) {
	dir := t.TempDir()
	c := Config{
		Suite:  writeFile(t, dir, "suite.yml", testSuite),
		Output: "csv",
		OutDir: filepath.Join(dir, "out"),
	}

	var stdout bytes.Buffer
	require.NoError(t, run(c, zerolog.Nop(), &stdout))

	var summaries []runSummary
	require.NoError(t, yml.Unmarshal(stdout.Bytes(), &summaries))
	require.Len(t, summaries, 2)

	assert.Equal(t, "coherent", summaries[0].Name)
	assert.Equal(t, "sine", summaries[0].Waveform)
	assert.Equal(t, 10, summaries[0].UsedSteps)
	assert.Equal(t, []int{1960, 5131, 6342, 5131, 1960, -1960, -5131, -6342, -5131, -1960}, summaries[0].QuantumNumbers)
	assert.Equal(t, "triangle", summaries[1].Waveform)
	assert.Equal(t, 11, summaries[1].UsedSteps)

	f, err := os.Open(filepath.Join(dir, "out", "coherent.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1001)
	assert.Equal(t, []string{"time", "voltage", "reference"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
}

func TestRunReportsInvalidRuns(t *testing.T) {
	dir := t.TempDir()
	suite := testSuite + "- Name: broken\n  Amplitude: -1\n"
	c := Config{
		Suite:  writeFile(t, dir, "suite.yml", suite),
		Output: "none",
	}

	var stdout bytes.Buffer
	err := run(c, zerolog.Nop(), &stdout)
	assert.EqualError(t, err, "1 of 3 runs failed")
	assert.Empty(t, stdout.String())
}

func TestRunRejectsEmptySuite(t *testing.T) {
	dir := t.TempDir()
	c := Config{Suite: writeFile(t, dir, "suite.yml", ""), Output: "none"}
	assert.Error(t, run(c, zerolog.Nop(), &bytes.Buffer{}))
}
