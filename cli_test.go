package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEvaluate(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := evaluateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommandSingleClient(t *testing.T) {
	out, err := runEvaluate(t,
		"--client", seedClientFile,
		"--guidelines", "data/medicalGuidelines.yaml",
		"--id", "2")
	require.NoError(t, err)

	var report HealthReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Jane Smith", report.ClientName)
	assert.Equal(t, StatusSeriousIssue, report.HealthMetrics["CholesterolTotal"].Status)
}

func TestEvaluateCommandAllClients(t *testing.T) {
	out, err := runEvaluate(t, "--client", seedClientFile, "--guidelines", seedGuidelineFile, "--json")
	require.NoError(t, err)

	var reports []HealthReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Len(t, reports, 3)
}

func TestEvaluateCommandClientDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"id": "solo",
		"name": "Solo Client",
		"medicalData": {"bloodwork": {"bloodSugar": 140}}
	}`), 0644))

	out, err := runEvaluate(t, "--client", path, "--guidelines", seedGuidelineFile)
	require.NoError(t, err)

	var report HealthReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "solo", report.ClientId)
	assert.Equal(t, StatusSeriousIssue, report.HealthMetrics["BloodSugar"].Status)
}

func TestEvaluateCommandErrors(t *testing.T) {
	_, err := runEvaluate(t, "--client", seedClientFile, "--guidelines", seedGuidelineFile, "--id", "missing")
	assert.ErrorContains(t, err, "client missing not found")

	_, err = runEvaluate(t, "--client", seedClientFile, "--guidelines", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)

	_, err = runEvaluate(t, "--guidelines", seedGuidelineFile)
	assert.Error(t, err)
}

func TestWriteReportTable(t *testing.T) {
	report, err := Evaluate(seedClient(t, "2"), seedGuidelines(t))
	require.NoError(t, err)

	var out bytes.Buffer
	writeReportTable(&out, report, map[string]int{"2": 51})

	text := out.String()
	assert.Contains(t, text, "Jane Smith (2), age 51")
	assert.Contains(t, text, "BloodPressure")
	assert.Contains(t, text, "150/88")
	assert.Contains(t, text, "Serious Issue")
	assert.Contains(t, text, "Processed or high-sugar diet")
}
