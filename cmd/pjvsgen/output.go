package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/synaptecltd/pjvs"
)

// runSummary is the yaml view of one generated run.
type runSummary struct {
	Name                   string    `yaml:"name"`
	Waveform               string    `yaml:"waveform"`
	Samples                int       `yaml:"samples"`
	UsedSteps              int       `yaml:"used_steps"`
	EmptySteps             int       `yaml:"empty_steps"`
	VoltageQuantum         float64   `yaml:"voltage_quantum"`
	ExpectedSamplesPerStep float64   `yaml:"expected_samples_per_step"`
	MeanSamplesPerStep     float64   `yaml:"mean_samples_per_step"`
	QuantisationRMS        float64   `yaml:"quantisation_rms"`
	QuantumNumbers         []int     `yaml:"quantum_numbers,flow"`
	FirstPeriodVoltages    []float64 `yaml:"first_period_voltages,flow"`
	StepStarts             []int     `yaml:"step_starts,flow"`
}

func summarise(run pjvs.Run, setup *pjvs.Setup, res *pjvs.Result) runSummary {
	return runSummary{
		Name:                   run.Name,
		Waveform:               setup.Shape.Type.String(),
		Samples:                len(res.Times),
		UsedSteps:              len(res.Steps),
		EmptySteps:             res.Diagnostics.EmptySteps,
		VoltageQuantum:         res.VoltageQuantum,
		ExpectedSamplesPerStep: res.Diagnostics.ExpectedSamplesPerStep,
		MeanSamplesPerStep:     res.Diagnostics.MeanSamplesPerStep,
		QuantisationRMS:        res.Diagnostics.QuantisationRMS,
		QuantumNumbers:         res.N,
		FirstPeriodVoltages:    res.Upjvs1Period,
		StepStarts:             res.StepStarts,
	}
}

// writeCSV writes one row per sample: time, PJVS voltage and reference value.
func writeCSV(w io.Writer, res *pjvs.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "voltage", "reference"}); err != nil {
		return err
	}
	for i, t := range res.Times {
		row := []string{formatFloat(t), formatFloat(res.Y[i]), formatFloat(res.Reference[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeCSVFile writes the run to dir/<name>.csv and returns the path.
func writeCSVFile(dir, name string, res *pjvs.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := writeCSV(f, res); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
