package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/synaptecltd/pjvs"
	"github.com/synaptecltd/pjvs/logger"
	"github.com/synaptecltd/pjvs/waveform"
	yml "gopkg.in/yaml.v2"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "1"

	// ConfigFileName is what it sounds like
	ConfigFileName = "pjvsgen.yml"
)

func root() {
	str := `pjvsgen generates the sampled output of a Programmable Josephson Voltage
Standard approximating a reference waveform, for testing digitizer sampling
algorithms.

Usage:
	pjvsgen <command>

Commands:
	run
	help
	mkconf
	conf
	mksuite
	version`
	fmt.Println(str)
}

func help() {
	str := `pjvsgen reads its settings from pjvsgen.yml and PJVSGEN_* environment
variables (PJVSGEN_LOG_LEVEL, PJVSGEN_PRETTY, PJVSGEN_SUITE, PJVSGEN_OUTPUT,
PJVSGEN_OUT_DIR).  mkconf writes the defaults to pjvsgen.yml.

The suite file is a yaml list of runs.  Every field is optional:

- Name: sine-coherent      # unnamed runs get a UUID
  SamplingRate: 1000       # Hz, ignored when Times is given
  Length: 1000
  Times: [0, 0.001, ...]   # explicit, possibly irregular, sample times
  Frequency: 1             # reference frequency, Hz
  Amplitude: 1             # V
  Phase: 0                 # rad
  StepFrequency: 10        # PJVS steps per second
  StepPhase: -0.3142       # rad
  MicrowaveFrequency: 75.0e9
  Waveform: sine           # ` + strings.Join(waveform.Names(), ", ") + `
  TimingJitter: 0          # s, Gaussian clock jitter on generated times
  JitterSeed: 0
  FastReference: false

Output "csv" writes <out_dir>/<name>.csv with time, voltage and reference
columns and prints a yaml summary; "yaml" prints the summary only; "none"
only logs.`
	fmt.Println(str)
}

func mkconf(c Config) error {
	f, err := os.Create(ConfigFileName)
	if err != nil {
		return err
	}
	defer f.Close()
	return yml.NewEncoder(f).Encode(c)
}

func printconf(c Config) error {
	return yml.NewEncoder(os.Stdout).Encode(c)
}

// mksuite prints a suite with one run per waveform type.
func mksuite() error {
	var suite pjvs.Suite
	for _, name := range waveform.Names() {
		typ, _ := waveform.Parse(name)
		suite = append(suite, pjvs.Run{
			Name: name,
			Params: pjvs.Params{
				SamplingRate:  pjvs.Ptr(1000.0),
				Length:        pjvs.Ptr(1000),
				StepFrequency: pjvs.Ptr(10.0),
				StepPhase:     pjvs.Ptr(0.0),
				Waveform:      &typ,
			},
		})
	}
	return yml.NewEncoder(os.Stdout).Encode(suite)
}

func pversion() {
	fmt.Printf("pjvsgen version %v\n", Version)
}

// run generates every run of the suite. Failed runs are logged and counted;
// the error reports how many failed.
func run(c Config, log zerolog.Logger, stdout io.Writer) error {
	f, err := os.Open(c.Suite)
	if err != nil {
		return err
	}
	defer f.Close()
	suite, err := pjvs.LoadSuite(f)
	if err != nil {
		return fmt.Errorf("loading suite %s: %w", c.Suite, err)
	}
	if len(suite) == 0 {
		return errors.New("suite has no runs")
	}

	var summaries []runSummary
	failed := 0
	for _, r := range suite {
		setup, err := r.Resolve()
		if err != nil {
			log.Error().Err(err).Str("run", r.Name).Msg("invalid run")
			failed++
			continue
		}
		res, err := setup.Generate()
		if err != nil {
			log.Error().Err(err).Str("run", r.Name).Msg("generation failed")
			failed++
			continue
		}
		log.Info().
			Str("run", r.Name).
			Stringer("waveform", setup.Shape.Type).
			Int("samples", len(res.Times)).
			Int("used_steps", len(res.Steps)).
			Int("empty_steps", res.Diagnostics.EmptySteps).
			Float64("vs", res.VoltageQuantum).
			Msg("generated")

		if c.Output == "csv" {
			path, err := writeCSVFile(c.OutDir, r.Name, res)
			if err != nil {
				log.Error().Err(err).Str("run", r.Name).Msg("writing csv")
				failed++
				continue
			}
			log.Debug().Str("run", r.Name).Str("path", path).Msg("wrote csv")
		}
		summaries = append(summaries, summarise(r, setup, res))
	}

	if c.Output == "csv" || c.Output == "yaml" {
		if err := yml.NewEncoder(stdout).Encode(summaries); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d runs failed", failed, len(suite))
	}
	return nil
}

func main() {
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	c, err := loadConfig(ConfigFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: c.LogLevel, Pretty: c.Pretty})

	switch strings.ToLower(args[1]) {
	case "help":
		help()
	case "mkconf":
		err = mkconf(c)
	case "conf":
		err = printconf(c)
	case "mksuite":
		err = mksuite()
	case "run":
		err = run(c, log, os.Stdout)
	case "version":
		pversion()
	default:
		err = fmt.Errorf("unknown command %q", args[1])
	}
	if err != nil {
		log.Fatal().Err(err).Msg(args[1])
	}
}
