package pjvs

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// Run is a named PJVS request.
type Run struct {
	Name   string `yaml:"Name"`
	Params `yaml:",inline"`
}

// Suite is an ordered collection of runs, typically loaded from a yaml file.
type Suite []Run

// Unmarshals a yaml list of runs into the suite. Each entry holds the Params
// fields plus an optional Name; unnamed runs are given a UUID.
func (s *Suite) UnmarshalYAML(unmarshal func(interface{}) error) error {
	// Temporary structure to unmarshal the yaml file
	var entries []map[string]interface{}
	if err := unmarshal(&entries); err != nil {
		return err
	}

	for i, entry := range entries {
		run, err := runFromYamlEntry(entry)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		*s = append(*s, run)
	}

	return nil
}

// Add appends params to the suite under a new UUID and returns the UUID.
func (s *Suite) Add(params Params) uuid.UUID {
	id := uuid.New()
	*s = append(*s, Run{Name: id.String(), Params: params})
	return id
}

// LoadSuite reads a yaml suite.
func LoadSuite(r io.Reader) (Suite, error) {
	var s Suite
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return s, nil
}

// Returns a decodeHook function that converts waveform names into
// waveform.Type values. This supports configuration solutions like
// knadh/koanf and spf13/viper that use mapstructure to unmarshal yaml files.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(), // parses waveform names
	)
}

// DecodeParams uses mapstructure to decode a yaml map into Params. Unknown
// keys are rejected.
func DecodeParams(m map[string]interface{}) (Params, error) {
	var params Params
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook:  DecodeHook(),
		ErrorUnused: true,
		TagName:     "yaml",
		Result:      &params,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return Params{}, err
	}
	if err := decoder.Decode(m); err != nil {
		return Params{}, err
	}
	return params, nil
}

// Creates a run from a yaml entry, taking the name from the "Name" (or "name") field.
func runFromYamlEntry(entry map[string]interface{}) (Run, error) {
	fields := make(map[string]interface{}, len(entry))
	var name string
	for key, value := range entry {
		// must check both Name and name because some yaml writers convert to lower case and some don't
		if key == "Name" || key == "name" {
			s, ok := value.(string)
			if !ok {
				return Run{}, fmt.Errorf("run name must be a string, got %T", value)
			}
			name = s
			continue
		}
		fields[key] = value
	}

	params, err := DecodeParams(fields)
	if err != nil {
		return Run{}, err
	}
	if name == "" {
		name = uuid.NewString()
	}
	return Run{Name: name, Params: params}, nil
}
