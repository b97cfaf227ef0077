package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// Config is the pjvsgen configuration, read from ConfigFileName and PJVSGEN_* variables.
type Config struct {
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	Pretty   bool   `koanf:"pretty" yaml:"pretty"`

	// Suite is the path of the yaml file listing the runs to generate
	Suite string `koanf:"suite" yaml:"suite"`

	// Output is one of csv, yaml or none. csv writes OutDir/<run>.csv and
	// prints the yaml summary, yaml only prints the summary.
	Output string `koanf:"output" yaml:"output"`
	OutDir string `koanf:"out_dir" yaml:"out_dir"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Suite:    "suite.yml",
		Output:   "csv",
		OutDir:   ".",
	}
}

// loadConfig layers the defaults, the config file (if it exists) and the environment.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PJVSGEN_"))
	}
	if err := k.Load(env.Provider("PJVSGEN_", ".", envKey), nil); err != nil {
		return Config{}, err
	}

	c := Config{}
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
