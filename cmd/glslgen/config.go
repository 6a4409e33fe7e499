package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergen"
)

// buildConfig holds the build settings. It is filled from the optional
// --config file first, then from flags given on the command line.
type buildConfig struct {
	Output   string `yaml:"output"`
	Info     string `yaml:"info"`
	Hoist    bool   `yaml:"hoist"`
	Validate bool   `yaml:"validate"`
	Debug    bool   `yaml:"debug"`
}

func defaultBuildConfig() buildConfig {
	opts := shadergen.DefaultOptions()
	return buildConfig{
		Hoist:    opts.HoistCommon,
		Validate: opts.Validate,
		Debug:    opts.Debug,
	}
}

// compileOptions converts the configuration to compiler options.
func (c buildConfig) compileOptions() shadergen.CompileOptions {
	return shadergen.CompileOptions{
		Validate:    c.Validate,
		HoistCommon: c.Hoist,
		Debug:       c.Debug,
	}
}

// buildFlags are the raw flag values; noValidate inverts Validate.
type buildFlags struct {
	config     string
	output     string
	info       string
	hoist      bool
	noValidate bool
	debug      bool
}

func bindBuildFlags(fs *pflag.FlagSet, f *buildFlags) {
	fs.StringVar(&f.config, "config", "", "YAML file with build settings")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.info, "info", "", "write translation info as JSON to this file ('-' for stdout)")
	fs.BoolVar(&f.hoist, "hoist", false, "hoist repeated subexpressions into temporaries")
	fs.BoolVar(&f.noValidate, "no-validate", false, "skip IR validation")
	fs.BoolVar(&f.debug, "debug", false, "add a header comment naming the shader stage")
}

// resolve merges the config file named by --config with the flags that
// were set explicitly.
func (f *buildFlags) resolve(fs *pflag.FlagSet) (buildConfig, error) {
	cfg := defaultBuildConfig()
	if f.config != "" {
		loaded, err := loadBuildConfig(f.config)
		if err != nil {
			return buildConfig{}, err
		}
		cfg = loaded
	}

	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("info") {
		cfg.Info = f.info
	}
	if fs.Changed("hoist") {
		cfg.Hoist = f.hoist
	}
	if fs.Changed("no-validate") {
		cfg.Validate = !f.noValidate
	}
	if fs.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg, nil
}

// loadBuildConfig reads a YAML build configuration. Keys left out keep
// their default values.
func loadBuildConfig(path string) (buildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return buildConfig{}, fmt.Errorf("config: %w", err)
	}

	cfg := defaultBuildConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return buildConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
