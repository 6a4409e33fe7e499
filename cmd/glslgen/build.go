package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gogpu/shadergen"
	"github.com/gogpu/shadergen/document"
	"github.com/gogpu/shadergen/glsl"
)

func newBuildCmd(a *app) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "build [options] <input.yaml>",
		Short: "Compile a shader document to GLSL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return a.build(args[0], cfg)
		},
	}
	bindBuildFlags(cmd.Flags(), &flags)
	return cmd
}

// build compiles the document at path and writes the requested outputs.
func (a *app) build(path string, cfg buildConfig) error {
	a.logger.Debug("decoding document", "path", path)
	shader, err := document.Load(path)
	if err != nil {
		return err
	}

	opts := cfg.compileOptions()
	a.logger.Debug("compiling", "stage", shader.Stage.String(),
		"validate", opts.Validate, "hoist", opts.HoistCommon)
	source, info, err := shadergen.CompileWithOptions(shader, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Info("compiled shader", "path", path, "size", humanize.Bytes(uint64(len(source))),
		"attributes", len(info.Attributes), "uniforms", len(info.Uniforms), "varyings", len(info.Varyings))

	if err := a.writeOutput(cfg.Output, []byte(source)); err != nil {
		return err
	}
	if cfg.Info != "" {
		if err := a.writeInfo(cfg.Info, info); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes data to path, or to standard output when path is
// empty or "-".
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	a.logger.Info("wrote file", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func (a *app) writeInfo(path string, info glsl.TranslationInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding translation info: %w", err)
	}
	data = append(data, '\n')
	return a.writeOutput(path, data)
}
