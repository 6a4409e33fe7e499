// Command glslgen compiles YAML shader documents to GLSL ES 1.00.
//
// Usage:
//
//	glslgen build [options] <input.yaml>
//	glslgen sanitize <name>...
//	glslgen version
//
// Examples:
//
//	glslgen build shader.yaml                       # Compile to stdout
//	glslgen build -o shader.glsl shader.yaml        # Compile to file
//	glslgen build --hoist --info info.json in.yaml  # Hoist temporaries, dump bindings
//	glslgen sanitize gl_Position 'my var'           # Show GLSL-safe identifiers
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/shadergen/glsl"
)

var version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the exit status.
func run(args []string, out, errOut io.Writer) int {
	rootCmd := newRootCmd(out, errOut)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		printError(errOut, err)
		return 1
	}
	return 0
}

// printError reports err on w, highlighting the prefix when w is a
// terminal.
func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "glslgen: error: ")
	fmt.Fprintln(w, err)
}

// app carries state shared by the subcommands.
type app struct {
	out, errOut io.Writer
	logger      *slog.Logger
	logConfig   logConfig
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:       out,
		errOut:    errOut,
		logConfig: defaultLogConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "glslgen",
		Short: "glslgen compiles YAML shader documents to GLSL ES 1.00",
		Long: `glslgen reads shader documents, checks them against the GLSL ES 1.00
rules and writes the generated source together with the shader's
attribute, uniform and varying bindings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.logConfig, errOut)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	bindLogFlags(rootCmd.PersistentFlags(), &a.logConfig)

	rootCmd.AddCommand(
		newBuildCmd(a),
		newSanitizeCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

func newSanitizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <name>...",
		Short: "Print the GLSL identifier each host name is written as",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				escaped := glsl.Escape(name)
				a.logger.Debug("sanitized identifier", "name", name, "glsl", escaped)
				fmt.Fprintln(a.out, escaped)
			}
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the glslgen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "glslgen version %s\n", version)
		},
	}
}
