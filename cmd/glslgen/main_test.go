package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/gogpu/shadergen/glsl"
)

const testDocument = `stage: vertex
statements:
  - uniform: k
    type: float
  - attribute: position
    type: highp vec3
  - function: main
    body:
      - declare: d
        type: float
        init: {op: '*', left: {op: '+', left: k, right: 1.0}, right: {op: '+', left: k, right: 1.0}}
      - assign: gl_Position
        value: {call: vec4, args: [position, d]}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}

	code, out, _ := execute("version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "glslgen version "+version+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestBuildFlagsExist(t *testing.T) {
	cmd := newBuildCmd(&app{})
	for _, name := range []string{"output", "info", "hoist", "no-validate", "debug", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
	if cmd.Flags().ShorthandLookup("o") == nil {
		t.Error("expected shorthand -o")
	}
}

func TestBuild_Stdout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shader.yaml", testDocument)

	code, out, errOut := execute("build", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	want := "#version 100\n\n" +
		"uniform float k;\n" +
		"attribute highp vec3 position;\n" +
		"void main() {\n" +
		"    float d = ((k+1.0)*(k+1.0));\n" +
		"    gl_Position = vec4(position, d);\n" +
		"}\n"
	if out != want {
		t.Errorf("output =\n%s\nwant:\n%s", out, want)
	}
	if errOut != "" {
		t.Errorf("unexpected stderr at the default log level: %q", errOut)
	}
}

func TestBuild_OutputAndInfo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shader.yaml", testDocument)
	outPath := filepath.Join(dir, "shader.glsl")
	infoPath := filepath.Join(dir, "info.json")

	code, out, errOut := execute("build", "-o", outPath, "--info", infoPath, "--hoist", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if out != "" {
		t.Errorf("stdout should be empty, got %q", out)
	}

	source, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(source), "(k+1.0)") != 1 {
		t.Errorf("--hoist did not hoist:\n%s", source)
	}

	data, err := os.ReadFile(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	var info glsl.TranslationInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("info is not valid JSON: %v", err)
	}
	if info.Version != "100" || len(info.Uniforms) != 1 || len(info.Attributes) != 1 {
		t.Errorf("info = %+v", info)
	}
	if info.Attributes[0].Precision != "highp" || info.Uniforms[0].Name != "k" {
		t.Errorf("bindings = %+v %+v", info.Attributes, info.Uniforms)
	}
	if !strings.Contains(string(data), `"host": "[3]float32"`) {
		t.Errorf("info does not carry host types:\n%s", data)
	}
}

func TestBuild_Config(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shader.yaml", testDocument)
	cfgPath := writeFile(t, dir, "glslgen.yaml", "hoist: true\ndebug: true\n")

	code, out, errOut := execute("build", "--config", cfgPath, path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	if !strings.Contains(out, "// vertex shader\n") || strings.Count(out, "(k+1.0)") != 1 {
		t.Errorf("config settings not applied:\n%s", out)
	}

	// Flags win over the config file.
	code, out, _ = execute("build", "--config", cfgPath, "--hoist=false", path)
	if code != 0 || strings.Count(out, "(k+1.0)") != 2 {
		t.Errorf("--hoist=false did not override config (code %d):\n%s", code, out)
	}

	bad := writeFile(t, dir, "bad.yaml", "hoist: true\nlanguage: wgsl\n")
	code, _, errOut = execute("build", "--config", bad, path)
	if code == 0 || !strings.Contains(errOut, "language") {
		t.Errorf("unknown config key accepted (code %d): %s", code, errOut)
	}
}

func TestBuild_Validation(t *testing.T) {
	dir := t.TempDir()
	// Assigning a float to gl_Position is a shape mismatch.
	path := writeFile(t, dir, "bad.yaml", "stage: vertex\nstatements:\n  - function: main\n    body:\n"+
		"      - assign: gl_Position\n        value: 1.0\n")

	code, out, errOut := execute("build", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if out != "" {
		t.Errorf("partial output written: %q", out)
	}
	if !strings.Contains(errOut, "glslgen: error:") || !strings.Contains(errOut, "gl_Position") {
		t.Errorf("stderr = %q", errOut)
	}

	code, out, errOut = execute("build", "--no-validate", path)
	if code != 0 {
		t.Fatalf("--no-validate failed: %s", errOut)
	}
	if !strings.Contains(out, "gl_Position = 1.0;") {
		t.Errorf("output = %q", out)
	}
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", []string{"build"}, "accepts 1 arg"},
		{"unreadable input", []string{"build", filepath.Join(dir, "missing.yaml")}, "missing.yaml"},
		{"bad document", []string{"build", writeFile(t, dir, "x.yaml", "stage: compute\n")}, "unknown stage"},
		{"bad log level", []string{"--log-level", "loud", "version"}, "unknown log level"},
		{"bad log format", []string{"--log-format", "xml", "version"}, "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.want)
			}
		})
	}
}

func TestBuild_Logging(t *testing.T) {
	path := writeFile(t, t.TempDir(), "shader.yaml", testDocument)

	code, _, errOut := execute("--log-level", "debug", "--log-format", "json", "build", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected debug and info records, got %q", errOut)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &record); err != nil {
		t.Fatalf("log record is not JSON: %v", err)
	}
	if record["msg"] != "compiled shader" || record["uniforms"] != float64(1) {
		t.Errorf("record = %v", record)
	}
}

func TestSanitize(t *testing.T) {
	code, out, errOut := execute("sanitize", "position", "gl_Position", "float", "my var", "2d")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, errOut)
	}
	want := "position\n_gl_Position\n_float\nmy20var\n_2d\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	if code, _, _ := execute("sanitize"); code != 1 {
		t.Errorf("sanitize without names exit code = %d, want 1", code)
	}
}

func TestLogLevelFlag(t *testing.T) {
	var l logLevel
	for _, name := range []string{"debug", "INFO", "warn", "error"} {
		if err := l.Set(name); err != nil {
			t.Errorf("Set(%q) error = %v", name, err)
		}
		if l.String() != strings.ToLower(name) {
			t.Errorf("String() = %q after Set(%q)", l.String(), name)
		}
	}
	if l.Type() != "level" {
		t.Errorf("Type() = %q", l.Type())
	}
}
