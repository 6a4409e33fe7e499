// Package snapshot_test provides golden snapshot tests for the GLSL writer.
//
// For each YAML shader document in testdata/in/, the test compiles the
// shader twice, once as written and once with common subexpressions
// hoisted, and compares the output to golden files stored in
// testdata/golden/{glsl,hoisted}/.
//
// Hoisted temporaries are named after expression hashes, so their names
// are renumbered tmp0, tmp1, ... in order of appearance before comparison.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/gogpu/shadergen/document"
	"github.com/gogpu/shadergen/glsl"
	"github.com/gogpu/shadergen/ir"
)

// ---------------------------------------------------------------------------
// Test Runner
// ---------------------------------------------------------------------------

// shaderFile represents an input shader document loaded from disk.
type shaderFile struct {
	name   string // base name without extension (e.g., "lighting")
	source []byte // YAML document
}

// TestSnapshots is the main golden snapshot test. It loads all documents,
// compiles each with and without hoisting, and compares with golden files.
func TestSnapshots(t *testing.T) {
	shaders := loadInputShaders(t, "testdata/in")
	if len(shaders) == 0 {
		t.Fatal("no input shaders found in testdata/in/")
	}

	for i := range shaders {
		shader := &shaders[i]
		t.Run(shader.name, func(t *testing.T) {
			module := decode(t, shader.name, shader.source)

			t.Run("glsl", func(t *testing.T) {
				code := compileGLSL(t, module, false)
				compareGolden(t, filepath.Join("testdata", "golden", "glsl", shader.name+".glsl"), code)
			})

			t.Run("hoisted", func(t *testing.T) {
				code := normalizeTemporaries(compileGLSL(t, module, true))
				compareGolden(t, filepath.Join("testdata", "golden", "hoisted", shader.name+".glsl"), code)
			})
		})
	}
}

// ---------------------------------------------------------------------------
// Shader Loading
// ---------------------------------------------------------------------------

// loadInputShaders reads all .yaml files from the given directory.
func loadInputShaders(t *testing.T, dir string) []shaderFile {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var shaders []shaderFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			t.Fatalf("read shader %q: %v", entry.Name(), readErr)
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		shaders = append(shaders, shaderFile{name: name, source: data})
	}

	// Sort for deterministic test order
	sort.Slice(shaders, func(i, j int) bool {
		return shaders[i].name < shaders[j].name
	})

	return shaders
}

// ---------------------------------------------------------------------------
// Compilation Helpers
// ---------------------------------------------------------------------------

// decode parses a YAML document into a shader.
func decode(t *testing.T, name string, source []byte) *ir.Shader {
	t.Helper()

	shader, err := document.Decode(source)
	if err != nil {
		t.Fatalf("[%s] decode failed: %v", name, err)
	}
	return shader
}

// compileGLSL generates validated GLSL source.
func compileGLSL(t *testing.T, shader *ir.Shader, hoist bool) string {
	t.Helper()

	opts := glsl.DefaultOptions()
	opts.HoistCommon = hoist
	code, _, err := glsl.Compile(shader, opts)
	if err != nil {
		t.Fatalf("GLSL compile failed: %v", err)
	}
	return code
}

var temporaryName = regexp.MustCompile(`\bvar[0-9a-f]+(_[0-9]+)?\b`)

// normalizeTemporaries renames hoisted temporaries to tmp0, tmp1, ... in
// order of first appearance.
func normalizeTemporaries(code string) string {
	names := make(map[string]string)
	return temporaryName.ReplaceAllStringFunc(code, func(name string) string {
		if renamed, ok := names[name]; ok {
			return renamed
		}
		renamed := fmt.Sprintf("tmp%d", len(names))
		names[name] = renamed
		return renamed
	})
}

func TestNormalizeTemporaries(t *testing.T) {
	got := normalizeTemporaries("float var3 = a; float var3f_2 = var3; float variance = var3f_2;")
	want := "float tmp0 = a; float tmp1 = tmp0; float variance = tmp1;"
	if got != want {
		t.Errorf("normalizeTemporaries() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// Golden File Comparison
// ---------------------------------------------------------------------------

// compareGolden compares actual output with the golden file at path.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Normalize line endings for cross-platform comparison.
	// Git may convert \n to \r\n on Windows checkout.
	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")

	if expectedStr != actualStr {
		diff := diffStrings(expectedStr, actualStr)
		t.Errorf("output differs from golden %s:\n%s", path, diff)
	}
}

// diffStrings produces a simple line-by-line diff showing the first difference
// and surrounding context.
func diffStrings(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var sb strings.Builder
	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}

	const contextLines = 3
	firstDiff := -1
	for i := 0; i < maxLines; i++ {
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			firstDiff = i
			break
		}
	}

	if firstDiff < 0 {
		return "(no difference found)"
	}

	fmt.Fprintf(&sb, "first difference at line %d:\n", firstDiff+1)
	fmt.Fprintf(&sb, "  expected lines: %d\n", len(expectedLines))
	fmt.Fprintf(&sb, "  actual lines:   %d\n\n", len(actualLines))

	// Show context around the first difference
	start := firstDiff - contextLines
	if start < 0 {
		start = 0
	}
	end := firstDiff + contextLines + 1
	if end > maxLines {
		end = maxLines
	}

	for i := start; i < end; i++ {
		prefix := " "
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			prefix = "!"
		}
		fmt.Fprintf(&sb, "%s %4d expected: %s\n", prefix, i+1, truncate(eLine, 120))
		if eLine != aLine {
			fmt.Fprintf(&sb, "%s %4d actual:   %s\n", prefix, i+1, truncate(aLine, 120))
		}
	}

	return sb.String()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
