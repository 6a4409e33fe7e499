package shadergen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/shadergen/builder"
	"github.com/gogpu/shadergen/ir"
)

// buildQuad writes a textured-quad vertex shader.
func buildQuad(b *builder.ShaderBuilder) error {
	pos := builder.Attribute[builder.Vec2](b, "position", ir.PrecisionHigh)
	uv := builder.Varying[builder.Vec2](b, "uv", ir.PrecisionMedium)
	return b.Main(func(s *builder.Scope) error {
		if err := uv.Set(pos.MulF(0.5).AddF(0.5)); err != nil {
			return err
		}
		return b.Position().Set(pos.ConcatF2(0, 1))
	})
}

func TestBuildSource(t *testing.T) {
	source, info, err := BuildSource(ir.StageVertex, buildQuad)
	if err != nil {
		t.Fatalf("BuildSource() error = %v", err)
	}

	want := "#version 100\n\n" +
		"attribute highp vec2 position;\n" +
		"varying mediump vec2 uv;\n" +
		"void main() {\n" +
		"    uv = ((position*0.5)+0.5);\n" +
		"    gl_Position = vec4(position, 0.0, 1.0);\n" +
		"}\n"
	if source != want {
		t.Errorf("source =\n%s\nwant:\n%s", source, want)
	}
	if len(info.Attributes) != 1 || len(info.Varyings) != 1 || len(info.Uniforms) != 0 {
		t.Errorf("info = %+v", info)
	}
	if _, ok := info.Lookup("uv"); !ok {
		t.Error("Lookup(uv) found nothing")
	}
}

func TestBuildSourceWithOptions_Debug(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	source, _, err := BuildSourceWithOptions(ir.StageVertex, buildQuad, opts)
	if err != nil {
		t.Fatalf("BuildSourceWithOptions() error = %v", err)
	}
	if !strings.HasPrefix(source, "#version 100\n\n// vertex shader\n") {
		t.Errorf("source does not start with a debug header:\n%s", source)
	}
}

func TestBuildSource_BuildError(t *testing.T) {
	sentinel := errors.New("boom")
	_, _, err := BuildSource(ir.StageFragment, func(*builder.ShaderBuilder) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("BuildSource() error = %v, want wrapped sentinel", err)
	}

	// main is never defined.
	_, _, err = BuildSource(ir.StageFragment, func(b *builder.ShaderBuilder) error {
		builder.Uniform[builder.Float](b, "a", ir.PrecisionDefault)
		return nil
	})
	if err == nil {
		t.Error("BuildSource() accepted a shader without main")
	}
}

func TestMustBuildSource(t *testing.T) {
	if got := MustBuildSource(ir.StageVertex, buildQuad); !strings.Contains(got, "gl_Position") {
		t.Errorf("MustBuildSource() = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustBuildSource() did not panic")
		}
	}()
	MustBuildSource(ir.StageVertex, func(*builder.ShaderBuilder) error {
		return errors.New("boom")
	})
}

func TestCompile(t *testing.T) {
	shader := &ir.Shader{
		Version: ir.Version100,
		Stage:   ir.StageFragment,
		Statements: ir.Block{
			ir.StmtFunction{Name: "main", Result: ir.VoidType{}, Body: ir.Block{
				ir.StmtAssign{Name: "gl_FragColor", Op: ir.AssignSet, Value: ir.Call("vec4", ir.Float(1))},
			}},
		},
	}
	source, err := Compile(shader)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(source, "    gl_FragColor = vec4(1.0);\n") {
		t.Errorf("source =\n%s", source)
	}

	// Writing a read-only built-in fails validation.
	shader.Statements = ir.Block{
		ir.StmtFunction{Name: "main", Result: ir.VoidType{}, Body: ir.Block{
			ir.StmtAssign{Name: "gl_FragCoord", Op: ir.AssignSet, Value: ir.Call("vec4", ir.Float(1))},
		}},
	}
	if _, err := Compile(shader); err == nil {
		t.Error("Compile() accepted an assignment to gl_FragCoord")
	}
	errs, err := Validate(shader)
	if err != nil || len(errs) == 0 {
		t.Errorf("Validate() = %v, %v; want validation errors", errs, err)
	}
}

func TestCompileDocument(t *testing.T) {
	doc := []byte(`
stage: vertex
statements:
  - uniform: k
    type: float
  - function: main
    body:
      - declare: d
        type: float
        init: {op: '*', left: {op: '+', left: k, right: 1.0}, right: {op: '+', left: k, right: 1.0}}
`)
	plain, _, err := CompileDocument(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("CompileDocument() error = %v", err)
	}
	if !strings.Contains(plain, "    float d = ((k+1.0)*(k+1.0));\n") {
		t.Errorf("plain source =\n%s", plain)
	}

	opts := DefaultOptions()
	opts.HoistCommon = true
	hoisted, _, err := CompileDocument(doc, opts)
	if err != nil {
		t.Fatalf("CompileDocument(hoist) error = %v", err)
	}
	if strings.Count(hoisted, "(k+1.0)") != 1 {
		t.Errorf("hoisted source repeats (k+1.0):\n%s", hoisted)
	}

	if _, _, err := CompileDocument([]byte("stage: tessellation\n"), DefaultOptions()); err == nil {
		t.Error("CompileDocument() accepted an unknown stage")
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clear.yaml")
	doc := "stage: fragment\nstatements:\n  - function: main\n    body:\n" +
		"      - assign: gl_FragColor\n        value: {call: vec4, args: [0.0]}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	source, _, err := LoadDocument(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	want := "#version 100\n\nvoid main() {\n    gl_FragColor = vec4(0.0);\n}\n"
	if source != want {
		t.Errorf("source =\n%s\nwant:\n%s", source, want)
	}
}

func TestExtractCommonExpressions(t *testing.T) {
	env := ir.Vars{"a": ir.FloatType{}, "b": ir.FloatType{}}
	sum := func() ir.Expression { return ir.Binary(ir.BinaryAdd, ir.Var("a"), ir.Var("b")) }

	temps, out, err := ExtractCommonExpressions(env, ir.Binary(ir.BinaryMultiply, sum(), sum()))
	if err != nil {
		t.Fatalf("ExtractCommonExpressions() error = %v", err)
	}
	if len(temps) != 1 {
		t.Fatalf("got %d temporaries, want 1", len(temps))
	}
	decl, ok := temps[0].(ir.StmtDeclare)
	if !ok {
		t.Fatalf("temporary is %T", temps[0])
	}
	if !ir.Equal(out, ir.Binary(ir.BinaryMultiply, ir.Var(decl.Name), ir.Var(decl.Name))) {
		t.Errorf("output = %#v", out)
	}

	if _, _, err := ExtractCommonExpressions(ir.Vars{}, ir.Binary(ir.BinaryMultiply, sum(), sum())); err == nil {
		t.Error("ExtractCommonExpressions() typed an unknown variable")
	}
}
