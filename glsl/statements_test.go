// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/gogpu/shadergen/ir"
)

func TestGLSL_Declarations(t *testing.T) {
	tests := []struct {
		name string
		decl ir.StmtDeclare
		want string
	}{
		{
			name: "uniform",
			decl: ir.StmtDeclare{Name: "a", Type: ir.FloatType{}, Qualifier: ir.QualifierUniform},
			want: "uniform float a;\n",
		},
		{
			name: "attribute with precision",
			decl: ir.StmtDeclare{Name: "position", Type: ir.VectorType{Size: ir.Vec3, Precision: ir.PrecisionHigh}, Qualifier: ir.QualifierAttribute},
			want: "attribute highp vec3 position;\n",
		},
		{
			name: "invariant varying",
			decl: ir.StmtDeclare{Name: "uv", Type: ir.VectorType{Size: ir.Vec2, Precision: ir.PrecisionMedium}, Qualifier: ir.QualifierVarying, Invariant: true},
			want: "invariant varying mediump vec2 uv;\n",
		},
		{
			name: "const",
			decl: ir.StmtDeclare{Name: "PI", Type: ir.FloatType{}, Qualifier: ir.QualifierConst, Initializer: ir.Float(3.14159)},
			want: "const float PI = 3.14159;\n",
		},
		{
			name: "uniform array",
			decl: ir.StmtDeclare{Name: "weights", Type: ir.ArrayType{Base: ir.FloatType{Precision: ir.PrecisionLow}, Size: 4}, Qualifier: ir.QualifierUniform},
			want: "uniform lowp float weights[4];\n",
		},
		{
			name: "samplers",
			decl: ir.StmtDeclare{Name: "sky", Type: ir.SamplerType{Cube: true}, Qualifier: ir.QualifierUniform},
			want: "uniform samplerCube sky;\n",
		},
		{
			name: "struct uniform",
			decl: ir.StmtDeclare{Name: "light", Type: ir.StructType{Name: "Light"}, Qualifier: ir.QualifierUniform},
			want: "uniform Light light;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWriter(vertexShader(nil), &Options{})
			if err := w.writeStatement(tt.decl); err != nil {
				t.Fatalf("writeStatement() error = %v", err)
			}
			if got := w.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGLSL_DeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		decl ir.StmtDeclare
	}{
		{"uniform initializer", ir.StmtDeclare{Name: "a", Type: ir.FloatType{}, Qualifier: ir.QualifierUniform, Initializer: ir.Float(1)}},
		{"array initializer", ir.StmtDeclare{Name: "a", Type: ir.ArrayType{Base: ir.FloatType{}, Size: 2}, Initializer: ir.Float(1)}},
		{"const without value", ir.StmtDeclare{Name: "a", Type: ir.FloatType{}, Qualifier: ir.QualifierConst}},
		{"local without value", ir.StmtDeclare{Name: "a", Type: ir.FloatType{}}},
		{"empty name", ir.StmtDeclare{Type: ir.FloatType{}, Qualifier: ir.QualifierUniform}},
		{"zero array", ir.StmtDeclare{Name: "a", Type: ir.ArrayType{Base: ir.FloatType{}, Size: 0}, Qualifier: ir.QualifierUniform}},
		{"nested array", ir.StmtDeclare{Name: "a", Type: ir.ArrayType{Base: ir.ArrayType{Base: ir.FloatType{}, Size: 2}, Size: 2}, Qualifier: ir.QualifierUniform}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWriter(vertexShader(nil), &Options{})
			err := w.writeStatement(tt.decl)
			if !ir.IsKind(err, ir.ErrInvalidStatement) {
				t.Errorf("writeStatement() error = %v, want InvalidStatement", err)
			}
		})
	}
}

func TestGLSL_Statements(t *testing.T) {
	shader := fragmentShader(
		ir.Block{
			ir.StmtPrecision{Precision: ir.PrecisionMedium},
			ir.StmtStruct{Name: "Light", Members: []ir.StructMember{
				{Name: "color", Type: ir.VectorType{Size: ir.Vec3}},
				{Name: "weights", Type: ir.ArrayType{Base: ir.FloatType{}, Size: 2}},
			}},
			ir.StmtDeclare{Name: "a", Type: ir.FloatType{}, Qualifier: ir.QualifierUniform},
			ir.StmtFunction{
				Name:   "twice",
				Result: ir.FloatType{},
				Parameters: []ir.FunctionParameter{
					{Name: "x", Type: ir.FloatType{Precision: ir.PrecisionHigh}, Direction: ir.DirectionIn},
					{Name: "y", Type: ir.FloatType{}, Direction: ir.DirectionOut},
				},
				Body: ir.Block{
					ir.StmtAssign{Name: "y", Value: ir.Var("x")},
					ir.StmtControl{Kind: ir.ControlReturn, Value: ir.Binary(ir.BinaryMultiply, ir.Var("x"), ir.Float(2))},
				},
			},
		},
		ir.StmtDeclare{Name: "s", Type: ir.FloatType{}, Initializer: ir.Float(0)},
		ir.StmtFor{
			Init:      ir.StmtDeclare{Name: "i", Type: ir.IntType{}, Initializer: ir.Int(0)},
			Condition: ir.Binary(ir.BinaryLess, ir.Var("i"), ir.Int(4)),
			Increment: ir.StmtAssign{Name: "i", Op: ir.AssignIncrement},
			Body: ir.Block{
				ir.StmtAssign{Name: "s", Op: ir.AssignAdd, Value: ir.Var("a")},
				ir.StmtIf{
					Condition: ir.Binary(ir.BinaryGreater, ir.Var("s"), ir.Float(1)),
					Accept:    ir.Block{ir.StmtControl{Kind: ir.ControlBreak}},
				},
			},
		},
		ir.StmtWhile{
			Condition: ir.Binary(ir.BinaryLess, ir.Var("s"), ir.Float(2)),
			Body:      ir.Block{ir.StmtAssign{Name: "s", Op: ir.AssignMultiply, Value: ir.Float(2)}},
		},
		ir.StmtWhile{
			Condition: ir.Bool(false),
			Body:      ir.Block{ir.StmtControl{Kind: ir.ControlContinue}},
			DoWhile:   true,
		},
		ir.StmtIf{
			Condition: ir.Binary(ir.BinaryLess, ir.Var("s"), ir.Float(0)),
			Accept:    ir.Block{ir.StmtControl{Kind: ir.ControlDiscard}},
			Reject: ir.Block{ir.StmtIf{
				Condition: ir.Binary(ir.BinaryGreater, ir.Var("s"), ir.Float(10)),
				Accept:    ir.Block{ir.StmtAssign{Name: "s", Value: ir.Float(10)}},
				Reject:    ir.Block{ir.StmtBlock{Body: ir.Block{ir.StmtAssign{Name: "s", Op: ir.AssignDecrement}}}},
			}},
		},
		ir.StmtAssign{Name: "gl_FragColor", Value: ir.Call("vec4", ir.Var("s"))},
	)

	got := compileGLSL(t, shader)
	want := `#version 100

precision mediump float;
struct Light {
    vec3 color;
    float weights[2];
};
uniform float a;
float twice(in highp float x, out float y) {
    y = x;
    return (x*2.0);
}
void main() {
    float s = 0.0;
    for (int i = 0; (i<4); i++) {
        s += a;
        if ((s>1.0)) {
            break;
        }
    }
    while ((s<2.0)) {
        s *= 2.0;
    }
    do {
        continue;
    } while (false);
    if ((s<0.0)) {
        discard;
    } else if ((s>10.0)) {
        s = 10.0;
    } else {
        {
            s--;
        }
    }
    gl_FragColor = vec4(s);
}
`
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGLSL_Ifdef(t *testing.T) {
	shader := vertexShader(ir.Block{
		ir.StmtIfdef{
			Identifier: "GL_FRAGMENT_PRECISION_HIGH",
			Accept:     ir.Block{ir.StmtPrecision{Precision: ir.PrecisionHigh}},
			Reject:     ir.Block{ir.StmtPrecision{Precision: ir.PrecisionMedium}},
		},
	}, ir.StmtIfdef{
		Identifier: "DEBUG",
		Accept:     ir.Block{ir.StmtAssign{Name: "gl_PointSize", Value: ir.Float(4)}},
	})

	got := compileGLSL(t, shader)
	want := `#version 100

#ifdef GL_FRAGMENT_PRECISION_HIGH
precision highp float;
#else
precision mediump float;
#endif
void main() {
#ifdef DEBUG
    gl_PointSize = 4.0;
#endif
}
`
	if got != want {
		t.Errorf("Compile() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGLSL_InvariantAndPrecisionTypes(t *testing.T) {
	shader := vertexShader(ir.Block{
		ir.StmtPrecision{Precision: ir.PrecisionLow, Type: ir.IntType{}},
		ir.StmtDeclare{Name: "uv", Type: ir.VectorType{Size: ir.Vec2}, Qualifier: ir.QualifierVarying},
		ir.StmtInvariant{Name: "uv"},
		ir.StmtInvariant{Name: "gl_Position"},
	})

	got := compileGLSL(t, shader)
	mustContainGLSL(t, got, "precision lowp int;\n")
	mustContainGLSL(t, got, "invariant uv;\n")
	mustContainGLSL(t, got, "invariant gl_Position;\n")
}

func TestGLSL_AssignmentErrors(t *testing.T) {
	tests := []struct {
		name   string
		assign ir.StmtAssign
	}{
		{"set without value", ir.StmtAssign{Name: "x"}},
		{"increment with value", ir.StmtAssign{Name: "x", Op: ir.AssignIncrement, Value: ir.Int(1)}},
		{"empty target", ir.StmtAssign{Value: ir.Int(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWriter(vertexShader(nil), &Options{})
			if err := w.writeStatement(tt.assign); !ir.IsKind(err, ir.ErrInvalidStatement) {
				t.Errorf("writeStatement() error = %v, want InvalidStatement", err)
			}
		})
	}
}
