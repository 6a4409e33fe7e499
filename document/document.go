package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergen/ir"
)

type file struct {
	Version    string      `yaml:"version"`
	Stage      string      `yaml:"stage"`
	Statements []statement `yaml:"statements"`
}

var versions = map[string]ir.Version{
	"":       ir.Version100,
	"100":    ir.Version100,
	"300 es": ir.Version300ES,
}

var stages = map[string]ir.ShaderStage{
	"vertex":   ir.StageVertex,
	"fragment": ir.StageFragment,
}

// Decode parses a YAML shader document. The result is not validated;
// glsl.Compile does that.
func Decode(data []byte) (*ir.Shader, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document: empty input")
		}
		return nil, fmt.Errorf("document: %w", err)
	}

	version, ok := versions[f.Version]
	if !ok {
		return nil, fmt.Errorf("document: %w", ir.Errorf(ir.ErrUnsupportedVersion, "unknown version %q", f.Version))
	}
	stage, ok := stages[f.Stage]
	if !ok {
		return nil, fmt.Errorf("document: unknown stage %q (want vertex or fragment)", f.Stage)
	}

	return &ir.Shader{
		Version:    version,
		Stage:      stage,
		Statements: block(f.Statements),
	}, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*ir.Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	shader, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shader, nil
}
