// Package declloader loads a YAML "declaration manifest" that seeds a
// fresh types.Env with ambient bindings, standing in for the .d.ts
// ambient declarations spec.md §1 describes as the thin contract between
// crochet and its host environment. Grounded on the teacher's
// internal/eval_harness.LoadSpec, which reads a benchmark spec the same
// way: read the file, yaml.Unmarshal it, validate required fields.
package declloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crochet-lang/crochet/internal/infer"
	"github.com/crochet-lang/crochet/internal/parser"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// Declaration is one ambient binding: a name and its type written in
// crochet's surface annotation syntax, e.g. `"{ log: (msg: string) => undefined }"`.
type Declaration struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Manifest is the top-level shape of a declaration manifest file.
type Manifest struct {
	Declarations []Declaration `yaml:"declarations"`
}

// Load reads the manifest at path, resolves each declaration's `type:`
// string through the surface type-annotation parser and
// infer.TypeFromAnnotation, and returns a fresh Env with one frozen
// binding per declaration.
func Load(path string) (*ty.Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("declloader: failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("declloader: failed to parse YAML: %w", err)
	}

	env := ty.NewEnv()
	for _, d := range manifest.Declarations {
		if d.Name == "" {
			return nil, fmt.Errorf("declloader: declaration missing required field: name")
		}
		if d.Type == "" {
			return nil, fmt.Errorf("declloader: declaration %q missing required field: type", d.Name)
		}
		ann, err := parser.ParseTypeAnnotation(d.Type, path)
		if err != nil {
			return nil, fmt.Errorf("declloader: declaration %q: %w", d.Name, err)
		}
		t, err := infer.TypeFromAnnotation(env, ann)
		if err != nil {
			return nil, fmt.Errorf("declloader: declaration %q: %w", d.Name, err)
		}
		env = env.Extend(d.Name, ty.FreezeScheme(ty.Generalize(env, t)))
	}
	return env, nil
}
