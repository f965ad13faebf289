package skilldef

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/skills.json
var builtinSkills []byte

// BuiltinSource is the source name of the embedded catalog.
const BuiltinSource = "builtin"

// LoadError reports a skill source rejected at the loading boundary.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load skills from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(sourceSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://skill-source.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Load parses and validates one skill source document. The document is
// checked against the source schema before decoding, then structurally
// validated as a set.
func Load(source string, data []byte) ([]SkillDefinition, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema()
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var doc struct {
		Skills []SkillDefinition `json:"skills"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if err := validateSkills(doc.Skills); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return doc.Skills, nil
}

// LoadFile reads and validates a skill source from disk.
func LoadFile(path string) ([]SkillDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return Load(path, data)
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	defs, err := Load(BuiltinSource, builtinSkills)
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs), nil
})

// Builtin returns the embedded default catalog.
func Builtin() (*Catalog, error) {
	return builtin()
}

// LoadCatalog builds a catalog from the embedded skills followed by the
// given files. Skills in later files replace same-named earlier ones.
func LoadCatalog(logger *slog.Logger, paths ...string) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	base, err := Load(BuiltinSource, builtinSkills)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded skill source", "source", BuiltinSource, "skills", len(base))

	sources := [][]SkillDefinition{base}
	for _, p := range paths {
		defs, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded skill source", "source", p, "skills", len(defs))
		sources = append(sources, defs)
	}

	c := NewCatalog(sources...)
	logger.Info("skill catalog ready", "skills", c.Len(), "instances", len(c.instances))
	return c, nil
}
