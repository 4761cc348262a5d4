package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON shape a reply must have. Declare schemas as package
// level pointers; the compiled form is cached on first use.
type Schema struct {
	// Name is sent to providers that label structured output, e.g.
	// "advisor-reply".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check reports whether raw is a JSON document matching the schema.
func (s *Schema) Check(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("not JSON: %w", err)
	}

	s.once.Do(s.compile)
	if s.err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, s.err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("does not match %q: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) compile() {
	// The compiler wants plain decoded JSON, not Go maps with typed slices.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = err
		return
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		s.err = err
		return
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		s.err = err
		return
	}
	s.compiled, s.err = c.Compile(url)
}
