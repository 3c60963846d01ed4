package parse

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaRoot cue.Value
)

// contentSchema resolves a definition from the embedded schema file.
// The schema compiles once per process; a broken embedded schema is a
// programming error surfaced on first use.
func contentSchema(name string) (cue.Value, error) {
	schemaOnce.Do(func() {
		schemaRoot = cuecontext.New().CompileString(schemaSource)
	})
	if err := schemaRoot.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile content schemas: %w", err)
	}
	v := schemaRoot.LookupPath(cue.ParsePath(name))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup schema %s: %w", name, err)
	}
	return v, nil
}

// validateContent checks raw JSON content against a named schema.
// Returns ErrInvalidEvent-wrapped errors for content that does not
// conform, so callers can discard the event like any other parse failure.
func validateContent(schemaName string, raw []byte) error {
	v, err := contentSchema(schemaName)
	if err != nil {
		return err
	}
	if err := cuejson.Validate(raw, v); err != nil {
		return invalidf("content does not match %s: %v", schemaName, err)
	}
	return nil
}
