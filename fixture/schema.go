package fixture

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const schemaBase = "https://fixturegen.invalid/schema/"

// Kind names a fixture bundle and the schema it must satisfy.
type Kind string

const (
	KindBlock          Kind = "block.json"
	KindWithdrawalInfo Kind = "withdrawal_info.json"
	KindPairing        Kind = "pairing_test_data.json"
)

var kinds = []Kind{KindBlock, KindWithdrawalInfo, KindPairing}

func compileSchemas() (map[Kind]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return nil, fmt.Errorf("read embedded schemas: %w", err)
	}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schema", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(schemaBase+e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
	}
	out := make(map[Kind]*jsonschema.Schema, len(kinds))
	for _, k := range kinds {
		sch, err := c.Compile(schemaBase + string(k))
		if err != nil {
			return nil, fmt.Errorf("compile %s json schema: %w", k, err)
		}
		out[k] = sch
	}
	return out, nil
}

// ValidateSchema checks data against the schema of kind.
func ValidateSchema(kind Kind, data []byte) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	return validate(schemas[kind], kind, data)
}

func validate(sch *jsonschema.Schema, kind Kind, data []byte) error {
	if sch == nil {
		return fmt.Errorf("unknown fixture kind %q", kind)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", kind, err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("validate %s data: %w", kind, err)
	}
	return nil
}
