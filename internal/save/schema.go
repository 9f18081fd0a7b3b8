// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package save

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

// SchemaID is the $id of the save file schema.
const SchemaID = "https://shadowtrack.dev/schemas/save.schema.json"

var compiledSchema = sync.OnceValues(compileSchema)

// GenerateSchema returns the JSON Schema describing a save file.
// Unknown keys are allowed so newer files still load, and nullable keys may
// be left out.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(&core.GameState{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Shadowtrack Save File"
	schema.Description = "Game state written by the save command"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code(string(KindSerialization)).Wrapf(err, "marshal schema")
	}
	return data, nil
}

// ValidateSchema checks raw save data against the save file schema.
func ValidateSchema(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return oops.Code(string(KindSerialization)).Errorf("save data is empty")
	}

	doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return oops.Code(string(KindSerialization)).Wrapf(err, "invalid JSON")
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return oops.Code(string(KindSerialization)).Wrapf(err, "schema validation failed")
	}
	return nil
}

func compileSchema() (*jschema.Schema, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	schemaDoc, err := jschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, oops.Code(string(KindSerialization)).Wrapf(err, "parse schema")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(SchemaID, schemaDoc); err != nil {
		return nil, oops.Code(string(KindSerialization)).Wrapf(err, "add schema resource")
	}
	sch, err := c.Compile(SchemaID)
	if err != nil {
		return nil, oops.Code(string(KindSerialization)).Wrapf(err, "compile schema")
	}
	return sch, nil
}
