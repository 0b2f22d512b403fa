package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/zerr"
)

//go:embed settings.schema.json
var settingsSchemaJSON []byte

var (
	settingsSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(settingsSchemaJSON))
		if err != nil {
			compileErr = zerr.Wrap(err, "failed to unmarshal settings schema")
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("settings.schema.json", doc); err != nil {
			compileErr = zerr.Wrap(err, "failed to add settings schema")
			return
		}
		settingsSchema, err = compiler.Compile("settings.schema.json")
		if err != nil {
			compileErr = zerr.Wrap(err, "failed to compile settings schema")
		}
	})
	return compileErr
}

// validateSettings checks a decoded settings document against the embedded
// schema. The document is round-tripped through JSON so numbers reach the
// validator as json.Number.
func validateSettings(doc any) error {
	if err := compileSchema(); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return zerr.Wrap(err, "failed to encode settings")
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return zerr.Wrap(err, "failed to decode settings")
	}
	return settingsSchema.Validate(v)
}
