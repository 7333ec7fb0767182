package link

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const descriptorSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["projectId"],
  "properties": {
    "projectId": {"type": "string", "minLength": 1},
    "env": {"type": "string"}
  }
}`

var compiledSchema = jsonschema.MustCompileString("envdock-link.json", descriptorSchema)

var errNotJSON = errors.New("not valid JSON")

// decodeDocument parses data as a single JSON value.
func decodeDocument(data []byte) (any, error) {
	if !json.Valid(data) {
		return nil, errNotJSON
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
