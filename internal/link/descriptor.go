package link

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileName is the descriptor written at the root of a linked directory.
const FileName = ".envdock.json"

// Field names a descriptor attribute for UpdateField.
type Field string

const (
	FieldProjectID Field = "projectId"
	FieldEnv       Field = "env"
)

// Descriptor associates a directory with a remote project and its default
// environment. Attributes other than projectId and env are carried through
// load-modify-save untouched.
type Descriptor struct {
	ProjectID string
	Env       string

	extra map[string]json.RawMessage
}

func (d Descriptor) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+2)
	for k, v := range d.extra {
		out[k] = v
	}

	id, err := json.Marshal(d.ProjectID)
	if err != nil {
		return nil, err
	}
	out[string(FieldProjectID)] = id

	if d.Env != "" {
		env, err := json.Marshal(d.Env)
		if err != nil {
			return nil, err
		}
		out[string(FieldEnv)] = env
	}

	return json.Marshal(out)
}

func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Descriptor{}
	if v, ok := raw[string(FieldProjectID)]; ok {
		if err := json.Unmarshal(v, &d.ProjectID); err != nil {
			return fmt.Errorf("projectId: %w", err)
		}
		delete(raw, string(FieldProjectID))
	}
	if v, ok := raw[string(FieldEnv)]; ok {
		if err := json.Unmarshal(v, &d.Env); err != nil {
			return fmt.Errorf("env: %w", err)
		}
		delete(raw, string(FieldEnv))
	}
	if len(raw) > 0 {
		d.extra = raw
	}
	return nil
}

// Extra returns the raw value of an attribute the CLI does not model.
func (d Descriptor) Extra(name string) (json.RawMessage, bool) {
	v, ok := d.extra[name]
	return v, ok
}

func (d *Descriptor) set(field Field, value string) error {
	switch field {
	case FieldProjectID:
		d.ProjectID = value
	case FieldEnv:
		d.Env = value
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if d.extra == nil {
			d.extra = map[string]json.RawMessage{}
		}
		d.extra[string(field)] = encoded
	}
	return nil
}

func encode(d Descriptor) ([]byte, error) {
	compact, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
