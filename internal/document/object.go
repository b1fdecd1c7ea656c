package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Member is one key/value pair of a JSON object. Value holds the exact bytes
// read from input until the member is overwritten.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that keeps member order and raw member values, so
// fields nobody touches are written back exactly as they were read.
type Object struct {
	members []Member
}

// UnmarshalJSON decodes a JSON object, keeping member order. A repeated key
// keeps its first position and its last value.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	o.members = o.members[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding value of %q: %w", key, err)
		}
		o.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the object compactly in member order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(m.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the raw value stored under key.
func (o *Object) Get(key string) (json.RawMessage, bool) {
	for _, m := range o.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set stores a raw value under key, replacing an existing member in place or
// appending a new one.
func (o *Object) Set(key string, raw json.RawMessage) {
	for i := range o.members {
		if o.members[i].Key == key {
			o.members[i].Value = raw
			return
		}
	}
	o.members = append(o.members, Member{Key: key, Value: raw})
}

// SetValue encodes v and stores it under key.
func (o *Object) SetValue(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	o.Set(key, raw)
	return nil
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.members)
}

// encode marshals v without HTML escaping; the calibration tool never sees
// the output as HTML.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
