// Package document models the calibration measurement file as an
// order-preserving JSON tree. Only the fields the overlay relies on are typed;
// everything else is carried through byte for byte.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Field names of the measurement file.
const (
	FieldTitle     = "title"
	FieldChannels  = "detectedChannels"
	FieldCommandID = "commandId"
)

// Channel is one record of detectedChannels.
type Channel struct {
	obj Object
	id  string
}

// ID returns the channel's commandId.
func (c *Channel) ID() string {
	return c.id
}

// Get returns the raw value of a channel field.
func (c *Channel) Get(key string) (json.RawMessage, bool) {
	return c.obj.Get(key)
}

// Set encodes v into a channel field, overwriting it in place or appending it.
func (c *Channel) Set(key string, v any) error {
	return c.obj.SetValue(key, v)
}

// Keys returns the channel's field names in document order.
func (c *Channel) Keys() []string {
	return c.obj.Keys()
}

// Document is a parsed measurement file.
type Document struct {
	root Object
}

// Parse decodes a measurement document. The top-level value must be a JSON
// object; its fields are not checked until Channels is called.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = fmt.Errorf("invalid JSON")
		}
		return nil, &ParseError{Err: err}
	}
	if first := firstByte(data); first != '{' {
		return nil, &StructureError{Field: "document", Index: -1, Reason: "top-level value is not an object"}
	}

	var d Document
	if err := json.Unmarshal(data, &d.root); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &d, nil
}

// Load reads and parses the document at path. The file is never modified.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	d, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return d, nil
}

// Title returns the document title, or "" when it is absent or not a string.
func (d *Document) Title() string {
	raw, ok := d.root.Get(FieldTitle)
	if !ok {
		return ""
	}
	var title string
	if err := json.Unmarshal(raw, &title); err != nil {
		return ""
	}
	return title
}

// SetTitle overwrites the title, adding it when absent.
func (d *Document) SetTitle(title string) error {
	return d.root.SetValue(FieldTitle, title)
}

// Channels decodes detectedChannels. Every record must be an object with a
// string commandId; the first violation is returned as a *StructureError.
func (d *Document) Channels() ([]*Channel, error) {
	raw, ok := d.root.Get(FieldChannels)
	if !ok {
		return nil, &StructureError{Field: FieldChannels, Index: -1, Reason: "missing"}
	}
	if firstByte(raw) != '[' {
		return nil, &StructureError{Field: FieldChannels, Index: -1, Reason: "not an array"}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &StructureError{Field: FieldChannels, Index: -1, Reason: err.Error()}
	}

	channels := make([]*Channel, 0, len(records))
	for i, rec := range records {
		if firstByte(rec) != '{' {
			return nil, &StructureError{Field: FieldChannels, Index: i, Reason: "channel record is not an object"}
		}
		ch := &Channel{}
		if err := json.Unmarshal(rec, &ch.obj); err != nil {
			return nil, &StructureError{Field: FieldChannels, Index: i, Reason: err.Error()}
		}

		idRaw, ok := ch.obj.Get(FieldCommandID)
		if !ok {
			return nil, &StructureError{Field: FieldChannels, Index: i, Reason: "missing " + FieldCommandID}
		}
		if err := json.Unmarshal(idRaw, &ch.id); err != nil || firstByte(idRaw) != '"' {
			return nil, &StructureError{Field: FieldChannels, Index: i, Reason: FieldCommandID + " is not a string"}
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// SetChannels replaces detectedChannels with the given records, in order.
func (d *Document) SetChannels(channels []*Channel) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, ch := range channels {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := ch.obj.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding channel %q: %w", ch.id, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	d.root.Set(FieldChannels, buf.Bytes())
	return nil
}

// Compact returns the document as compact JSON.
func (d *Document) Compact() ([]byte, error) {
	return d.root.MarshalJSON()
}

// Marshal returns the document indented with one tab per level and a trailing
// newline, so successive outputs diff cleanly.
func (d *Document) Marshal() ([]byte, error) {
	compact, err := d.Compact()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "\t"); err != nil {
		return nil, fmt.Errorf("indenting document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write marshals d and writes it to path. See WriteFile.
func Write(path string, d *Document) error {
	data, err := d.Marshal()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return WriteFile(path, data)
}

// WriteFile writes data to path atomically: parent directories are created as
// needed, the bytes go to a sibling temp file which is then renamed over path.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: path, Err: fmt.Errorf("creating output directory: %w", err)}
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
