package normst

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

type Format int

const (
	FormatText Format = iota
	FormatBinary
	FormatJSON
	FormatJSONLines
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	case FormatJSON:
		return "json"
	case FormatJSONLines:
		return "jsonl"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Tree reports whether data of format f holds a tree value.
func (f Format) Tree() bool {
	switch f {
	case FormatJSON, FormatJSONLines, FormatYAML:
		return true
	}
	return false
}

// FormatOf guesses the format from the extension of a file name.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONLines
	case ".yaml", ".yml":
		return FormatYAML
	case ".bin":
		return FormatBinary
	}
	return FormatText
}

// Data is an actual or pattern value in one of the supported formats.
type Data struct {
	format Format
	text   string
	bin    []byte
	value  any
}

func Text(s string) Data { return Data{format: FormatText, text: s} }

func Binary(b []byte) Data { return Data{format: FormatBinary, bin: b} }

// Value wraps a tree value. f must be a tree format.
func Value(f Format, v any) Data {
	if !f.Tree() {
		panic(fmt.Sprintf("normst: %s is not a tree format", f))
	}
	return Data{format: f, value: v}
}

// ParseData reads raw as data of format f.
func ParseData(f Format, raw []byte) (Data, error) {
	switch f {
	case FormatText:
		return Text(string(raw)), nil
	case FormatBinary:
		return Binary(raw), nil
	case FormatJSON, FormatYAML:
		v, err := DecodeValue(raw)
		if err != nil {
			return Data{}, fmt.Errorf("parse %s: %w", f, err)
		}
		return Value(f, v), nil
	case FormatJSONLines:
		var vs []any
		for i, l := range SplitLines(string(raw)) {
			if strings.TrimSpace(l) == "" {
				continue
			}
			v, err := DecodeValue([]byte(l))
			if err != nil {
				return Data{}, fmt.Errorf("parse %s line %d: %w", f, i+1, err)
			}
			vs = append(vs, v)
		}
		return Value(f, vs), nil
	}
	return Data{}, fmt.Errorf("unknown format %s", f)
}

func (d Data) Format() Format { return d.format }

// Value returns the tree value if d has a tree format.
func (d Data) Value() (any, bool) {
	if !d.format.Tree() {
		return nil, false
	}
	return d.value, true
}

// Render returns the text form of d. Binary data has no text form.
func (d Data) Render() (string, bool) {
	switch d.format {
	case FormatText:
		return d.text, true
	case FormatJSON:
		js, err := EncodeJSON(d.value)
		if err != nil {
			return "", false
		}
		return string(js), true
	case FormatJSONLines:
		vs, _ := d.value.([]any)
		var sb strings.Builder
		for _, v := range vs {
			js, err := yaml.MarshalWithOptions(v, yaml.JSON(), yaml.Flow(true))
			if err != nil {
				return "", false
			}
			sb.Write(bytes.TrimRight(js, "\n"))
			sb.WriteByte('\n')
		}
		return sb.String(), true
	case FormatYAML:
		y, err := yaml.Marshal(d.value)
		if err != nil {
			return "", false
		}
		return string(y), true
	}
	return "", false
}

// Bytes returns the raw form of d, for text formats that is Render.
func (d Data) Bytes() []byte {
	if d.format == FormatBinary {
		return d.bin
	}
	s, _ := d.Render()
	return []byte(s)
}

// NormalizeData normalizes actual against pattern according to the format
// of actual. Text is normalized against the rendered pattern, tree values
// against the pattern's tree value. Anything else is returned unchanged.
func NormalizeData(actual, pattern Data, r *Redactions) Data {
	switch {
	case actual.format == FormatText:
		if p, ok := pattern.Render(); ok {
			return Text(NormalizeText(actual.text, p, r))
		}
	case actual.format.Tree():
		if p, ok := pattern.Value(); ok {
			actual.value = NormalizeValue(actual.value, p, r)
		}
	}
	return actual
}

// DecodeValue decodes a JSON or YAML document into a tree value with
// ordered objects.
func DecodeValue(doc []byte) (v any, err error) {
	if err = yaml.UnmarshalWithOptions(doc, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeJSON encodes a tree value as JSON keeping the order of objects.
func EncodeJSON(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.JSON())
}
