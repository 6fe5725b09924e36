package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

var ErrInvalidDocument = errors.New("document is neither an array of records nor an object holding one")

// Field is a single named value of a record.
type Field struct {
	Name  string
	Value Value
}

// Record is an externally supplied item with an ordered set of fields.
// A nil *Record stands for a malformed item.
type Record struct {
	fields []Field
	index  map[string]int
}

func NewRecord(fields ...Field) *Record {
	r := &Record{
		index: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// RecordFromMap builds a record from a map. Field order is sorted by key.
func RecordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := NewRecord()
	for _, k := range keys {
		r.Set(k, ValueOf(m[k]))
	}
	return r
}

// Set sets the value of a field. An existing field keeps its position.
func (r *Record) Set(name string, value Value) {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

func (r *Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Null, false
	}
	return r.fields[i].Value, true
}

func (r *Record) Fields() []Field {
	return r.fields
}

func (r *Record) Len() int {
	return len(r.fields)
}

// ReadDocument decodes records from a json document. The document is either
// an array of records or an object whose first key holds such an array.
// Array elements that are not objects come back as nil records.
func ReadDocument(reader io.Reader) ([]*Record, error) {
	records, err := readDocument(reader)
	if err != nil && !errors.Is(err, ErrInvalidDocument) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return records, err
}

func readDocument(reader io.Reader) ([]*Record, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("dec.Token: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, ErrInvalidDocument
	}

	switch delim {
	case '[':
		return readRecords(dec)
	case '{':
		if !dec.More() {
			return nil, ErrInvalidDocument
		}
		// key of the first entry
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("dec.Token: %w", err)
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dec.Token: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return nil, ErrInvalidDocument
		}
		return readRecords(dec)
	default:
		return nil, ErrInvalidDocument
	}
}

// readRecords reads array elements up to and including the closing bracket.
func readRecords(dec *json.Decoder) ([]*Record, error) {
	var records []*Record

	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("dec.Decode: %w", err)
		}

		rec, err := parseRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("dec.Token: %w", err)
	}

	return records, nil
}

func parseRecord(raw json.RawMessage) (*Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	// opening brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("dec.Token: %w", err)
	}

	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("dec.Token: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key: %v", tok)
		}

		var fieldRaw json.RawMessage
		if err := dec.Decode(&fieldRaw); err != nil {
			return nil, fmt.Errorf("dec.Decode: %w", err)
		}

		value, err := parseValue(fieldRaw)
		if err != nil {
			return nil, err
		}
		rec.Set(name, value)
	}

	return rec, nil
}

func parseValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Null, nil
	}

	if raw[0] == '{' || raw[0] == '[' {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return Null, fmt.Errorf("json.Compact: %w", err)
		}
		return Object(buf.String()), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Null, fmt.Errorf("dec.Decode: %w", err)
	}

	return ValueOf(v), nil
}
