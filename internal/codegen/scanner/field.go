package scanner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ActionKey is a reserved descriptor key holding custom record actions
// rather than a column.
const ActionKey = "singleRecordActions"

const (
	DefaultDataType = "varchar"
	DefaultShowType = "normal"
)

var ErrMissingKey = errors.New("field has no key")

// Field is one decoded schema descriptor.
type Field struct {
	Key      string `json:"key"`      // Column identifier (e.g., "createTime")
	DataType string `json:"dataType"` // int, float, varchar or datetime
	ShowType string `json:"showType"` // normal, between, checkbox, multiSelect, file, image, imageArray
	Max      *int   `json:"max,omitempty"`
}

// rawField is the wire shape of a descriptor. max is loosely typed: schemas
// write it as 3, 3.0 or '3'.
type rawField struct {
	Key      string          `json:"key"`
	DataType string          `json:"dataType"`
	ShowType string          `json:"showType"`
	Max      json.RawMessage `json:"max"`
}

// DecodeField decodes a raw descriptor and fills in the default data and
// show types.
func DecodeField(raw json.RawMessage) (Field, error) {
	var rf rawField
	if err := json.Unmarshal(raw, &rf); err != nil {
		return Field{}, fmt.Errorf("decode field: %w", err)
	}
	f := Field{Key: rf.Key, DataType: rf.DataType, ShowType: rf.ShowType}
	if f.DataType == "" {
		f.DataType = DefaultDataType
	}
	if f.ShowType == "" {
		f.ShowType = DefaultShowType
	}

	limit, err := decodeMax(rf.Max)
	if err != nil {
		return f, fmt.Errorf("decode field: %w", err)
	}
	f.Max = limit

	if f.Key == "" {
		return f, ErrMissingKey
	}
	return f, nil
}

// decodeMax accepts a number or a numeric string. Fractions are truncated.
func decodeMax(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}

	var s string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
		if s == "" || s == "null" {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("max: unsupported value %s", raw)
	}

	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("max: %q is not a number", s)
	}
	n := int(fl)
	return &n, nil
}

// SingleUpload reports whether a file/image field accepts at most one upload.
func (f Field) SingleUpload() bool {
	return f.Max == nil || *f.Max == 1
}
