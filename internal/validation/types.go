package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Bool decodes a JSON boolean, or a string that reads "true" when the
// transport could only carry text. Any other string is false.
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = Bool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = s == "true"
		return nil
	}

	return &json.UnmarshalTypeError{Value: kindOf(data), Type: reflect.TypeOf(true)}
}

// Tags decodes either a list of strings or one comma separated string.
// Elements are trimmed and empty ones dropped. Values of any other scalar
// kind decode to an empty list.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return &json.UnmarshalTypeError{Value: "array", Type: reflect.TypeOf([]string{})}
		}
		*t = NormalizeTags(list)
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NormalizeTags(strings.Split(s, ","))
	case len(data) > 0 && data[0] == '{':
		return &json.UnmarshalTypeError{Value: "object", Type: reflect.TypeOf([]string{})}
	default:
		*t = Tags{}
	}
	return nil
}

// NormalizeTags trims every tag and drops empty ones. The result is never nil.
func NormalizeTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func kindOf(data []byte) string {
	if len(data) == 0 {
		return "empty"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	default:
		return "number"
	}
}
