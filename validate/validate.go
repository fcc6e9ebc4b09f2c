// Package validate decodes and validates tool arguments.
//
// A single input struct drives both halves: its json tags define the wire
// names, its validate tags the rules checked by go-playground/validator
// after a strict decode, and its jsonschema tags the descriptions of the
// JSON Schema advertised to MCP clients (see Schema).
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is a single validation failure.
type Issue struct {
	// Field is the JSON path of the offending value ("data.title"). Empty
	// when the failure concerns the payload as a whole.
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Reason
	}
	return i.Field + ": " + i.Reason
}

// Error reports every issue found in a payload.
type Error struct {
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// IsValidation reports whether err carries validation issues.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Decode strictly decodes raw into a new T and validates it. Empty or null
// input decodes as an empty object. Unknown fields, trailing data and type
// mismatches are reported as *Error, as are failed validate rules.
func Decode[T any](raw json.RawMessage) (*T, error) {
	v := new(T)
	if err := decodeStrict(raw, v); err != nil {
		return nil, err
	}
	if err := Struct(v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeStrict(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err, trimmed, reflect.TypeOf(v))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &Error{Issues: []Issue{{Reason: "unexpected data after the arguments object"}}}
	}
	return nil
}

func decodeError(err error, raw []byte, target reflect.Type) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &typeErr):
		return &Error{Issues: []Issue{{
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}}}
	case errors.As(err, &syntaxErr):
		return &Error{Issues: []Issue{{Reason: "invalid JSON: " + syntaxErr.Error()}}}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		if path, ok := unknownKey(raw, target, ""); ok {
			field = path
		}
		return &Error{Issues: []Issue{{Field: field, Reason: "Unrecognized key"}}}
	default:
		return &Error{Issues: []Issue{{Reason: strings.TrimPrefix(err.Error(), "json: ")}}}
	}
}

// unknownKey walks raw against t in document order and returns the JSON
// path of the first key t does not declare.
func unknownKey(raw []byte, t reflect.Type, prefix string) (string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return "", false
	}
	fields := jsonFields(t)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return "", false
		}
		ft, ok := lookupField(fields, key)
		if !ok {
			return prefix + key, true
		}
		if path, found := unknownKey(value, ft, prefix+key+"."); found {
			return path, true
		}
	}
	return "", false
}

// jsonFields maps the wire names of t's exported fields to their types.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

// lookupField matches key the way encoding/json does: exact name first,
// then case-insensitively.
func lookupField(fields map[string]reflect.Type, key string) (reflect.Type, bool) {
	if ft, ok := fields[key]; ok {
		return ft, true
	}
	for name, ft := range fields {
		if strings.EqualFold(name, key) {
			return ft, true
		}
	}
	return nil, false
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}

// Struct runs the validate rules of v, a pointer to a struct, and converts
// failures into *Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("binspire: validate: %w", err)
	}
	top := reflect.TypeOf(v)
	for top.Kind() == reflect.Pointer {
		top = top.Elem()
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), top.Name()+".")
		issues = append(issues, Issue{Field: field, Reason: reason(fe)})
	}
	return &Error{Issues: issues}
}
