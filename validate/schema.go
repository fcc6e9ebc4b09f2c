package validate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema infers the JSON Schema of T for use as an MCP tool input schema.
//
// On top of the inference done by jsonschema-go, enum types get an enum
// keyword, numeric min/max validate rules become minimum/maximum, default
// tags become defaults, and optional pointer fields are advertised with
// their plain type instead of a null union.
func Schema[T any]() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[T](&jsonschema.ForOptions{TypeSchemas: enumSchemas()})
	if err != nil {
		return nil, fmt.Errorf("binspire: infer schema for %s: %w", reflect.TypeFor[T](), err)
	}
	annotate(s, reflect.TypeFor[T]())
	return s, nil
}

// MustSchema is like Schema but panics on error. It is meant for tool
// registration, where the input types are fixed at compile time.
func MustSchema[T any]() *jsonschema.Schema {
	s, err := Schema[T]()
	if err != nil {
		panic(err)
	}
	return s
}

func enumSchemas() map[reflect.Type]*jsonschema.Schema {
	schemas := make(map[reflect.Type]*jsonschema.Schema, len(enumValues))
	for t, values := range enumValues {
		enum := make([]any, len(values))
		for i, v := range values {
			enum[i] = v
		}
		schemas[t] = &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return schemas
}

// annotate walks the schema of struct type t alongside its fields.
func annotate(s *jsonschema.Schema, t reflect.Type) {
	if s == nil {
		return
	}
	dropNull(s)
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return
	}
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		}
		prop, ok := s.Properties[name]
		if !ok {
			continue
		}
		annotate(prop, field.Type)
		applyBounds(prop, field)
		if def, ok := field.Tag.Lookup("default"); ok {
			prop.Default = json.RawMessage(def)
		}
	}
}

// dropNull turns a ["null", X] type union into X. Nil is rejected by the
// validator anyway, and a plain type is easier for clients to follow.
func dropNull(s *jsonschema.Schema) {
	if len(s.Types) != 2 || s.Types[0] != "null" {
		return
	}
	s.Type = s.Types[1]
	s.Types = nil
}

func applyBounds(s *jsonschema.Schema, field reflect.StructField) {
	if s.Type != "integer" && s.Type != "number" {
		return
	}
	for rule := range strings.SplitSeq(field.Tag.Get("validate"), ",") {
		key, param, ok := strings.Cut(rule, "=")
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(param, 64)
		if err != nil {
			continue
		}
		switch key {
		case "min":
			s.Minimum = jsonschema.Ptr(n)
		case "max":
			s.Maximum = jsonschema.Ptr(n)
		}
	}
}
