package prompt

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldsFromStruct builds schema fields from a struct's exported fields.
// The name comes from the json tag, the type from prompt_type (or the Go
// kind), and the description from prompt_desc. Fields tagged prompt:"-" are
// skipped; prompt:"optional" clears Required.
func FieldsFromStruct(v any) ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("prompt: struct is nil")
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("prompt: expected struct, got %s", t.Kind())
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		opts := strings.Split(f.Tag.Get("prompt"), ",")
		if hasOpt(opts, "-") {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		typ := strings.TrimSpace(f.Tag.Get("prompt_type"))
		if typ == "" {
			typ = typeString(f.Type)
		}
		fields = append(fields, Field{
			Name:        name,
			Type:        typ,
			Required:    !hasOpt(opts, "optional"),
			Description: strings.TrimSpace(f.Tag.Get("prompt_desc")),
		})
	}
	return fields, nil
}

// MustFieldsFromStruct panics on error; for package-level schema values.
func MustFieldsFromStruct(v any) []Field {
	fields, err := FieldsFromStruct(v)
	if err != nil {
		panic(err)
	}
	return fields
}

func hasOpt(opts []string, want string) bool {
	for _, o := range opts {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}

func typeString(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "[]" + typeString(t.Elem())
	case reflect.Map:
		return "object"
	case reflect.Struct:
		return "object"
	default:
		return "any"
	}
}
