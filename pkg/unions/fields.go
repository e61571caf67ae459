package unions

import (
	"reflect"
	"strings"
)

// structField is a payload field as seen on the wire.
type structField struct {
	Name     string
	Required bool
	Field    reflect.StructField
}

// structFields lists the record fields of struct type t in declaration
// order, following encoding/json naming: the json tag name when present,
// the Go field name otherwise. Fields tagged "-" and unexported fields are
// skipped. A field is required unless its tag carries omitempty or
// omitzero. Untagged embedded structs are flattened.
func structFields(t reflect.Type) []structField {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")

		if f.Anonymous && tag == "" {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				out = append(out, structFields(ft)...)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		name, opts := fieldName(f, tag)
		if name == "" {
			continue
		}
		out = append(out, structField{
			Name:     name,
			Required: !hasOption(opts, "omitempty") && !hasOption(opts, "omitzero"),
			Field:    f,
		})
	}
	return out
}

// fieldName extracts the record name and tag options of a struct field.
func fieldName(f reflect.StructField, tag string) (string, []string) {
	if tag == "-" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		name = f.Name
	}
	return name, parts[1:]
}

func hasOption(opts []string, want string) bool {
	for _, o := range opts {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}
