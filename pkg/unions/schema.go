package unions

import (
	"reflect"
	"strings"
	"time"
)

// Definition is a JSON Type Definition (RFC 8927) schema node. Only the
// forms a tagged union and its struct payloads need are modelled.
type Definition struct {
	Type                 string                 `json:"type,omitempty" yaml:"type,omitempty"`
	Enum                 []string               `json:"enum,omitempty" yaml:"enum,omitempty"`
	Elements             *Definition            `json:"elements,omitempty" yaml:"elements,omitempty"`
	Values               *Definition            `json:"values,omitempty" yaml:"values,omitempty"`
	Properties           map[string]*Definition `json:"properties,omitempty" yaml:"properties,omitempty"`
	OptionalProperties   map[string]*Definition `json:"optionalProperties,omitempty" yaml:"optionalProperties,omitempty"`
	AdditionalProperties bool                   `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Discriminator        string                 `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	Mapping              map[string]*Definition `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Nullable             bool                   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

var timeType = reflect.TypeOf(time.Time{})

// definitionFor reflects t into a Definition. validateTag is the `validate`
// tag of the field holding t; its oneof rule becomes an enum.
func definitionFor(t reflect.Type, validateTag string) *Definition {
	nullable := false
	for t.Kind() == reflect.Ptr {
		nullable = true
		t = t.Elem()
	}

	def := definitionForKind(t, validateTag)
	def.Nullable = nullable
	return def
}

func definitionForKind(t reflect.Type, validateTag string) *Definition {
	if t == timeType {
		return &Definition{Type: "timestamp"}
	}

	switch t.Kind() {
	case reflect.String:
		if values := oneOfValues(validateTag); len(values) > 0 {
			return &Definition{Enum: values}
		}
		return &Definition{Type: "string"}
	case reflect.Bool:
		return &Definition{Type: "boolean"}
	case reflect.Float32:
		return &Definition{Type: "float32"}
	case reflect.Float64, reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return &Definition{Type: "float64"}
	case reflect.Int8:
		return &Definition{Type: "int8"}
	case reflect.Uint8:
		return &Definition{Type: "uint8"}
	case reflect.Int16:
		return &Definition{Type: "int16"}
	case reflect.Uint16:
		return &Definition{Type: "uint16"}
	case reflect.Int32:
		return &Definition{Type: "int32"}
	case reflect.Uint32:
		return &Definition{Type: "uint32"}
	case reflect.Slice, reflect.Array:
		return &Definition{Elements: definitionFor(t.Elem(), diveTag(validateTag))}
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return &Definition{Values: definitionFor(t.Elem(), diveTag(validateTag))}
		}
		return &Definition{}
	case reflect.Struct:
		return structDefinition(t)
	default:
		return &Definition{}
	}
}

func structDefinition(t reflect.Type) *Definition {
	def := &Definition{}
	for _, f := range structFields(t) {
		fd := definitionFor(f.Field.Type, f.Field.Tag.Get("validate"))
		if f.Required {
			if def.Properties == nil {
				def.Properties = map[string]*Definition{}
			}
			def.Properties[f.Name] = fd
		} else {
			if def.OptionalProperties == nil {
				def.OptionalProperties = map[string]*Definition{}
			}
			def.OptionalProperties[f.Name] = fd
		}
	}
	if def.Properties == nil && def.OptionalProperties == nil {
		def.Properties = map[string]*Definition{}
	}
	return def
}

// oneOfValues returns the values of a top-level oneof rule in tag order.
func oneOfValues(tag string) []string {
	for _, rule := range strings.Split(tag, ",") {
		if rule == "dive" {
			return nil
		}
		if v, ok := strings.CutPrefix(rule, "oneof="); ok {
			return strings.Fields(v)
		}
	}
	return nil
}

// diveTag returns the rules after the first "dive", which apply to
// elements.
func diveTag(tag string) string {
	_, after, ok := strings.Cut(tag, "dive,")
	if !ok {
		return ""
	}
	return after
}
