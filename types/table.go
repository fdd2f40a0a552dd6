package types

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldType is the on-disk type tag of a record field.
type FieldType uint8

const (
	FieldTypeInt FieldType = iota
	FieldTypeString
)

func (ft FieldType) String() string {
	switch ft {
	case FieldTypeInt:
		return "INT"
	case FieldTypeString:
		return "STRING"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(ft))
	}
}

// ParseFieldType accepts the names used in schema strings ("int", "string").
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INT":
		return FieldTypeInt, nil
	case "STRING", "VARCHAR":
		return FieldTypeString, nil
	}
	return 0, errors.Errorf("unknown field type %q", s)
}

type FieldDef struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Schema lists the fields of a record in storage order.
type Schema struct {
	Fields []FieldDef `json:"fields"`
}

func (s Schema) NumFields() int {
	return len(s.Fields)
}

// ParseSchema parses "id:int,name:string,age:int".
func ParseSchema(text string) (Schema, error) {
	var schema Schema
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, typ, ok := strings.Cut(part, ":")
		if !ok {
			return Schema{}, errors.Errorf("field %q: expected name:type", part)
		}
		ft, err := ParseFieldType(typ)
		if err != nil {
			return Schema{}, errors.Wrapf(err, "field %q", name)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return Schema{}, errors.Errorf("field %q: empty name", part)
		}
		if _, dup := seen[name]; dup {
			return Schema{}, errors.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}
		schema.Fields = append(schema.Fields, FieldDef{Name: name, Type: ft})
	}
	if len(schema.Fields) == 0 {
		return Schema{}, errors.New("schema has no fields")
	}
	return schema, nil
}

func (s Schema) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, strings.ToLower(f.Type.String()))
	}
	return strings.Join(parts, ",")
}
