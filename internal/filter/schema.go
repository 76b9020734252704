package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Field maps a query parameter name to a column of the entity table.
type Field struct {
	Column string
	Kind   Kind
}

// Schema is the whitelist of filterable and orderable parameters for one
// entity. Names outside the schema never reach SQL.
type Schema struct {
	Entity     string
	PrimaryKey string
	fields     map[string]Field
}

// NewSchema returns a schema that already knows the created and timestamp
// columns every entity carries.
func NewSchema(entity string) Schema {
	return Schema{
		Entity:     entity,
		PrimaryKey: "id",
		fields: map[string]Field{
			"created":   {Column: "created", Kind: KindTime},
			"timestamp": {Column: "timestamp", Kind: KindTime},
		},
	}
}

// With returns a copy of s that also accepts name.
func (s Schema) With(name, column string, kind Kind) Schema {
	fields := make(map[string]Field, len(s.fields)+1)
	for k, v := range s.fields {
		fields[k] = v
	}
	fields[name] = Field{Column: column, Kind: kind}
	s.fields = fields
	return s
}

// WithKey registers the _key parameter.
func (s Schema) WithKey(column string) Schema {
	return s.With("_key", column, KindString)
}

// WithDescriptive registers the _descriptive parameter.
func (s Schema) WithDescriptive(column string) Schema {
	return s.With("_descriptive", column, KindString)
}

func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (f Field) coerce(literal string) (any, error) {
	switch f.Kind {
	case KindString:
		return literal, nil
	case KindInt:
		return strconv.ParseInt(strings.TrimSpace(literal), 10, 64)
	case KindBool:
		return strconv.ParseBool(strings.TrimSpace(literal))
	case KindFloat:
		return strconv.ParseFloat(strings.TrimSpace(literal), 64)
	case KindTime:
		lit := strings.TrimSpace(literal)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, lit, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
		return nil, fmt.Errorf("%q is not a date or timestamp", literal)
	default:
		return nil, fmt.Errorf("unsupported kind %s", f.Kind)
	}
}
