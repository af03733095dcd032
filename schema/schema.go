// Package schema defines the capability contract that entity types must
// satisfy for the query core to plan and lower queries over them.
package schema

// FieldType is the declared type of an entity field as seen by the type
// checker. Integer and float are kept distinct here since the entity is
// the only place that distinction is observable; the type checker collapses
// both to a single "number" kind once it reads a field's type.
type FieldType string

const (
	TypeInteger FieldType = "integer"
	TypeFloat   FieldType = "float"
	TypeString  FieldType = "string"
	TypeBoolean FieldType = "boolean"
	TypeUnknown FieldType = "unknown"
)

// Entity is the capability contract an entity schema satisfies. The query
// core never holds a concrete schema type; it only ever talks to this
// interface, obtained from whatever generated or hand-written type the
// caller passes into a `from` clause.
type Entity interface {
	// Dataset returns the backing table name.
	Dataset() string
	// FieldNames returns the ordered field names, primary key first when
	// one is declared.
	FieldNames() []string
	// FieldType returns the declared type of the named field, or
	// TypeUnknown if the entity has no such field.
	FieldType(name string) FieldType
	// PrimaryKey returns the primary key field name and true, or ("", false)
	// if the entity declares none.
	PrimaryKey() (string, bool)
}

// field is one entry of a StaticEntity's declaration.
type field struct {
	Name string
	Type FieldType
}

// Field builds a field declaration for StaticEntity.
func Field(name string, typ FieldType) field {
	return field{Name: name, Type: typ}
}

// StaticEntity is a ready-made Entity for callers that don't want to hand-roll
// the four capability methods (tests, the demo CLI, ad-hoc schemas). Fields
// are listed in declaration order; PrimaryKey is the field named by
// NewStaticEntity's pk argument, if any.
type StaticEntity struct {
	table      string
	fields     []field
	primaryKey string
	hasPK      bool
}

// NewStaticEntity declares an entity backed by table, with fields in the
// given order. If pk is non-empty it must name one of the fields and is
// surfaced first by FieldNames, matching §3.4's "primary key first" rule.
func NewStaticEntity(table string, pk string, fields ...field) *StaticEntity {
	e := &StaticEntity{table: table, fields: fields}
	if pk != "" {
		e.primaryKey = pk
		e.hasPK = true
		e.reorderPKFirst()
	}
	return e
}

func (e *StaticEntity) reorderPKFirst() {
	ordered := make([]field, 0, len(e.fields))
	for _, f := range e.fields {
		if f.Name == e.primaryKey {
			ordered = append(ordered, f)
		}
	}
	for _, f := range e.fields {
		if f.Name != e.primaryKey {
			ordered = append(ordered, f)
		}
	}
	e.fields = ordered
}

func (e *StaticEntity) Dataset() string { return e.table }

func (e *StaticEntity) FieldNames() []string {
	names := make([]string, len(e.fields))
	for i, f := range e.fields {
		names[i] = f.Name
	}
	return names
}

func (e *StaticEntity) FieldType(name string) FieldType {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Type
		}
	}
	return TypeUnknown
}

func (e *StaticEntity) PrimaryKey() (string, bool) {
	return e.primaryKey, e.hasPK
}

// Value is a single entity record carrying its own schema witness, the
// shape the row-level INSERT/UPDATE/DELETE lowerers (§4.5) consume. The core
// never constructs one itself; it is handed one by the caller alongside the
// Entity it was built from.
type Value interface {
	Schema() Entity
	Get(field string) (value interface{}, present bool)
}

// StaticValue is a ready-made Value backed by a map, for callers (tests, the
// demo CLI) that don't have a generated record type.
type StaticValue struct {
	schema Entity
	values map[string]interface{}
}

// NewValue pairs a schema with field values for row-level lowering.
func NewValue(schema Entity, values map[string]interface{}) *StaticValue {
	return &StaticValue{schema: schema, values: values}
}

func (v *StaticValue) Schema() Entity { return v.schema }

func (v *StaticValue) Get(field string) (interface{}, bool) {
	val, ok := v.values[field]
	return val, ok
}
