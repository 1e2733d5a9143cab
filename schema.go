package formulaic

import (
	"fmt"
	"sync"
)

// Schema is the declared metadata for one entity type: its fields, triggers
// and naming. Populate it once at definition time; afterwards it is shared,
// immutable metadata across every Model built from it.
type Schema struct {
	Name string

	namer    Namer
	fields   map[string]*Field
	order    []string
	triggers []*Trigger
}

// SchemaOption configures a Schema at definition time.
type SchemaOption func(*Schema)

// WithNamer overrides the default NamingStrategy.
func WithNamer(namer Namer) SchemaOption {
	return func(schema *Schema) {
		if namer != nil {
			schema.namer = namer
		}
	}
}

// NewSchema starts an empty schema for the named entity type.
func NewSchema(name string, opts ...SchemaOption) *Schema {
	schema := &Schema{
		Name:   name,
		namer:  NamingStrategy{},
		fields: map[string]*Field{},
	}
	for _, opt := range opts {
		opt(schema)
	}
	return schema
}

// AddField declares a field under name. Declaration order is preserved and
// drives the order construction seeding applies initial values.
func (schema *Schema) AddField(name string, field *Field) error {
	if name == "" || field == nil {
		return fmt.Errorf("invalid field declaration on %s", schema.Name)
	}
	if _, ok := schema.fields[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateField, name)
	}
	schema.fields[name] = field
	schema.order = append(schema.order, name)
	return nil
}

// MustAddField is AddField, panicking on a bad declaration. It returns the
// schema for chaining.
func (schema *Schema) MustAddField(name string, field *Field) *Schema {
	if err := schema.AddField(name, field); err != nil {
		panic(err)
	}
	return schema
}

// AddTrigger declares a trigger. Every field the trigger names must already
// be declared on the schema.
func (schema *Schema) AddTrigger(trigger *Trigger) error {
	if trigger == nil {
		return ErrInvalidTrigger
	}
	for _, name := range trigger.names {
		if _, ok := schema.fields[name]; !ok {
			return fmt.Errorf("%w: undeclared field %s", ErrInvalidTrigger, name)
		}
	}
	schema.triggers = append(schema.triggers, trigger)
	return nil
}

// MustAddTrigger is AddTrigger, panicking on a bad declaration. It returns
// the schema for chaining.
func (schema *Schema) MustAddTrigger(trigger *Trigger) *Schema {
	if err := schema.AddTrigger(trigger); err != nil {
		panic(err)
	}
	return schema
}

// Field looks up a declared field, nil when absent.
func (schema *Schema) Field(name string) *Field {
	return schema.fields[name]
}

// FieldNames returns the declared field names in declaration order.
func (schema *Schema) FieldNames() []string {
	names := make([]string, len(schema.order))
	copy(names, schema.order)
	return names
}

// Triggers returns the declared triggers.
func (schema *Schema) Triggers() []*Trigger {
	triggers := make([]*Trigger, len(schema.triggers))
	copy(triggers, schema.triggers)
	return triggers
}

// Namer returns the schema's naming strategy.
func (schema *Schema) Namer() Namer {
	return schema.namer
}

var schemaRegistry sync.Map

// Register stores a schema under its name for process-wide lookup. Register
// each schema once, at definition time.
func Register(schema *Schema) {
	schemaRegistry.Store(schema.Name, schema)
}

// LookupSchema returns a registered schema by name.
func LookupSchema(name string) (*Schema, bool) {
	v, ok := schemaRegistry.Load(name)
	if !ok {
		return nil, false
	}
	schema, ok := v.(*Schema)
	return schema, ok
}
