package formulaic

import (
	"context"
	"fmt"

	"github.com/formulaic/formulaic/logger"
	"github.com/formulaic/formulaic/utils"
)

// Model is one entity instance: the committed field data, the uncommitted
// changed data and the set of fields processed since construction. Every
// write goes through Set, which formats, validates, tracks the change and
// fires any satisfied trigger. A Model is not safe for concurrent use;
// confine each instance to one logical owner.
type Model struct {
	schema    *Schema
	persistor Persistor
	log       logger.Interface

	data        map[string]interface{}
	changed     map[string]interface{}
	processed   map[string]struct{}
	initialized bool
}

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithPersistor supplies the persistor Persist requires.
func WithPersistor(persistor Persistor) ModelOption {
	return func(model *Model) { model.persistor = persistor }
}

// WithLogger overrides the default logger.
func WithLogger(log logger.Interface) ModelOption {
	return func(model *Model) {
		if log != nil {
			model.log = log
		}
	}
}

// New builds a Model from schema, seeding every field from its default and
// then writing the matching keys of attrs in declaration order. Keys that do
// not name a declared field are ignored here; post-construction writes to
// them are rejected by Set. Construction writes land directly in field data
// but still count as processed, so triggers can fire during seeding.
func New(schema *Schema, attrs map[string]interface{}, opts ...ModelOption) (*Model, error) {
	if schema == nil {
		return nil, fmt.Errorf("nil schema")
	}
	model := &Model{
		schema:    schema,
		log:       logger.Default,
		data:      make(map[string]interface{}, len(schema.order)),
		changed:   map[string]interface{}{},
		processed: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(model)
	}
	for _, name := range schema.order {
		model.data[name] = schema.fields[name].Default()
	}
	for _, name := range schema.order {
		if value, ok := attrs[name]; ok {
			if err := model.Set(name, value); err != nil {
				return nil, err
			}
		}
	}
	model.initialized = true
	return model, nil
}

// Set writes one field value: format, validate, track, then fire every
// trigger whose field set the processed set now covers. After construction,
// writing the current effective value is a no-op that also clears the
// field's pending change and processed mark.
func (model *Model) Set(name string, value interface{}) error {
	field := model.schema.Field(name)
	if field == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	formatted, err := field.Format(value)
	if err != nil {
		return &FormatError{Field: name, Value: value, Err: err}
	}
	if !field.Validate(formatted) {
		return &ValidationError{Field: name, Value: value}
	}
	oldValue, pending := model.changed[name]
	if !pending {
		oldValue = model.data[name]
	}
	switch {
	case !model.initialized:
		model.data[name] = formatted
	case !utils.AssertEqual(formatted, oldValue):
		model.changed[name] = formatted
	default:
		delete(model.changed, name)
		delete(model.processed, name)
		return nil
	}
	model.processed[name] = struct{}{}
	for _, trigger := range model.schema.triggers {
		if trigger.contains(name) && trigger.satisfied(model.processed) {
			trigger.fire(oldValue, formatted, model)
		}
	}
	return nil
}

// Get returns the effective value of a declared field: a pending change
// wins over committed data.
func (model *Model) Get(name string) (interface{}, bool) {
	if model.schema.Field(name) == nil {
		return nil, false
	}
	if value, ok := model.changed[name]; ok {
		return value, true
	}
	return model.data[name], true
}

// Merged returns committed field data overlaid with pending changes.
func (model *Model) Merged() map[string]interface{} {
	merged := make(map[string]interface{}, len(model.data)+len(model.changed))
	for name, value := range model.data {
		merged[name] = value
	}
	for name, value := range model.changed {
		merged[name] = value
	}
	return merged
}

// Changed returns a copy of the pending, not yet persisted writes.
func (model *Model) Changed() map[string]interface{} {
	changed := make(map[string]interface{}, len(model.changed))
	for name, value := range model.changed {
		changed[name] = value
	}
	return changed
}

// Validate reports whether every declared field holds under its validator
// against the merged data. It has no side effects and never fails.
func (model *Model) Validate() bool {
	merged := model.Merged()
	for _, name := range model.schema.order {
		if !model.schema.fields[name].Validate(merged[name]) {
			return false
		}
	}
	return true
}

// Persist writes the merged data through the configured persistor. A false
// return with a nil error means validation failed or the persistor produced
// no result; field data is replaced and pending changes cleared only on
// success. This is the only post-construction path that mutates field data.
func (model *Model) Persist(ctx context.Context) (bool, error) {
	if model.persistor == nil {
		return false, ErrMissingPersistor
	}
	if !model.Validate() {
		model.log.Warn(ctx, "persist skipped, %s failed validation", model.schema.Name)
		return false, nil
	}
	merged := model.Merged()
	keys, err := model.persistor.Persist(ctx, merged)
	if err != nil {
		return false, err
	}
	if keys == nil {
		return false, nil
	}
	for name, value := range keys {
		merged[name] = value
	}
	model.data = merged
	model.changed = map[string]interface{}{}
	return true, nil
}

// Schema returns the shared schema metadata.
func (model *Model) Schema() *Schema {
	return model.schema
}
