package formulaic

import (
	"github.com/google/uuid"

	"github.com/formulaic/formulaic/utils"
)

// Field describes one declared attribute of a schema: its kind, default,
// formatting and validation behavior. A Field is immutable once declared and
// shared by every Model built from the owning schema.
type Field struct {
	Kind     Kind
	Elem     Kind // element kind for List fields
	Required bool

	defaultFn func() interface{}
	formatter Formatter
	validator Validator
}

// FieldOption configures a Field at declaration time.
type FieldOption func(*Field)

// WithDefault sets a fixed default value.
func WithDefault(value interface{}) FieldOption {
	return func(field *Field) {
		field.defaultFn = func() interface{} { return value }
	}
}

// WithDefaultFunc sets a default-producing function, evaluated once per
// model at construction time.
func WithDefaultFunc(fn func() interface{}) FieldOption {
	return func(field *Field) {
		if fn != nil {
			field.defaultFn = fn
		}
	}
}

// WithRequired marks the field required: falsy values fail validation.
func WithRequired() FieldOption {
	return func(field *Field) { field.Required = true }
}

// WithFormatter overrides the formatter the field's kind would select.
func WithFormatter(fn Formatter) FieldOption {
	return func(field *Field) {
		if fn != nil {
			field.formatter = fn
		}
	}
}

// WithValidator overrides the validator the field's kind would select.
func WithValidator(fn Validator) FieldOption {
	return func(field *Field) {
		if fn != nil {
			field.validator = fn
		}
	}
}

// GeneratedUUID defaults the field to a fresh random UUID per model.
func GeneratedUUID() FieldOption {
	return WithDefaultFunc(func() interface{} { return uuid.NewString() })
}

// NewField declares a field of the given kind wired to the kind's formatter
// and validator pair.
func NewField(kind Kind, opts ...FieldOption) *Field {
	field := &Field{
		Kind:      kind,
		defaultFn: func() interface{} { return nil },
		formatter: kindFormatter(kind),
		validator: kindValidator(kind),
	}
	for _, opt := range opts {
		opt(field)
	}
	return field
}

// NewBoolField declares a truthiness-cast boolean field.
func NewBoolField(opts ...FieldOption) *Field { return NewField(Bool, opts...) }

// NewIntegerField declares an int field.
func NewIntegerField(opts ...FieldOption) *Field { return NewField(Integer, opts...) }

// NewLongField declares an int64 field.
func NewLongField(opts ...FieldOption) *Field { return NewField(Long, opts...) }

// NewFloatField declares a float64 field.
func NewFloatField(opts ...FieldOption) *Field { return NewField(Float, opts...) }

// NewStringField declares a string field.
func NewStringField(opts ...FieldOption) *Field { return NewField(String, opts...) }

// NewTextField declares a text field.
func NewTextField(opts ...FieldOption) *Field { return NewField(Text, opts...) }

// NewUUIDField declares a string field validated against the canonical
// hyphenated UUID shape.
func NewUUIDField(opts ...FieldOption) *Field { return NewField(UUID, opts...) }

// NewTimeField declares a time field with lenient string parsing.
func NewTimeField(opts ...FieldOption) *Field { return NewField(Time, opts...) }

// NewDictionaryField declares a string-keyed map field.
func NewDictionaryField(opts ...FieldOption) *Field { return NewField(Dictionary, opts...) }

// NewListField declares a list field whose elements are formatted and
// validated with elem's scalar pair.
func NewListField(elem Kind, opts ...FieldOption) *Field {
	field := &Field{
		Kind:      List,
		Elem:      elem,
		defaultFn: func() interface{} { return nil },
		formatter: kindFormatter(elem),
		validator: kindValidator(elem),
	}
	for _, opt := range opts {
		opt(field)
	}
	return field
}

// Format coerces value per the field configuration. A nil input
// short-circuits to nil without invoking the formatter; List fields map the
// element formatter across each item.
func (field *Field) Format(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if field.Kind == List {
		if items, ok := value.([]interface{}); ok {
			formatted := make([]interface{}, len(items))
			for i, item := range items {
				v, err := field.formatter(item)
				if err != nil {
					return nil, err
				}
				formatted[i] = v
			}
			return formatted, nil
		}
	}
	return field.formatter(value)
}

// Validate reports whether value is acceptable for the field. A falsy value
// fails only when the field is required; type validation applies to truthy
// values, element-wise for List fields.
func (field *Field) Validate(value interface{}) bool {
	if field.Required && utils.IsZero(value) {
		return false
	}
	if utils.IsZero(value) {
		return true
	}
	if field.Kind == List {
		if items, ok := value.([]interface{}); ok {
			for _, item := range items {
				if !field.validator(item) {
					return false
				}
			}
			return true
		}
	}
	return field.validator(value)
}

// Default produces the field's default value.
func (field *Field) Default() interface{} {
	return field.defaultFn()
}
