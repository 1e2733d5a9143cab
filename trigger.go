package formulaic

import "fmt"

// TriggerHandler runs when a trigger fires, with the prior and new value of
// the field whose write completed the trigger's field set.
type TriggerHandler func(oldValue, newValue interface{}, model *Model)

// Trigger pairs a non-empty set of field names with a handler. It fires on
// each write that changes a member field once every named field has been
// processed within the model's mutation session; re-satisfying writes fire
// it again, with no deduplication.
type Trigger struct {
	names   []string
	fields  map[string]struct{}
	handler TriggerHandler
}

// NewTrigger declares a trigger over fieldNames.
func NewTrigger(fieldNames []string, handler TriggerHandler) (*Trigger, error) {
	if len(fieldNames) == 0 {
		return nil, fmt.Errorf("%w: no field names", ErrInvalidTrigger)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: no handler", ErrInvalidTrigger)
	}
	trigger := &Trigger{handler: handler, fields: make(map[string]struct{}, len(fieldNames))}
	for _, name := range fieldNames {
		if _, ok := trigger.fields[name]; ok {
			continue
		}
		trigger.fields[name] = struct{}{}
		trigger.names = append(trigger.names, name)
	}
	return trigger, nil
}

// MustNewTrigger is NewTrigger, panicking on a bad declaration.
func MustNewTrigger(fieldNames []string, handler TriggerHandler) *Trigger {
	trigger, err := NewTrigger(fieldNames, handler)
	if err != nil {
		panic(err)
	}
	return trigger
}

// Fields returns the trigger's field names in declaration order.
func (trigger *Trigger) Fields() []string {
	names := make([]string, len(trigger.names))
	copy(names, trigger.names)
	return names
}

func (trigger *Trigger) contains(name string) bool {
	_, ok := trigger.fields[name]
	return ok
}

func (trigger *Trigger) satisfied(processed map[string]struct{}) bool {
	for name := range trigger.fields {
		if _, ok := processed[name]; !ok {
			return false
		}
	}
	return true
}

func (trigger *Trigger) fire(oldValue, newValue interface{}, model *Model) {
	trigger.handler(oldValue, newValue, model)
}
