package formulaic

import (
	"regexp"
	"time"
)

// Validator reports whether a formatted value is acceptable for a field.
// Validators only see truthy values; falsy values are settled by the
// required flag before any validator runs.
type Validator func(value interface{}) bool

// canonical hyphenated 8-4-4-4-12 form, full-string, case-insensitive
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateBool accepts bool values.
func ValidateBool(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

// ValidateInteger accepts signed integer values.
func ValidateInteger(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64:
		return true
	}
	return false
}

// ValidateLong accepts signed integer values.
func ValidateLong(value interface{}) bool {
	return ValidateInteger(value)
}

// ValidateFloat accepts float values.
func ValidateFloat(value interface{}) bool {
	switch value.(type) {
	case float32, float64:
		return true
	}
	return false
}

// ValidateString accepts string values.
func ValidateString(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

// ValidateText accepts string values.
func ValidateText(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

// ValidateTime accepts time.Time values.
func ValidateTime(value interface{}) bool {
	_, ok := value.(time.Time)
	return ok
}

// ValidateList accepts slice values.
func ValidateList(value interface{}) bool {
	_, ok := value.([]interface{})
	return ok
}

// ValidateDictionary accepts string-keyed map values.
func ValidateDictionary(value interface{}) bool {
	_, ok := value.(map[string]interface{})
	return ok
}

// ValidateUUID accepts strings matching the canonical hyphenated UUID shape.
func ValidateUUID(value interface{}) bool {
	s, ok := value.(string)
	return ok && uuidPattern.MatchString(s)
}
