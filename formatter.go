package formulaic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/formulaic/formulaic/utils"
)

// Formatter coerces a raw value into a field's kind. Formatting runs when an
// attribute is about to be stored on a Model; for List fields the scalar
// formatter is mapped across each element.
type Formatter func(value interface{}) (interface{}, error)

// FormatBool casts a value by truthiness. It never fails.
func FormatBool(value interface{}) (interface{}, error) {
	return !utils.IsZero(value), nil
}

// FormatInteger casts a value to an int.
func FormatInteger(value interface{}) (interface{}, error) {
	n, ok := toInt64(value)
	if !ok {
		return nil, fmt.Errorf("could not convert %v to an integer value", value)
	}
	return int(n), nil
}

// FormatLong casts a value to an int64.
func FormatLong(value interface{}) (interface{}, error) {
	n, ok := toInt64(value)
	if !ok {
		return nil, fmt.Errorf("could not convert %v to a long value", value)
	}
	return n, nil
}

// FormatFloat casts a value to a float64.
func FormatFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("could not convert %v to a float value", value)
}

// FormatString casts a value to a string. It never fails.
func FormatString(value interface{}) (interface{}, error) {
	return utils.ToString(value), nil
}

// FormatText casts a value to a string. It never fails.
func FormatText(value interface{}) (interface{}, error) {
	return utils.ToString(value), nil
}

// FormatTime accepts a time.Time unchanged and parses strings leniently.
func FormatTime(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	case string:
		t, err := now.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("could not convert %v to a time value", value)
		}
		return t, nil
	}
	return nil, fmt.Errorf("could not convert %v to a time value", value)
}

// FormatLower lowercases a string value.
func FormatLower(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return strings.ToLower(s), nil
	}
	return nil, fmt.Errorf("could not lowercase value %v", value)
}

// FormatUpper uppercases a string value.
func FormatUpper(value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		return strings.ToUpper(s), nil
	}
	return nil, fmt.Errorf("could not uppercase value %v", value)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
