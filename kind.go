package formulaic

// Kind tags a field with the semantic value category its formatter and
// validator pair targets.
type Kind string

const (
	Bool       Kind = "bool"
	Integer    Kind = "integer"
	Long       Kind = "long"
	Float      Kind = "float"
	String     Kind = "string"
	Text       Kind = "text"
	UUID       Kind = "uuid"
	Time       Kind = "time"
	List       Kind = "list"
	Dictionary Kind = "dictionary"
)

// kindFormatter returns the scalar formatter registered for a kind.
func kindFormatter(kind Kind) Formatter {
	switch kind {
	case Bool:
		return FormatBool
	case Integer:
		return FormatInteger
	case Long:
		return FormatLong
	case Float:
		return FormatFloat
	case String, Text, UUID:
		return FormatString
	case Time:
		return FormatTime
	}
	return func(value interface{}) (interface{}, error) { return value, nil }
}

// kindValidator returns the scalar validator registered for a kind.
func kindValidator(kind Kind) Validator {
	switch kind {
	case Bool:
		return ValidateBool
	case Integer:
		return ValidateInteger
	case Long:
		return ValidateLong
	case Float:
		return ValidateFloat
	case String:
		return ValidateString
	case Text:
		return ValidateText
	case UUID:
		return ValidateUUID
	case Time:
		return ValidateTime
	case List:
		return ValidateList
	case Dictionary:
		return ValidateDictionary
	}
	return func(interface{}) bool { return true }
}
