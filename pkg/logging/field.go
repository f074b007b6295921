package logging

import (
	"strconv"
	"strings"
)

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// DurationField creates a Field holding a duration in
// seconds.
func DurationField(key string, seconds float64) Field {
	return Field{Key: key, Value: seconds}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// ErrorField creates a Field for an error value. If err is nil,
// the value is set to the string "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// ScenarioField tags an entry with the scenario it belongs to.
func ScenarioField(id string) Field {
	return Field{Key: "scenario_id", Value: id}
}

// StatusField records a scenario status such as "passed" or
// "xfail".
func StatusField(status string) Field {
	return Field{Key: "status", Value: status}
}

// CallField renders an operation call as "name(a, b, ...)".
func CallField(op string, args []int32) Field {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(int64(a), 10))
	}
	b.WriteByte(')')
	return Field{Key: "call", Value: b.String()}
}
