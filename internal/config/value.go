package config

import (
	"encoding/json"
	"strconv"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
)

// Value is a typed configuration field. Yes/No flags become booleans, pure
// digit runs become integers, everything else stays a string.
type Value struct {
	kind kind
	b    bool
	i    int
	s    string
}

func BoolValue(b bool) Value {
	return Value{kind: kindBool, b: b}
}

func IntValue(i int) Value {
	return Value{kind: kindInt, i: i}
}

func StringValue(s string) Value {
	return Value{kind: kindString, s: s}
}

// ParseValue types a raw token from the decoded configuration.
func ParseValue(raw string) Value {
	switch {
	case raw == "No":
		return BoolValue(false)
	case raw == "Yes":
		return BoolValue(true)
	case isDigits(raw):
		i, err := strconv.Atoi(raw)
		if err != nil {
			return StringValue(raw)
		}
		return IntValue(i)
	default:
		return StringValue(raw)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindBool:
		return json.Marshal(v.b)
	case kindInt:
		return json.Marshal(v.i)
	default:
		return json.Marshal(v.s)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
