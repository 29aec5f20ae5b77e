package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Typing(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{"no becomes false", "No", BoolValue(false)},
		{"yes becomes true", "Yes", BoolValue(true)},
		{"digits become int", "8080", IntValue(8080)},
		{"word stays string", "interval", StringValue("interval")},
		{"mixed stays string", "0x10", StringValue("0x10")},
		{"empty stays string", "", StringValue("")},
		{"overflowing digits stay string", "99999999999999999999999999", StringValue("99999999999999999999999999")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.raw))
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{IntValue(4444), "4444"},
		{StringValue("bbciKrgd"), `"bbciKrgd"`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.value)

		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))
	}
}
