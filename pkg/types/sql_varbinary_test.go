package types

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestSQLVarbinaryString(t *testing.T) {
	tests := []struct {
		name     string
		value    []byte
		expected string
	}{
		{"empty", nil, ""},
		{"single byte", []byte{0xab}, "ab"},
		{"one group", sequence(8), "00 01 02 03 04 05 06 07"},
		{"two groups", sequence(9), "00 01 02 03 04 05 06 07   08"},
		{
			name:  "line break",
			value: sequence(33),
			expected: strings.Join([]string{
				"00 01 02 03 04 05 06 07   08 09 0a 0b 0c 0d 0e 0f   10 11 12 13 14 15 16 17   18 19 1a 1b 1c 1d 1e 1f",
				"20",
			}, "\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSQLVarbinary(tt.value).String())
		})
	}
}

func TestSQLVarbinaryEqual(t *testing.T) {
	assert.True(t, NewSQLVarbinary(nil).Equal(NewSQLVarbinary([]byte{})))
	assert.True(t, NewSQLVarbinary([]byte{1, 2}).Equal(NewSQLVarbinary([]byte{1, 2})))
	assert.False(t, NewSQLVarbinary([]byte{1, 2}).Equal(NewSQLVarbinary([]byte{1, 2, 3})))
}

func TestSQLVarbinaryJSON(t *testing.T) {
	value := NewSQLVarbinary([]byte("hello"))

	data, err := json.Marshal(value)
	require.NoError(t, err)
	assert.JSONEq(t, `"aGVsbG8="`, string(data))

	var decoded SQLVarbinary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, value.Equal(decoded))

	wrapped, err := json.Marshal(map[string]interface{}{"value": value})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"aGVsbG8="}`, string(wrapped))

	assert.Error(t, json.Unmarshal([]byte(`12`), &decoded))
}
