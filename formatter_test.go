package formulaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBool(t *testing.T) {
	truthy := []interface{}{true, 1, -1, "x", 0.1, []interface{}{nil}}
	for _, v := range truthy {
		formatted, err := FormatBool(v)
		require.NoError(t, err)
		assert.Equal(t, true, formatted, "value %#v", v)
	}

	falsy := []interface{}{false, 0, "", 0.0, []interface{}{}, nil}
	for _, v := range falsy {
		formatted, err := FormatBool(v)
		require.NoError(t, err)
		assert.Equal(t, false, formatted, "value %#v", v)
	}
}

func TestFormatInteger(t *testing.T) {
	formatted, err := FormatInteger(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, formatted)

	formatted, err = FormatInteger(true)
	require.NoError(t, err)
	assert.Equal(t, 1, formatted)

	_, err = FormatInteger("3.7")
	assert.Error(t, err)

	_, err = FormatInteger(map[string]interface{}{})
	assert.Error(t, err)
}

func TestFormatLong(t *testing.T) {
	formatted, err := FormatLong("9000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000), formatted)

	_, err = FormatLong("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "long")
}

func TestFormatFloat(t *testing.T) {
	formatted, err := FormatFloat("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, formatted)

	formatted, err = FormatFloat(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, formatted)

	_, err = FormatFloat("abc")
	assert.Error(t, err)
}

func TestFormatString(t *testing.T) {
	formatted, err := FormatString(42)
	require.NoError(t, err)
	assert.Equal(t, "42", formatted)

	formatted, err = FormatString(true)
	require.NoError(t, err)
	assert.Equal(t, "true", formatted)
}

func TestFormatLowerUpper(t *testing.T) {
	formatted, err := FormatLower("ABC")
	require.NoError(t, err)
	assert.Equal(t, "abc", formatted)

	formatted, err = FormatUpper("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", formatted)

	_, err = FormatLower(42)
	assert.Error(t, err)
	_, err = FormatUpper(42)
	assert.Error(t, err)
}
