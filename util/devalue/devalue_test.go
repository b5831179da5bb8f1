package devalue

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJSON(t *testing.T, payload string) any {
	t.Helper()
	var decoded any
	require.NoError(t, sonic.Unmarshal([]byte(payload), &decoded))
	parsed, err := Parse(decoded)
	require.NoError(t, err)
	return parsed
}

func TestParsePrimitives(t *testing.T) {
	assert.Equal(t, float64(42), parseJSON(t, `[42]`))
	assert.Equal(t, "hello", parseJSON(t, `["hello"]`))
	assert.Equal(t, true, parseJSON(t, `[true]`))
	assert.Nil(t, parseJSON(t, `[null]`))
}

func TestParseConstants(t *testing.T) {
	assert.Nil(t, parseJSON(t, `-1`)) // undefined
	assert.True(t, math.IsNaN(parseJSON(t, `-3`).(float64)))
	assert.True(t, math.IsInf(parseJSON(t, `-4`).(float64), 1))
	assert.True(t, math.IsInf(parseJSON(t, `-5`).(float64), -1))
	assert.True(t, math.Signbit(parseJSON(t, `-6`).(float64)))
}

func TestParseObject(t *testing.T) {
	parsed := parseJSON(t, `[{"a":1,"b":2},"x","y"]`)
	assert.Equal(t, map[string]any{"a": "x", "b": "y"}, parsed)
}

func TestParseArrayWithHoles(t *testing.T) {
	parsed := parseJSON(t, `[[1,-2,2],"a","b"]`)
	assert.Equal(t, []any{"a", nil, "b"}, parsed)
}

func TestParseDate(t *testing.T) {
	parsed := parseJSON(t, `[["Date","2023-01-15T10:30:00.000Z"]]`)
	date, ok := parsed.(time.Time)
	require.True(t, ok)
	assert.Equal(t, int64(1673778600), date.Unix())
}

func TestParseRegExp(t *testing.T) {
	parsed := parseJSON(t, `[["RegExp","ab+c"]]`)
	compiled, ok := parsed.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, compiled.MatchString("abbbc"))
}

func TestParseBigInt(t *testing.T) {
	assert.Equal(t, int64(9007199254740993), parseJSON(t, `[["BigInt","9007199254740993"]]`))
}

func TestParseSet(t *testing.T) {
	parsed := parseJSON(t, `[["Set",1,2],"a","b"]`)
	assert.Equal(t, []any{"a", "b"}, parsed)
}

func TestParseMap(t *testing.T) {
	parsed := parseJSON(t, `[["Map",1,2],"key","value"]`)
	assert.Equal(t, []any{[]any{"key", "value"}}, parsed)
}

func TestParseUint8Array(t *testing.T) {
	parsed := parseJSON(t, `[["Uint8Array","AQID"]]`)
	assert.Equal(t, []byte{1, 2, 3}, parsed)
}

func TestParseNullPrototypeObject(t *testing.T) {
	parsed := parseJSON(t, `[["null","a",1],"x"]`)
	assert.Equal(t, map[string]any{"a": "x"}, parsed)
}

func TestParseBoxedPrimitive(t *testing.T) {
	assert.Equal(t, float64(42), parseJSON(t, `[["Object",42]]`))
}

func TestParseRepeatedReference(t *testing.T) {
	parsed := parseJSON(t, `[[1,1],"dup"]`)
	array, ok := parsed.([]any)
	require.True(t, ok)
	require.Len(t, array, 2)
	assert.Equal(t, "dup", array[0])
	assert.Equal(t, "dup", array[1])
}

func TestParseCyclicalReference(t *testing.T) {
	parsed := parseJSON(t, `[{"self":0}]`)
	object, ok := parsed.(map[string]any)
	require.True(t, ok)
	inner, ok := object["self"].(map[string]any)
	require.True(t, ok)
	// the object refers to itself
	assert.Equal(t, len(object), len(inner))
}

func TestParseNestedStructure(t *testing.T) {
	parsed := parseJSON(t, `[{"items":1,"total":4},[2,3],"first","second",2]`)
	assert.Equal(t, map[string]any{
		"items": []any{"first", "second"},
		"total": float64(2),
	}, parsed)
}

func TestParseErrors(t *testing.T) {
	var decoded any
	require.NoError(t, sonic.Unmarshal([]byte(`3`), &decoded))
	_, err := Parse(decoded)
	assert.Error(t, err)

	require.NoError(t, sonic.Unmarshal([]byte(`[]`), &decoded))
	_, err = Parse(decoded)
	assert.Error(t, err)

	require.NoError(t, sonic.Unmarshal([]byte(`[["Unknown",1],2]`), &decoded))
	_, err = Parse(decoded)
	assert.Error(t, err)
}

func TestParseWithReviver(t *testing.T) {
	var decoded any
	require.NoError(t, sonic.Unmarshal([]byte(`[["Custom",1],"payload"]`), &decoded))
	parsed, err := Parse(decoded, map[string]Reviver{
		"Custom": func(args []any) (any, error) {
			return args[0], nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "payload", parsed)
}
