package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcore/atomcore/node"
)

func TestDataType_StringRoundTrip(t *testing.T) {
	cases := []node.DataType{
		node.TypeInt,
		node.TypeGeometry,
		node.ArrayOf(node.TypeFloat),
		node.ArrayOf(node.ArrayOf(node.TypeInt)),
		node.FuncOf(node.TypeBool, node.TypeInt),
		node.FuncOf(node.TypeBool),
		node.FuncOf(node.TypeBool, node.TypeInt, node.TypeFloat),
	}
	for _, dt := range cases {
		s := dt.String()
		parsed, err := node.ParseDataType(s)
		require.NoError(t, err, "parsing %q", s)
		assert.True(t, dt.Equal(parsed), "round trip %q produced %q", s, parsed.String())
	}
}

func TestDataType_ParseLiterals(t *testing.T) {
	tests := map[string]string{
		"Int":               "Int",
		"[Int]":             "[Int]",
		"Int -> Bool":       "Int -> Bool",
		"() -> Int":         "() -> Int",
		"(Int,Float) => Bool": "(Int,Float) -> Bool",
	}
	for input, wantString := range tests {
		dt, err := node.ParseDataType(input)
		require.NoError(t, err, input)
		assert.Equal(t, wantString, dt.String(), input)
	}
}

func TestDataType_ParseUnknownFails(t *testing.T) {
	_, err := node.ParseDataType("Bogus")
	assert.Error(t, err)
}

func TestDataType_ConversionRules(t *testing.T) {
	assert.True(t, node.TypeInt.CanBeConvertedTo(node.TypeInt))
	assert.True(t, node.TypeInt.CanBeConvertedTo(node.TypeFloat))
	assert.True(t, node.TypeFloat.CanBeConvertedTo(node.TypeInt))
	assert.True(t, node.TypeIVec2.CanBeConvertedTo(node.TypeVec2))
	assert.True(t, node.TypeIVec3.CanBeConvertedTo(node.TypeVec3))
	assert.False(t, node.TypeInt.CanBeConvertedTo(node.TypeString))

	assert.True(t, node.TypeInt.CanBeConvertedTo(node.ArrayOf(node.TypeInt)))
	assert.True(t, node.TypeInt.CanBeConvertedTo(node.ArrayOf(node.TypeFloat)))
	assert.False(t, node.ArrayOf(node.TypeInt).CanBeConvertedTo(node.TypeInt))
}

func TestDataType_FunctionPartialApplication(t *testing.T) {
	f := node.FuncOf(node.TypeBool, node.TypeInt, node.TypeFloat, node.TypeString)
	g := node.FuncOf(node.TypeBool, node.TypeInt, node.TypeFloat)
	assert.True(t, f.CanBeConvertedTo(g), "extra trailing parameter should still satisfy partial application")

	h := node.FuncOf(node.TypeBool, node.TypeFloat, node.TypeInt)
	assert.False(t, f.CanBeConvertedTo(h), "parameter order must match exactly")

	tooFew := node.FuncOf(node.TypeBool, node.TypeInt)
	assert.False(t, tooFew.CanBeConvertedTo(g))
}
