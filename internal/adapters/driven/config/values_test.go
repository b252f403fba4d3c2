package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_TypedAccessors(t *testing.T) {
	v := Values{
		"s":      "text",
		"i":      int64(7),
		"f":      2.5,
		"fi":     int64(3),
		"b":      true,
		"list":   []any{"a", 1, "b"},
		"strs":   []string{"x"},
		"number": 9,
	}

	assert.Equal(t, "text", v.String("s"))
	assert.Equal(t, "", v.String("i"))
	assert.Equal(t, 7, v.Int("i"))
	assert.Equal(t, 9, v.Int("number"))
	assert.Equal(t, 0, v.Int("s"))
	assert.InDelta(t, 2.5, v.Float64("f"), 1e-9)
	assert.InDelta(t, 3.0, v.Float64("fi"), 1e-9)
	assert.True(t, v.Bool("b"))
	assert.False(t, v.Bool("missing"))
	assert.Equal(t, []string{"a", "b"}, v.StringSlice("list"))
	assert.Equal(t, []string{"x"}, v.StringSlice("strs"))
	assert.Nil(t, v.StringSlice("s"))
}

func TestFlattenNest_RoundTrip(t *testing.T) {
	nested := map[string]any{
		"backend": map[string]any{
			"url":             "http://localhost:8088",
			"timeout_seconds": int64(30),
		},
		"top": "level",
	}

	flat := Flatten(nested)
	assert.Equal(t, "http://localhost:8088", flat.String("backend.url"))
	assert.Equal(t, 30, flat.Int("backend.timeout_seconds"))
	assert.Equal(t, "level", flat.String("top"))

	assert.Equal(t, nested, flat.Nest())
}

func TestNest_LeafWinsOverPrefix(t *testing.T) {
	v := Values{"a": "leaf", "a.b": "nested"}

	out := v.Nest()

	assert.Equal(t, "leaf", out["a"])
}
