package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{name: "null", a: NullValue, b: Null{}, expected: true},
		{name: "null vs string", a: NullValue, b: String(""), expected: false},
		{name: "strings", a: String("Kermit"), b: String("Kermit"), expected: true},
		{name: "different strings", a: String("Kermit"), b: String("Waldo"), expected: false},
		{name: "bools", a: Bool(true), b: Bool(false), expected: false},
		{name: "numbers by value", a: Number("10961"), b: Number("10961.0"), expected: true},
		{name: "numbers with exponent", a: Number("3.14e2"), b: Number("314"), expected: true},
		{name: "different numbers", a: Number("1"), b: Number("2"), expected: false},
		{name: "number vs string", a: Number("1"), b: String("1"), expected: false},
		{name: "lists", a: List{String("a"), Number("1")}, b: List{String("a"), Number("1")}, expected: true},
		{name: "list order matters", a: List{String("a"), String("b")}, b: List{String("b"), String("a")}, expected: false},
		{name: "list length", a: List{String("a")}, b: List{}, expected: false},
		{name: "empty lists", a: List{}, b: List(nil), expected: true},
		{
			name:     "contexts ignore order",
			a:        ContextOf(Pair{"customer", String("Kermit")}, Pair{"language", String("en")}),
			b:        ContextOf(Pair{"language", String("en")}, Pair{"customer", String("Kermit")}),
			expected: true,
		},
		{
			name:     "contexts with different keys",
			a:        ContextOf(Pair{"customer", String("Kermit")}),
			b:        ContextOf(Pair{"name", String("Kermit")}),
			expected: false,
		},
		{
			name:     "nested contexts",
			a:        ContextOf(Pair{"address", ContextOf(Pair{"city", String("Berlin")})}),
			b:        ContextOf(Pair{"address", ContextOf(Pair{"city", String("Paris")})}),
			expected: false,
		},
		{name: "both nil", a: nil, b: nil, expected: true},
		{name: "one nil", a: NullValue, b: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
			assert.Equal(t, tt.expected, Equal(tt.b, tt.a), "Equal must be symmetric")
		})
	}
}

func TestContext_SetOverwritesInPlace(t *testing.T) {
	c := NewContext(0)
	c.Set("customer", String("A"))
	c.Set("provider", String("P"))
	c.Set("customer", String("B"))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"customer", "provider"}, c.Keys())
	v, ok := c.Get("customer")
	assert.True(t, ok)
	assert.Equal(t, String("B"), v)
}

func TestContext_Range(t *testing.T) {
	c := ContextOf(Pair{"a", Number("1")}, Pair{"b", Number("2")}, Pair{"c", Number("3")})

	var visited []string
	c.Range(func(key string, _ Value) bool {
		visited = append(visited, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestContext_NilReceiver(t *testing.T) {
	var c *Context
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Keys())
	_, ok := c.Get("x")
	assert.False(t, ok)
}

func TestNumberConstructors(t *testing.T) {
	assert.Equal(t, Number("42"), NumberFromInt(42))
	assert.Equal(t, Number("3.14"), NumberFromFloat(3.14))

	f, err := Number("2.5").Float64()
	assert.NoError(t, err)
	assert.Equal(t, 2.5, f)
}
