package value

// Context is a string-keyed mapping of values. Lookup is by name; Keys
// reports the keys in the order they were first inserted.
type Context struct {
	keys    []string
	entries map[string]Value
}

// NewContext creates an empty Context with room for size entries
func NewContext(size int) *Context {
	return &Context{
		keys:    make([]string, 0, size),
		entries: make(map[string]Value, size),
	}
}

// Pair is one key/value entry used to build a Context
type Pair struct {
	Key   string
	Value Value
}

// ContextOf creates a Context from pairs, applying them in order with Set
// semantics.
func ContextOf(pairs ...Pair) *Context {
	c := NewContext(len(pairs))
	for _, p := range pairs {
		c.Set(p.Key, p.Value)
	}
	return c
}

// Kind implements Value
func (c *Context) Kind() Kind { return ContextKind }

// Set stores v under key. Setting an existing key replaces its value and
// keeps the key at its original position.
func (c *Context) Set(key string, v Value) {
	if _, exists := c.entries[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = v
}

// Get returns the value stored under key
func (c *Context) Get(key string) (Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of keys
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns a copy of the keys in insertion order
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false
func (c *Context) Range(fn func(key string, v Value) bool) {
	if c == nil {
		return
	}
	for _, key := range c.keys {
		if !fn(key, c.entries[key]) {
			return
		}
	}
}
