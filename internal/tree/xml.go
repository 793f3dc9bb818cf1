package tree

// Element is one XML element. Prefix is the literal namespace prefix as
// written in the document (empty when unprefixed); no namespace URI is
// resolved. Text is the element's own character data in document order,
// excluding the text of child elements.
type Element struct {
	Prefix   string
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr is an XML attribute. Namespace declarations are attributes too:
// xmlns:p="..." has Prefix "xmlns" and Name "p".
type Attr struct {
	Prefix string
	Name   string
	Value  string
}

// Child returns the first child element with the given prefix and local name
func (e *Element) Child(prefix, name string) (*Element, bool) {
	if e == nil {
		return nil, false
	}
	for _, c := range e.Children {
		if c.Prefix == prefix && c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Attr returns the value of the attribute with the given prefix and local name
func (e *Element) Attr(prefix, name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Prefix == prefix && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
