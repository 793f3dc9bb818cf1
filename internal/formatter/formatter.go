package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/treeval/internal/value"
)

// Style selects the output syntax
type Style string

const (
	// StyleText renders a FEEL-like literal: {customer: "Kermit"}
	StyleText Style = "text"
	StyleJSON Style = "json"
	StyleYAML Style = "yaml"
)

// plainKey matches context keys that can be written without quotes
var plainKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Formatter renders values. Keys are written in context iteration order.
type Formatter struct {
	// Indent is the per-level indentation; empty renders on one line
	Indent string
}

// NewFormatter creates a new Formatter instance
func NewFormatter(indent string) *Formatter {
	return &Formatter{Indent: indent}
}

// Format renders v in the given style
func (f *Formatter) Format(v value.Value, style Style) (string, error) {
	if v == nil {
		return "", fmt.Errorf("cannot format a nil value")
	}
	switch style {
	case StyleText, "":
		var b strings.Builder
		if err := f.writeText(&b, v, 0); err != nil {
			return "", err
		}
		return b.String(), nil
	case StyleJSON:
		return f.formatJSON(v)
	case StyleYAML:
		return f.formatYAML(v)
	default:
		return "", fmt.Errorf("unknown output format '%s'", style)
	}
}

func (f *Formatter) writeText(b *strings.Builder, v value.Value, level int) error {
	switch val := v.(type) {
	case value.Null:
		b.WriteString("null")
	case value.String:
		b.WriteString(strconv.Quote(string(val)))
	case value.Number:
		b.WriteString(string(val))
	case value.Bool:
		b.WriteString(strconv.FormatBool(bool(val)))
	case value.List:
		if len(val) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[")
		for i, item := range val {
			f.separator(b, i, level+1)
			if err := f.writeText(b, item, level+1); err != nil {
				return err
			}
		}
		f.closing(b, level)
		b.WriteString("]")
	case *value.Context:
		if val.Len() == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{")
		i := 0
		var err error
		val.Range(func(key string, item value.Value) bool {
			f.separator(b, i, level+1)
			i++
			b.WriteString(textKey(key))
			b.WriteString(": ")
			err = f.writeText(b, item, level+1)
			return err == nil
		})
		if err != nil {
			return err
		}
		f.closing(b, level)
		b.WriteString("}")
	default:
		return fmt.Errorf("cannot format value of kind %s", v.Kind())
	}
	return nil
}

// separator writes what goes before the i-th member of a list or context
func (f *Formatter) separator(b *strings.Builder, i, level int) {
	if i > 0 {
		b.WriteString(",")
		if f.Indent == "" {
			b.WriteString(" ")
		}
	}
	if f.Indent != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(f.Indent, level))
	}
}

func (f *Formatter) closing(b *strings.Builder, level int) {
	if f.Indent != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(f.Indent, level))
	}
}

func textKey(key string) string {
	if plainKey.MatchString(key) {
		return key
	}
	return strconv.Quote(key)
}

func (f *Formatter) formatJSON(v value.Value) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return "", err
	}
	if f.Indent == "" {
		return buf.String(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", f.Indent); err != nil {
		return "", fmt.Errorf("failed to indent JSON: %w", err)
	}
	return out.String(), nil
}

func writeJSON(buf *bytes.Buffer, v value.Value) error {
	switch val := v.(type) {
	case value.Null:
		buf.WriteString("null")
	case value.String:
		return writeJSONString(buf, string(val))
	case value.Number:
		// Literals that are not valid JSON numbers (Inf, NaN) are written as strings
		if !json.Valid([]byte(val)) {
			return writeJSONString(buf, string(val))
		}
		buf.WriteString(string(val))
	case value.Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case value.List:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *value.Context:
		buf.WriteByte('{')
		i := 0
		var err error
		val.Range(func(key string, item value.Value) bool {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err = writeJSONString(buf, key); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = writeJSON(buf, item)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot format value of kind %s", v.Kind())
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

func (f *Formatter) formatYAML(v value.Value) (string, error) {
	node, err := yamlNode(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent(f.Indent))
	if err := encoder.Encode(node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func yamlIndent(indent string) int {
	n := len(strings.ReplaceAll(indent, "\t", "    "))
	if n < 2 {
		return 2
	}
	return n
}

func yamlNode(v value.Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case value.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(val)}, nil
	case value.Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(string(val), 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(val)}, nil
	case value.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(val))}, nil
	case value.List:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(val) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, item := range val {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *value.Context:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if val.Len() == 0 {
			node.Style = yaml.FlowStyle
		}
		var err error
		val.Range(func(key string, item value.Value) bool {
			var child *yaml.Node
			child, err = yamlNode(item)
			if err != nil {
				return false
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, fmt.Errorf("cannot format value of kind %s", v.Kind())
	}
}
