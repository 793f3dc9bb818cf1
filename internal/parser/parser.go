package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	stderrors "errors"

	"github.com/viant/afs"

	"github.com/mcncl/treeval/internal/errors"
	"github.com/mcncl/treeval/internal/tree"
)

// Format names the syntax of an input document
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ParseFormat validates a format name. An empty name means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatXML:
		return f, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown input kind '%s'", name), errors.ErrUnknownFormat)
	}
}

// Document is a parsed input. JSON is set for FormatJSON, XML for FormatXML.
type Document struct {
	Format Format
	JSON   *tree.Node
	XML    *tree.Element
}

// Tree returns the document's root as the converter expects it
func (d Document) Tree() any {
	if d.Format == FormatXML {
		return d.XML
	}
	return d.JSON
}

// Parse reads a JSON or XML document from reader. FormatAuto picks XML when
// the first non-space byte is '<' and JSON otherwise.
func Parse(reader io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return Document{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, format)
}

// ParseBytes parses data as a JSON or XML document
func ParseBytes(data []byte, format Format) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if format == "" || format == FormatAuto {
		format = sniff(trimmed)
	}

	switch format {
	case FormatJSON:
		node, err := ParseJSON(bytes.NewReader(data))
		if err != nil {
			return Document{}, err
		}
		return Document{Format: FormatJSON, JSON: node}, nil
	case FormatXML:
		el, err := ParseXML(bytes.NewReader(data))
		if err != nil {
			return Document{}, err
		}
		return Document{Format: FormatXML, XML: el}, nil
	default:
		return Document{}, errors.NewInputError(fmt.Sprintf("unknown input kind '%s'", format), errors.ErrUnknownFormat)
	}
}

func sniff(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(data) > 0 && data[0] == '<' {
		return FormatXML
	}
	return FormatJSON
}

// FormatForPath guesses the format of a file from its extension
func FormatForPath(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".xml", ".xsd", ".wsdl", ".bpmn", ".dmn":
		return FormatXML
	default:
		return FormatAuto
	}
}

// ParseString parses a document from a string
func ParseString(input string, format Format) (Document, error) {
	if strings.TrimSpace(input) == "" {
		return Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(input), format)
}

// ParseFile parses a document from a file path. With FormatAuto the file
// extension decides before content sniffing does.
func ParseFile(filePath string, format Format) (Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	if format == "" || format == FormatAuto {
		format = FormatForPath(filePath)
	}
	return ParseBytes(data, format)
}

// Load downloads a document from any location afs understands (file://,
// mem://, http(s)://, ...) and parses it.
func Load(ctx context.Context, location string, format Format) (Document, error) {
	if strings.TrimSpace(location) == "" {
		return Document{}, errors.NewInputError("URL is empty", errors.ErrInvalidURL)
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return Document{}, errors.NewInputError(fmt.Sprintf("failed to download '%s'", location), err)
	}
	if len(data) == 0 {
		return Document{}, errors.NewInputError(fmt.Sprintf("document at '%s' is empty", location), errors.ErrFileEmpty)
	}
	if format == "" || format == FormatAuto {
		if u, err := url.Parse(location); err == nil {
			format = FormatForPath(path.Base(u.Path))
		}
	}
	doc, err := ParseBytes(data, format)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return Document{}, err
		}
		return Document{}, errors.NewParsingError(fmt.Sprintf("failed to parse '%s'", location), err)
	}
	return doc, nil
}
