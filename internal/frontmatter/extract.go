package frontmatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialization a frontmatter block was written in.
type Format string

const (
	// FormatNone marks documents without a frontmatter block.
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// Extraction is the result of splitting a document into frontmatter and body.
// Data is nil when the document carries no frontmatter block. Raw holds the
// block text without its fences so the original document can be logically
// reconstructed from Raw plus Body.
type Extraction struct {
	Data   *Data
	Body   string
	Format Format
	Raw    string
}

// Extract splits a Markdown document into its frontmatter block and body.
// Detection checks, in order: a YAML fence line (---), a leading JSON object
// brace, and a TOML fence line (+++). Unrecognised leading content means "no
// frontmatter" and returns the whole document as Body with a nil Data.
//
// An opening fence without a matching closing fence fails with
// ErrInvalidFormat. A block that decodes to zero fields (whitespace or
// comments only) fails with ErrEmptyData, which callers must keep distinct
// from the nil-Data "no frontmatter" case. The body retains everything after
// the closing fence verbatim, leading blank lines included.
func Extract(content string) (Extraction, error) {
	switch {
	case hasFenceLine(content, yamlFence):
		return extractFenced(content, yamlFence, FormatYAML, decodeYAML)
	case strings.HasPrefix(content, "{"):
		return extractJSON(content)
	case hasFenceLine(content, tomlFence):
		return extractFenced(content, tomlFence, FormatTOML, decodeTOML)
	default:
		return Extraction{Body: content, Format: FormatNone}, nil
	}
}

// hasFenceLine reports whether the document opens with the fence occupying
// the entire first line.
func hasFenceLine(content, fence string) bool {
	if !strings.HasPrefix(content, fence) {
		return false
	}
	rest := strings.TrimPrefix(content[len(fence):], "\r")
	return rest == "" || strings.HasPrefix(rest, "\n")
}

func extractFenced(content, fence string, format Format, decode func([]byte) (any, error)) (Extraction, error) {
	after := strings.TrimPrefix(content[len(fence):], "\r")
	if after == "" {
		return Extraction{}, fmt.Errorf("%w: unterminated %s frontmatter fence", ErrInvalidFormat, format)
	}
	after = after[1:]

	raw, body, ok := splitClosingFence(after, fence)
	if !ok {
		return Extraction{}, fmt.Errorf("%w: unterminated %s frontmatter fence", ErrInvalidFormat, format)
	}

	data, err := decodeBlock(raw, format, decode)
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{Data: data, Body: body, Format: format, Raw: raw}, nil
}

// splitClosingFence scans line by line for a closing fence and splits the
// remaining document around it. The returned raw block keeps its trailing
// newline and the body starts immediately after the fence line.
func splitClosingFence(content, fence string) (string, string, bool) {
	offset := 0
	for {
		lineEnd := strings.IndexByte(content[offset:], '\n')
		if lineEnd < 0 {
			line := strings.TrimSuffix(content[offset:], "\r")
			if line == fence {
				return content[:offset], "", true
			}
			return "", "", false
		}

		line := strings.TrimSuffix(content[offset:offset+lineEnd], "\r")
		if line == fence {
			return content[:offset], content[offset+lineEnd+1:], true
		}
		offset += lineEnd + 1
	}
}

func extractJSON(content string) (Extraction, error) {
	end, err := balancedObjectEnd(content)
	if err != nil {
		return Extraction{}, err
	}

	raw := content[:end+1]
	body := content[end+1:]

	data, err := decodeBlock(raw, FormatJSON, decodeJSON)
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{Data: data, Body: body, Format: FormatJSON, Raw: raw}, nil
}

// balancedObjectEnd locates the closing brace of the leading JSON object,
// tracking string literals and escapes so braces inside values do not
// terminate the scan early.
func balancedObjectEnd(content string) (int, error) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unbalanced json frontmatter object", ErrInvalidFormat)
}

func decodeBlock(raw string, format Format, decode func([]byte) (any, error)) (*Data, error) {
	value, err := decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s frontmatter: %v", ErrParse, format, err)
	}
	if value == nil {
		return nil, fmt.Errorf("%w: %s block has no keys", ErrEmptyData, format)
	}

	data, err := FromValue(value)
	if err != nil {
		return nil, fmt.Errorf("%s frontmatter: %w", format, err)
	}
	return data, nil
}

// decodeYAML keeps the decoder's native type fidelity: inline and block
// arrays stay arrays, booleans and numbers keep their types, timestamps
// decode to time.Time, and trailing comments outside quoted strings are
// stripped while quoted # characters survive.
func decodeYAML(block []byte) (any, error) {
	var value any
	if err := yaml.Unmarshal(block, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func decodeJSON(block []byte) (any, error) {
	var value any
	if err := json.Unmarshal(block, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func decodeTOML(block []byte) (any, error) {
	if strings.TrimSpace(string(block)) == "" {
		return nil, nil
	}
	var value map[string]any
	if err := toml.Unmarshal(block, &value); err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, nil
	}
	return value, nil
}
