package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// definitionMetaSchema describes the definition dialect itself. Every node
// may carry a type, child properties, an items node, and the docmeta
// markers. Unknown keys pass through so definitions can hold annotations.
const definitionMetaSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$ref": "#/$defs/node",
	"$defs": {
		"node": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": ["object", "array", "string", "number", "boolean"]
				},
				"properties": {
					"type": "object",
					"additionalProperties": {"$ref": "#/$defs/node"}
				},
				"items": {"$ref": "#/$defs/node"},
				"frontmatter-part": {"type": "boolean"},
				"derived-from": {"type": "string"},
				"unique": {"type": "boolean"},
				"template": {"type": "string"},
				"template-items": {"type": "string"}
			}
		}
	}
}`

// Issue is a single point of non-conformance between a raw definition and
// the definition dialect.
type Issue struct {
	Location string
	Message  string
}

// DefinitionError reports every dialect violation found in a raw
// definition. It unwraps to ErrDefinitionInvalid.
type DefinitionError struct {
	Issues []Issue
	Cause  error
}

func (e *DefinitionError) Error() string {
	if len(e.Issues) == 0 {
		return ErrDefinitionInvalid.Error()
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("#%s: %s", issue.Location, issue.Message))
	}

	return fmt.Sprintf("%s: %s", ErrDefinitionInvalid.Error(), strings.Join(parts, "; "))
}

func (e *DefinitionError) Unwrap() error {
	return ErrDefinitionInvalid
}

// ParseDefinition decodes a definition document and loads it. JSON is
// detected by a leading brace; everything else decodes as YAML.
func ParseDefinition(data []byte) (*Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: definition is empty", ErrDefinitionInvalid)
	}

	var raw map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
		}
	}

	return LoadDefinition(raw)
}

// LoadDefinition validates a raw decoded definition against the dialect
// meta-schema and converts it into a typed tree.
func LoadDefinition(raw map[string]any) (*Definition, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: definition is empty", ErrDefinitionInvalid)
	}

	compiled, err := compileMetaSchema()
	if err != nil {
		return nil, err
	}

	payload, err := jsonClone(raw)
	if err != nil {
		return nil, err
	}

	if err := compiled.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			var issues []Issue
			collectIssues(validationErr, &issues)
			return nil, &DefinitionError{Issues: issues, Cause: err}
		}
		return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	return FromMap(raw)
}

func compileMetaSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("definition.schema.json", strings.NewReader(definitionMetaSchema)); err != nil {
		return nil, fmt.Errorf("%w: meta-schema: %v", ErrDefinitionInvalid, err)
	}

	compiled, err := compiler.Compile("definition.schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: meta-schema: %v", ErrDefinitionInvalid, err)
	}

	return compiled, nil
}

// jsonClone round-trips the raw definition through JSON so validation sees
// the value shapes the validator expects regardless of which decoder
// produced the input.
func jsonClone(raw map[string]any) (any, error) {
	encoded, err := json.Marshal(jsonValue(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	return decoded, nil
}

func jsonValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = jsonValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = jsonValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = jsonValue(item)
		}
		return out
	default:
		return value
	}
}

func collectIssues(err *jsonschema.ValidationError, issues *[]Issue) {
	if len(err.Causes) == 0 {
		*issues = append(*issues, Issue{Location: err.InstanceLocation, Message: err.Message})
		return
	}

	for _, cause := range err.Causes {
		collectIssues(cause, issues)
	}
}
