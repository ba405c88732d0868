// Package schema models the definition dialect that drives aggregation and
// rendering. A definition is a tree of typed nodes mirroring the shape of
// the aggregate payload; individual nodes carry markers that assign them a
// role: frontmatter-part marks the array that collects per-document entries,
// derived-from attaches a derivation rule, and template/template-items bind
// render templates to the node.
package schema

import (
	"fmt"
	"sort"
)

// Node is a single definition tree node. Zero values mean "marker absent";
// Derived distinguishes an empty derived-from value from no marker at all so
// that the empty value can be reported as a rule failure instead of being
// silently dropped.
type Node struct {
	Type            string
	Properties      map[string]*Node
	Items           *Node
	FrontmatterPart bool
	Derived         bool
	DerivedFrom     string
	DerivedUnique   bool
	Template        string
	TemplateItems   string
}

// Definition is a parsed schema definition rooted at a single node.
type Definition struct {
	Root *Node
}

// FromMap converts a raw decoded definition into a typed tree. The raw form
// is what YAML or JSON decoding produces: nested maps with the dialect's
// keys. Unknown keys are tolerated so definitions can carry annotations the
// engine does not interpret.
func FromMap(raw map[string]any) (*Definition, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: definition is empty", ErrDefinitionInvalid)
	}

	root, err := nodeFromMap(raw, "")
	if err != nil {
		return nil, err
	}

	if root.FrontmatterPart {
		return nil, fmt.Errorf("%w: frontmatter-part marker on the root node has no property path", ErrDefinitionInvalid)
	}

	return &Definition{Root: root}, nil
}

func nodeFromMap(raw map[string]any, path string) (*Node, error) {
	node := &Node{}

	if value, ok := raw["type"]; ok {
		text, err := stringValue(value, path, "type")
		if err != nil {
			return nil, err
		}
		node.Type = text
	}

	if value, ok := raw["frontmatter-part"]; ok {
		flag, err := boolValue(value, path, "frontmatter-part")
		if err != nil {
			return nil, err
		}
		node.FrontmatterPart = flag
	}

	if value, ok := raw["derived-from"]; ok {
		text, err := stringValue(value, path, "derived-from")
		if err != nil {
			return nil, err
		}
		node.Derived = true
		node.DerivedFrom = text
	}

	if value, ok := raw["unique"]; ok {
		flag, err := boolValue(value, path, "unique")
		if err != nil {
			return nil, err
		}
		node.DerivedUnique = flag
	}

	if value, ok := raw["template"]; ok {
		text, err := stringValue(value, path, "template")
		if err != nil {
			return nil, err
		}
		node.Template = text
	}

	if value, ok := raw["template-items"]; ok {
		text, err := stringValue(value, path, "template-items")
		if err != nil {
			return nil, err
		}
		node.TemplateItems = text
	}

	if value, ok := raw["properties"]; ok {
		children, err := mapValue(value, path, "properties")
		if err != nil {
			return nil, err
		}
		node.Properties = make(map[string]*Node, len(children))
		for key, childRaw := range children {
			childPath := joinPath(path, key)
			childMap, err := mapValue(childRaw, childPath, "")
			if err != nil {
				return nil, err
			}
			child, err := nodeFromMap(childMap, childPath)
			if err != nil {
				return nil, err
			}
			node.Properties[key] = child
		}
	}

	if value, ok := raw["items"]; ok {
		itemsMap, err := mapValue(value, path, "items")
		if err != nil {
			return nil, err
		}
		items, err := nodeFromMap(itemsMap, path)
		if err != nil {
			return nil, err
		}
		node.Items = items
	}

	return node, nil
}

func stringValue(value any, path, key string) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrDefinitionInvalid, describeKey(path, key), value)
	}
	return text, nil
}

func boolValue(value any, path, key string) (bool, error) {
	flag, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrDefinitionInvalid, describeKey(path, key), value)
	}
	return flag, nil
}

// mapValue accepts both map[string]any and map[any]any so definitions
// decoded by differing YAML libraries convert without a pre-pass.
func mapValue(value any, path, key string) (map[string]any, error) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for rawKey, rawValue := range typed {
			converted[fmt.Sprint(rawKey)] = rawValue
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a mapping, got %T", ErrDefinitionInvalid, describeKey(path, key), value)
	}
}

func describeKey(path, key string) string {
	switch {
	case path == "" && key == "":
		return "definition"
	case path == "":
		return key
	case key == "":
		return path
	default:
		return path + " " + key
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func sortedPropertyKeys(node *Node) []string {
	keys := make([]string, 0, len(node.Properties))
	for key := range node.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
