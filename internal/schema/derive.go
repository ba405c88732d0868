package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docmeta/internal/pathexpr"
)

// Rule is a single derivation: collect the values matched by SourcePath
// across every document and place them under TargetField in the aggregate.
// Unique keeps only the first occurrence of each value.
type Rule struct {
	SourcePath  string
	TargetField string
	Unique      bool
}

// Conversion reports the outcome of extracting derivation rules from a
// definition. Invalid rules never abort the conversion: each one is counted
// in Failed and described in Errors, and Rules carries whatever converted
// cleanly.
type Conversion struct {
	Rules  []Rule
	Failed int
	Errors []error
}

// TemplateRef binds render templates to a definition node. Template renders
// the node's value; Items renders each element of an array node.
type TemplateRef struct {
	NodePath string
	Template string
	Items    string
}

// FrontmatterPartPath returns the property path of the node carrying the
// frontmatter-part marker. The walk is depth-first over property names in
// sorted order, so the result is deterministic when a definition carries
// more than one marker. Absence is reported as ErrFrontmatterPartNotFound;
// callers decide whether that is fatal.
func (d *Definition) FrontmatterPartPath() (string, error) {
	path, _, err := d.FrontmatterPartNode()
	return path, err
}

// FrontmatterPartNode returns the marker node along with its path, for
// callers that also need the node's template bindings.
func (d *Definition) FrontmatterPartNode() (string, *Node, error) {
	if d == nil || d.Root == nil {
		return "", nil, ErrNilDefinition
	}

	if path, node, ok := findPart(d.Root, ""); ok {
		return path, node, nil
	}

	return "", nil, ErrFrontmatterPartNotFound
}

func findPart(node *Node, path string) (string, *Node, bool) {
	if node == nil {
		return "", nil, false
	}

	if node.FrontmatterPart && path != "" {
		return path, node, true
	}

	for _, key := range sortedPropertyKeys(node) {
		if foundPath, found, ok := findPart(node.Properties[key], joinPath(path, key)); ok {
			return foundPath, found, true
		}
	}

	return "", nil, false
}

// DerivationRules extracts every derived-from marker in the definition.
// Rules that cannot convert, because the source path is empty, unparsable,
// or the marker sits somewhere without an addressable target field, are
// reported per rule so aggregation can proceed with the rest.
func (d *Definition) DerivationRules() (Conversion, error) {
	if d == nil || d.Root == nil {
		return Conversion{}, ErrNilDefinition
	}

	conv := Conversion{}
	collectRules(d.Root, "", false, &conv)
	return conv, nil
}

func collectRules(node *Node, path string, insideItems bool, conv *Conversion) {
	if node == nil {
		return
	}

	if node.Derived {
		if rule, err := convertRule(node, path, insideItems); err != nil {
			conv.Failed++
			conv.Errors = append(conv.Errors, err)
		} else {
			conv.Rules = append(conv.Rules, rule)
		}
	}

	for _, key := range sortedPropertyKeys(node) {
		collectRules(node.Properties[key], joinPath(path, key), insideItems, conv)
	}

	if node.Items != nil {
		collectRules(node.Items, path, true, conv)
	}
}

func convertRule(node *Node, path string, insideItems bool) (Rule, error) {
	source := strings.TrimSpace(node.DerivedFrom)

	switch {
	case insideItems:
		return Rule{}, fmt.Errorf("%w: derived-from inside array items has no target field (under %q)", ErrDefinitionInvalid, path)
	case path == "":
		return Rule{}, fmt.Errorf("%w: derived-from on the root node has no target field", ErrDefinitionInvalid)
	case source == "":
		return Rule{}, fmt.Errorf("%w: derived-from at %q has an empty source path", ErrDefinitionInvalid, path)
	}

	if _, err := pathexpr.ParseQuery(source); err != nil {
		return Rule{}, fmt.Errorf("%w: derived-from at %q: %v", ErrDefinitionInvalid, path, err)
	}

	return Rule{
		SourcePath:  source,
		TargetField: path,
		Unique:      node.DerivedUnique,
	}, nil
}

// TemplateRefs collects every template binding in the definition, root
// included, in sorted depth-first order. Bindings inside array items are
// not collected; per-item rendering is addressed by the template-items
// marker on the array node itself.
func (d *Definition) TemplateRefs() []TemplateRef {
	if d == nil || d.Root == nil {
		return nil
	}

	var refs []TemplateRef
	collectTemplates(d.Root, "", &refs)
	return refs
}

func collectTemplates(node *Node, path string, refs *[]TemplateRef) {
	if node == nil {
		return
	}

	if node.Template != "" || node.TemplateItems != "" {
		*refs = append(*refs, TemplateRef{
			NodePath: path,
			Template: node.Template,
			Items:    node.TemplateItems,
		})
	}

	for _, key := range sortedPropertyKeys(node) {
		collectTemplates(node.Properties[key], joinPath(path, key), refs)
	}
}
