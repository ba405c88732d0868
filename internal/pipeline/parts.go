package pipeline

import (
	"context"
	"fmt"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/schema"
)

// CollectPartItems re-extracts the assembled frontmatter-part array into
// per-item records, used when the part node binds an items template so a
// list of items and an enclosing summary render through different
// templates. Invalid part data does not fail the call: the aggregated data
// stays untouched, the problem is flagged as a warning, and whatever items
// converted cleanly are returned.
func (s *service) CollectPartItems(ctx context.Context, data *frontmatter.Data, def *schema.Definition) (*PartItems, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("pipeline: aggregated data is required")
	}

	path, node, err := def.FrontmatterPartNode()
	if err != nil {
		return nil, err
	}

	result := &PartItems{Path: path, Template: node.TemplateItems}

	value, ok := data.Get(path)
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("frontmatter part %q is absent from the aggregated data", path))
		return result, nil
	}

	entries, ok := value.([]any)
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("frontmatter part %q is not an array (%T); data left unchanged", path, value))
		return result, nil
	}

	for i, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("frontmatter part %q element %d is not an object (%T); skipped", path, i, entry))
			continue
		}

		item, err := frontmatter.New(fields)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("frontmatter part %q element %d: %v; skipped", path, i, err))
			continue
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}
