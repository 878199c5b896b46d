package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/todate/internal/domain"
)

// resolveTodateID accepts a full ID or a unique ID prefix.
func resolveTodateID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("todate ID is required")
	}

	todates, err := app.Todates.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range todates {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("todate not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("todate ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTags maps tag references (ID or name) to tags.
func resolveTags(ctx context.Context, app *App, refs []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		tag, err := app.Tags.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", ref, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// resolveTagIDs is resolveTags reduced to IDs, for timeline filters.
func resolveTagIDs(ctx context.Context, app *App, refs []string) ([]string, error) {
	tags, err := resolveTags(ctx, app, refs)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids, nil
}
