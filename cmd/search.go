package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/fwsync/internal/search"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// buildQuery combines the positional query with the structured filter flags.
//
// With no filter flags the query passes through verbatim, so raw
// search-expression syntax like `( fn:*.png ) AND ( sunrise )` keeps working.
// With filters set, the positional query is treated as a full-text term and
// everything combines with AND.
func buildQuery(cmd *cli.Command) (string, error) {
	filename := cmd.String("filename")
	doctype := cmd.String("type")
	query := cmd.StringArg("query")

	if filename == "" && doctype == "" {
		if query == "" {
			return "", fmt.Errorf("%w: query", shared.ErrMissingArgument)
		}
		return query, nil
	}

	expr := search.New()
	if query != "" {
		expr = expr.Fts(query)
	}
	if filename != "" {
		expr = expr.Eq(search.FileName, filename)
	}
	if doctype != "" {
		expr = expr.Eq(search.AssetType, doctype)
	}
	return expr.String(), nil
}

// Search evaluates a search expression against an archive.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	coll, err := r.archiveFromArg(ctx, cmd.StringArg("archive-id"))
	if err != nil {
		return err
	}

	query, err := buildQuery(cmd)
	if err != nil {
		return err
	}

	assets, err := r.tenant.SearchAssets(ctx, *coll, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return r.writeAssets(assets, cmd)
}
