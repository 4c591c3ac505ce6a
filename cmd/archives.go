package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/fwsync/internal/formatter"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// archiveFromArg resolves a positional archive id to a collection.
func (r *Runner) archiveFromArg(ctx context.Context, raw string) (*models.Collection, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: archive-id", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: archive-id %q is not a number", shared.ErrInvalidInput, raw)
	}

	return r.tenant.CollectionByID(ctx, id)
}

// ArchivesList lists the tenant's archives.
func (r *Runner) ArchivesList(ctx context.Context, cmd *cli.Command) error {
	colls, err := r.tenant.Collections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list archives: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(colls, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.FormatCollections(colls))
}

// ArchiveAssets lists the assets of one archive.
func (r *Runner) ArchiveAssets(ctx context.Context, cmd *cli.Command) error {
	coll, err := r.archiveFromArg(ctx, cmd.StringArg("archive-id"))
	if err != nil {
		return err
	}

	assets, err := r.tenant.Assets(ctx, *coll)
	if err != nil {
		return fmt.Errorf("failed to list assets: %w", err)
	}

	return r.writeAssets(assets, cmd)
}

// writeAssets renders an asset listing as text, JSON or a CSV file.
func (r *Runner) writeAssets(assets []models.Asset, cmd *cli.Command) error {
	if path := cmd.String("csv"); path != "" {
		data, err := formatter.ExportAssetsCSV(assets)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write CSV file: %w", err)
		}
		return r.writePlain("Wrote %d assets to %s\n", len(assets), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(assets, true)
	}
	return r.writePlain("%s", formatter.FormatAssets(assets))
}
