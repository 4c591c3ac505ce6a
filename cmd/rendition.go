package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Rendition downloads a rendered variant of an asset to a local file.
func (r *Runner) Rendition(ctx context.Context, cmd *cli.Command) error {
	href := cmd.StringArg("asset-href")
	if href == "" {
		return fmt.Errorf("%w: asset-href", shared.ErrMissingArgument)
	}

	asset, err := r.tenant.AssetByHref(ctx, href)
	if err != nil {
		return fmt.Errorf("failed to fetch asset: %w", err)
	}

	query := models.RenditionQuery{
		Profile: cmd.String("profile"),
		Size:    int(cmd.Int("size")),
	}
	rendition := asset.FindRendition(query)
	if rendition == nil {
		return fmt.Errorf("%w: no rendition matches profile=%q size=%d", shared.ErrAssetNotFound, query.Profile, query.Size)
	}

	info, err := r.tenant.InstanceInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover services: %w", err)
	}

	data, err := r.renditions.Download(ctx, info.Services.RenditionRequest, *rendition)
	if err != nil {
		return fmt.Errorf("failed to download rendition: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = path.Base(rendition.Href)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write rendition file: %w", err)
	}

	r.writePlain("Wrote %d bytes to %s\n", len(data), outputPath)
	return nil
}
