package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/fwsync/internal/changes"
	"github.com/desertthunder/fwsync/internal/formatter"
	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Set stages a metadata edit on one asset and commits it.
func (r *Runner) Set(ctx context.Context, cmd *cli.Command) error {
	href := cmd.StringArg("asset-href")
	if href == "" {
		return fmt.Errorf("%w: asset-href", shared.ErrMissingArgument)
	}

	asset, err := r.tenant.AssetByHref(ctx, href)
	if err != nil {
		return fmt.Errorf("failed to fetch asset: %w", err)
	}

	if _, err := r.manager.SetValue(asset, cmd.String("field"), cmd.String("value")); err != nil {
		return err
	}

	return r.commitAndReport(ctx, false)
}

// Move stages relocating assets to another archive and commits, waiting for
// the background job unless --no-wait is set.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	coll, err := r.archiveFromArg(ctx, cmd.String("to"))
	if err != nil {
		return err
	}

	var assets []models.Asset
	for _, href := range cmd.StringSlice("asset") {
		assets = append(assets, models.Asset{Href: href})
	}

	if _, err := r.manager.Move(assets, *coll); err != nil {
		return err
	}

	return r.commitAndReport(ctx, !cmd.Bool("no-wait"))
}

// Upload stages a chunked upload of a local file and commits, waiting for
// server-side processing unless --no-wait is set.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	coll, err := r.archiveFromArg(ctx, cmd.String("to"))
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := cmd.String("name")
	if name == "" {
		name = filepath.Base(path)
	}

	if _, err := r.manager.Upload(file, *coll, changes.UploadOpts{Filename: name}); err != nil {
		return err
	}

	return r.commitAndReport(ctx, !cmd.Bool("no-wait"))
}

// commitAndReport commits the staged tasks, optionally waits for background
// jobs, journals the outcomes and prints the final task listing.
//
// A journal that cannot be opened downgrades to a warning; the commit itself
// still runs.
func (r *Runner) commitAndReport(ctx context.Context, wait bool) error {
	j, journalErr := r.openJournal()
	if journalErr != nil {
		r.logger.Warn("journal unavailable, outcomes will not be recorded", "error", journalErr)
	} else {
		defer j.Close()
	}

	var session string
	if j != nil {
		if session, journalErr = j.StartSession(); journalErr != nil {
			r.logger.Warn("failed to start journal session", "error", journalErr)
			j = nil
		}
	}

	commitErr := r.manager.Commit(ctx)
	if commitErr != nil {
		r.logger.Error("commit finished with failures", "error", commitErr)
	}

	if wait && commitErr == nil {
		attempts, delay := pollBudget(r.config)
		if err := r.manager.Await(ctx, attempts, delay); err != nil {
			r.logger.Error("reconciliation incomplete", "error", err)
			commitErr = err
		}
	}

	if j != nil {
		for _, task := range r.manager.Tasks() {
			detail := ""
			if task.Status() == changes.Failed && commitErr != nil {
				detail = commitErr.Error()
			}
			if err := j.RecordTask(session, task, detail); err != nil {
				r.logger.Warn("failed to journal task", "task", task.ID, "error", err)
			}
		}
		if err := j.FinishSession(session); err != nil {
			r.logger.Warn("failed to finish journal session", "error", err)
		}
	}

	r.writePlain("%s", formatter.FormatTasks(r.manager.Tasks()))

	registry := r.manager.Engine().Registry()
	for _, task := range registry.ByStatus(changes.Submitted) {
		if handle := registry.Handle(task.ID); handle != nil {
			r.writePlain("watch %s\n", handle.Location)
		}
	}

	return commitErr
}
