package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/fwsync/internal/models"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Watch polls a background-task status location until the job reaches a
// terminal state, printing each status change.
//
// Pairs with `move --no-wait` and `upload --no-wait`: the submitted job's
// status location comes from the command's log output.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	location := cmd.StringArg("location")
	if location == "" {
		return fmt.Errorf("%w: location", shared.ErrMissingArgument)
	}

	attempts, delay := pollBudget(r.config)
	last := ""

	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := r.conn.GET(ctx, location)
		if err != nil {
			return fmt.Errorf("status poll failed: %w", err)
		}

		status, err := jobStatus(resp.Body)
		if err != nil {
			return err
		}
		if status != last {
			r.writePlain("%s\n", status)
			last = status
		}

		switch status {
		case models.JobDone:
			return nil
		case models.JobFailed:
			return fmt.Errorf("%w: job at %s failed", shared.ErrAPIRequest, location)
		}

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%w: job at %s not finished after %d polls", shared.ErrTimeout, location, attempts)
}

// jobStatus extracts the status string from either background-job payload
// shape: move jobs nest it under task.status, upload jobs report it top-level.
func jobStatus(body []byte) (string, error) {
	var payload struct {
		Status string `json:"status"`
		Task   struct {
			Status string `json:"status"`
		} `json:"task"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode job status: %w", err)
	}

	if payload.Task.Status != "" {
		return payload.Task.Status, nil
	}
	return payload.Status, nil
}
