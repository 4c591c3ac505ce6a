package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/fwsync/internal/formatter"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// StatusSessions lists recorded commit sessions, newest first.
func (r *Runner) StatusSessions(ctx context.Context, cmd *cli.Command) error {
	j, err := r.openJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	sessions, err := j.Sessions()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(sessions, true)
	}
	return r.writePlain("%s", formatter.FormatSessions(sessions))
}

// StatusRecords shows the task outcomes recorded for one session.
func (r *Runner) StatusRecords(ctx context.Context, cmd *cli.Command) error {
	session := cmd.StringArg("session-id")
	if session == "" {
		return fmt.Errorf("%w: session-id", shared.ErrMissingArgument)
	}

	j, err := r.openJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	records, err := j.SessionRecords(session)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}
	return r.writePlain("%s", formatter.FormatRecords(records))
}
