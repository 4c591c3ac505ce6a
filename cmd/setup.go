package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/fwsync/internal/journal"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing and initializes the journal database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing journal database", "path", config.Journal.Path)

	j, err := journal.Open(config.Journal)
	if err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	defer j.Close()

	r.logger.Infof("setup complete for journal: %v", config.Journal.Path)
	r.writePlain("Edit %s with your tenant host and client credentials.\n", configPath)
	return nil
}
