package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fwsync/internal/api"
	"github.com/desertthunder/fwsync/internal/changes"
	"github.com/desertthunder/fwsync/internal/journal"
	"github.com/desertthunder/fwsync/internal/poll"
	"github.com/desertthunder/fwsync/internal/renditions"
	"github.com/desertthunder/fwsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	conn       *api.Connection
	tenant     *api.Tenant
	manager    *changes.Manager
	renditions *renditions.Service
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Conn   *api.Connection
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Conn == nil {
		opts.Conn = api.NewConnection(opts.Config.Tenant.Host, api.ConnectionOpts{
			ClientID:          opts.Config.Tenant.ClientID,
			ClientSecret:      opts.Config.Tenant.ClientSecret,
			RequestsPerSecond: opts.Config.Limits.RequestsPerSecond,
			Burst:             opts.Config.Limits.Burst,
			Logger:            opts.Logger,
		})
	}

	attempts, delay := pollBudget(opts.Config)

	return &Runner{
		config:     opts.Config,
		conn:       opts.Conn,
		tenant:     api.NewTenant(opts.Conn),
		manager:    changes.NewManager(opts.Conn, opts.Logger),
		renditions: renditions.NewService(opts.Conn, poll.NewRetrier(attempts, delay)),
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func pollBudget(config *shared.Config) (int, time.Duration) {
	return config.Polling.Attempts, time.Duration(config.Polling.DelaySeconds) * time.Second
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, archivesCommand, searchCommand, setCommand, moveCommand, uploadCommand, renditionCommand, watchCommand, statusCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) openJournal() (*journal.Journal, error) {
	return journal.Open(r.config.Journal)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
