package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oszget/internal/mirror"
	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
	"github.com/desertthunder/oszget/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	source  tasks.ScoreSource
	fetcher tasks.Fetcher
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Source and Fetcher are overrides for tests; when nil the real osu! client
// and beatconnect downloader are constructed on demand.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Source  tasks.ScoreSource
	Fetcher tasks.Fetcher
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

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		source:  opts.Source,
		fetcher: opts.Fetcher,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, scoresCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credentials resolves the OAuth credentials from flags (which default to
// the environment-derived config) and fails with a usage message when
// either is absent.
func (r *Runner) credentials(cmd *cli.Command) (string, string, error) {
	clientID := cmd.String("client-id")
	clientSecret := cmd.String("client-secret")

	if clientID == "" || clientSecret == "" {
		return "", "", fmt.Errorf(
			"%w: set %s and %s (or pass --client-id/--client-secret)",
			shared.ErrMissingCredentials, shared.EnvClientID, shared.EnvClientSecret,
		)
	}

	return clientID, clientSecret, nil
}

// resolveSource returns the injected score source or builds a real client.
func (r *Runner) resolveSource(clientID, clientSecret string) (tasks.ScoreSource, error) {
	if r.source != nil {
		return r.source, nil
	}
	return osu.NewClient(clientID, clientSecret)
}

// resolveFetcher returns the injected fetcher or the beatconnect downloader.
func (r *Runner) resolveFetcher() tasks.Fetcher {
	if r.fetcher != nil {
		return r.fetcher
	}
	return mirror.NewDownloader()
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
