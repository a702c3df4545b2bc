// Package runner executes external package-manager commands.
//
// Output is never collected until exit: every line a child writes to stdout
// or stderr is handed to a LineHandler as soon as it is read, so a long
// install is either visibly progressing or visibly silent.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	lerrors "github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/rs/zerolog"
)

// waitDelay bounds how long Wait keeps reading output after the process is
// gone, e.g. when a grandchild still holds the pipes open.
const waitDelay = 2 * time.Second

// Stream identifies which output stream a line came from
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// LineHandler receives child output one line at a time
type LineHandler func(stream Stream, line string)

// Command is a single external invocation
type Command struct {
	Dir  string
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner runs external commands
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// Options configures an ExecRunner
type Options struct {
	// Timeout kills a command that runs longer; zero means no limit
	Timeout time.Duration

	// Handler receives output lines; defaults to echoing them to Stdout/Stderr
	Handler LineHandler

	Stdout io.Writer
	Stderr io.Writer

	// Logger defaults to the package component logger
	Logger *zerolog.Logger
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	timeout time.Duration
	handler LineHandler
	logger  zerolog.Logger
}

// New creates an ExecRunner
func New(opts Options) *ExecRunner {
	logger := logging.GetLogger("runner")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	r := &ExecRunner{
		timeout: opts.Timeout,
		handler: opts.Handler,
		logger:  logger,
	}
	if r.handler == nil {
		stdout, stderr := opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
		r.handler = EchoHandler(stdout, stderr, logger)
	}
	return r
}

// EchoHandler prints each line to the matching writer as it arrives and
// records it at debug level
func EchoHandler(stdout, stderr io.Writer, logger zerolog.Logger) LineHandler {
	return func(stream Stream, line string) {
		w := stdout
		if stream == Stderr {
			w = stderr
		}
		fmt.Fprintln(w, line)
		logger.Debug().Str("stream", string(stream)).Msg(line)
	}
}

// Run executes cmd and returns nil only on exit code 0. Any other outcome is
// a *errors.ProcessExitError.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if c.Dir != "" {
		info, err := os.Stat(c.Dir)
		if err != nil || !info.IsDir() {
			return lerrors.Newf(lerrors.ErrWorkingDir,
				"working directory does not exist: %s", c.Dir).
				WithDetail("command", c.String())
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logging.LogCommand(r.logger, c.Dir, c.Name, c.Args)

	stdout := logging.NewLineWriter(func(line string) { r.handler(Stdout, line) })
	stderr := logging.NewLineWriter(func(line string) { r.handler(Stderr, line) })

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err == nil {
		r.logger.Info().
			Str("command", c.String()).
			Dur("duration", time.Since(start)).
			Msg("Command executed successfully")
		return nil
	}

	exitErr := &lerrors.ProcessExitError{
		Command:  c.Name,
		Args:     c.Args,
		ExitCode: -1,
		Err:      err,
	}
	var ee *exec.ExitError
	switch {
	case ctx.Err() != nil:
		exitErr.Err = ctx.Err()
	case errors.As(err, &ee):
		exitErr.ExitCode = ee.ExitCode()
	}

	r.logger.Error().
		Err(err).
		Str("command", c.String()).
		Str("workingDir", c.Dir).
		Int("exitCode", exitErr.ExitCode).
		Msg("Command execution failed")

	return exitErr
}
