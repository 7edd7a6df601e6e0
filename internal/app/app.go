package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/envload/internal/dotenv"
)

// App loads the configured env files and either prints the result or runs a
// command with it.
type App struct {
	cfg    Config
	loader dotenv.Loader
	stdout io.Writer
	stderr io.Writer
}

// New validates cfg and constructs an App writing to the process stdio.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &App{
		cfg: cfg,
		loader: dotenv.Loader{
			MissingOK: cfg.MissingOK,
			Options:   dotenv.ParseOptions{SingleQuotes: cfg.SingleQuotes},
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}, nil
}

// Run executes the configured action.
func (a *App) Run(ctx context.Context) error {
	if len(a.cfg.Command) > 0 {
		return a.runCommand(ctx)
	}

	res, err := a.loader.Load(a.cfg.Files...)
	if err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	keys := res.Keys()
	log.Debug().Int("pairs", len(res)).Int("keys", len(keys)).Msg("env files loaded")

	out, err := Render(a.cfg.Format, res)
	if err != nil {
		return err
	}
	if a.cfg.OutputPath != "" {
		if err := os.WriteFile(a.cfg.OutputPath, []byte(out), 0o600); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPath).Int("keys", len(keys)).Msg("wrote env")
		return nil
	}
	_, err = io.WriteString(a.stdout, out)
	return err
}

// ExitError carries the exit status of a command started by Run. A command
// killed by a signal reports 128 plus the signal number, as shells do.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("command exited with status %d", e.Code) }

func (a *App) runCommand(ctx context.Context) error {
	setenv := dotenv.SetterFunc(func(key, value string) error {
		log.Debug().Str("key", key).Msg("setenv")
		return dotenv.OSEnv{}.Setenv(key, value)
	})
	res, err := a.loader.LoadInto(setenv, a.cfg.Files...)
	if err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	log.Debug().Int("pairs", len(res)).Strs("command", a.cfg.Command).Msg("running command")

	cmd := exec.CommandContext(ctx, a.cfg.Command[0], a.cfg.Command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Code: exitStatus(ee)}
		}
		return fmt.Errorf("run %s: %w", a.cfg.Command[0], err)
	}
	return nil
}

func exitStatus(ee *exec.ExitError) int {
	if code := ee.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}
