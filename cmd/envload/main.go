package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/hyperifyio/envload/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, showVersion, err := parseFlags(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Error().Err(err).Msg("invalid configuration")
		}
		os.Exit(exitCode(err))
	}
	if showVersion {
		fmt.Printf("envload %s (%s)\n", app.BuildVersion, app.BuildCommit)
		return
	}

	if err := run(cfg); err != nil {
		var ee *app.ExitError
		if !errors.As(err, &ee) {
			log.Error().Err(err).Msg("run failed")
		}
		os.Exit(exitCode(err))
	}
}

// usageError marks command line mistakes.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit status: 2 for usage errors, the
// command's own status for *app.ExitError, 1 for anything else.
func exitCode(err error) int {
	var (
		ue usageError
		ee *app.ExitError
	)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &ee):
		if ee.Code < 0 {
			return 1
		}
		return ee.Code
	case errors.As(err, &ue):
		return 2
	default:
		return 1
	}
}

// parseFlags builds a Config from command line arguments. Positional
// arguments before "--" are env files; anything after it is a command to run
// with the loaded environment.
func parseFlags(args []string) (app.Config, bool, error) {
	var (
		cfg         app.Config
		files       []string
		configPath  string
		showVersion bool
	)
	fs := flag.NewFlagSet("envload", flag.ContinueOnError)
	fs.StringArrayVarP(&files, "file", "f", nil, "Env file to load; repeat in order from most general to most specific")
	fs.BoolVar(&cfg.MissingOK, "missing-ok", false, "Skip env files that do not exist")
	fs.BoolVar(&cfg.SingleQuotes, "single-quotes", false, "Also strip single quotes around values")
	fs.StringVarP(&cfg.Format, "format", "o", "", "Output format: dotenv, json, yaml or export")
	fs.StringVar(&cfg.OutputPath, "out", "", "Write output to this file instead of stdout")
	fs.StringVar(&configPath, "config", os.Getenv("ENVLOAD_CONFIG"), "Path to YAML or JSON config file")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, false, err
		}
		return cfg, false, usageError{err}
	}

	positional := fs.Args()
	if dash := fs.ArgsLenAtDash(); dash >= 0 {
		cfg.Command = positional[dash:]
		positional = positional[:dash]
	}
	cfg.Files = append(files, positional...)

	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return cfg, false, fmt.Errorf("load config %s: %w", configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	return cfg, showVersion, nil
}

func run(cfg app.Config) error {
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
