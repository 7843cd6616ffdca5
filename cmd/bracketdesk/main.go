package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/bracketdesk/core"
	"github.com/ezBadminton/bracketdesk/internal/config"
	"github.com/ezBadminton/bracketdesk/internal/feed"
)

//go:embed help.txt
var helpText string

var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

type app struct {
	cfg        *config.Config
	tournament core.TournamentConfig
	decoder    *feed.Decoder
	log        *logrus.Logger
	out        io.Writer
}

type cmdHandler func(ctx context.Context, a *app, args []string) error

var commands = map[string]cmdHandler{
	"standings": handleStandings,
	"seed":      handleSeed,
	"tree":      handleTree,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := logrus.New()
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand) {
			fmt.Fprint(os.Stderr, helpText)
		}
		logger.WithError(err).Fatal("bracketdesk failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger *logrus.Logger) error {
	if len(args) == 0 {
		return ErrUsage
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		_, err := fmt.Fprint(out, helpText)
		return err
	}

	handler, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownCommand, name)
	}

	envFile, rest := splitEnvFlag(args[1:])
	a, err := newApp(envFile, out, logger)
	if err != nil {
		return err
	}

	a.log.WithField("command", name).Debug("running")
	return handler(ctx, a, rest)
}

// Extracts a leading -env flag that every command accepts
func splitEnvFlag(args []string) (string, []string) {
	if len(args) >= 2 && (args[0] == "-env" || args[0] == "--env") {
		return args[1], args[2:]
	}
	return "", args
}

func newApp(envFile string, out io.Writer, logger *logrus.Logger) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if envFile == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.Load(envFile)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ConfigureLogger(logger); err != nil {
		return nil, err
	}

	settings, err := cfg.ScoreSettings()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		tournament: cfg.Tournament(),
		decoder:    feed.NewDecoder(settings, logger),
		log:        logger,
		out:        out,
	}, nil
}

// Parses the input flags shared by the standings and seed commands
// and loads the standings from either file
func (a *app) loadStandings(name string, args []string) ([]feed.CategoryStandings, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	standingsFile := fs.String("standings", "", "standings-by-category JSON file")
	matchesFile := fs.String("matches", "", "matches-by-filter JSON file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	switch {
	case *standingsFile != "" && *matchesFile != "":
		return nil, fmt.Errorf("%w: -standings and -matches are exclusive", ErrUsage)
	case *standingsFile != "":
		return readFile(*standingsFile, a.decoder.DecodeStandings)
	case *matchesFile != "":
		matches, err := readFile(*matchesFile, a.decoder.DecodeMatches)
		if err != nil {
			return nil, err
		}
		return standingsFromMatches(matches, a.tournament.Points), nil
	}

	return nil, fmt.Errorf("%w: %v needs -standings or -matches", ErrUsage, name)
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()

	result, err := decode(f)
	if err != nil {
		return result, fmt.Errorf("%v: %w", path, err)
	}
	return result, nil
}

func (a *app) writeJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func handleStandings(ctx context.Context, a *app, args []string) error {
	categories, err := a.loadStandings("standings", args)
	if err != nil {
		return err
	}

	reports, err := buildStandingsReports(ctx, a.tournament, categories)
	if err != nil {
		return err
	}
	return a.writeJSON(reports)
}

func handleSeed(ctx context.Context, a *app, args []string) error {
	categories, err := a.loadStandings("seed", args)
	if err != nil {
		return err
	}

	reports, err := buildSeedReports(ctx, a.tournament, categories)
	if err != nil {
		return err
	}

	for _, r := range reports {
		a.log.WithFields(logrus.Fields{
			"category": r.Category,
			"scheme":   r.Scheme,
			"upper":    len(r.Cohort.Upper),
			"lower":    len(r.Cohort.Lower),
		}).Info("seeded category")
	}

	return a.writeJSON(reports)
}

func handleTree(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	matchesFile := fs.String("matches", "", "matches-by-filter JSON file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *matchesFile == "" {
		return fmt.Errorf("%w: tree needs -matches", ErrUsage)
	}

	categories, err := readFile(*matchesFile, a.decoder.DecodeMatches)
	if err != nil {
		return err
	}

	reports, err := buildTreeReports(ctx, categories)
	if err != nil {
		return err
	}
	return a.writeJSON(reports)
}
