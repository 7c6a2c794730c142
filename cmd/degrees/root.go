package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/bootstrap"
	"github.com/vanshika/degrees/internal/config"
	"github.com/vanshika/degrees/internal/logging"
	"github.com/vanshika/degrees/internal/present"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/service"
)

// errReported means the message was already printed for the user.
var errReported = errors.New("reported")

const msgNotFound = "Person not found."

type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	inFile  *os.File
	outFile *os.File

	configFile string
	dir        string
	source     string
	verbose    bool
	plain      bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
	a.inFile, _ = in.(*os.File)
	a.outFile, _ = out.(*os.File)

	root := &cobra.Command{
		Use:   "degrees [directory]",
		Short: "Find how many movies separate two actors",
		Long: `degrees loads people.csv, movies.csv and stars.csv from a dataset
directory (default "large"), asks for two names and prints the shortest
chain of shared movies between them.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive(cmd.Context(), args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML configuration file (overrides CONFIG_FILE)")
	flags.StringVar(&a.dir, "dir", "", "dataset directory (default from config, then \"large\")")
	flags.StringVar(&a.source, "source", "", "dataset source: csv or graph")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log loading details to stderr")
	flags.BoolVar(&a.plain, "plain", false, "disable colours and interactive menus")

	root.AddCommand(newPathCmd(a), newLookupCmd(a))
	return root
}

// loadConfig layers the YAML file, the environment and then flags.
func (a *app) loadConfig(args []string) (config.Config, error) {
	path := a.configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return config.Config{}, err
	}
	if a.dir != "" {
		cfg.Dataset.Dir = a.dir
	}
	if len(args) > 0 {
		cfg.Dataset.Dir = args[0]
	}
	if a.source != "" {
		cfg.Dataset.Source = strings.ToLower(a.source)
	}
	if !a.verbose {
		cfg.Logging.Level = "warn"
	}
	return cfg, config.Validate(cfg)
}

func (a *app) logger(cfg config.Config) *slog.Logger {
	return logging.NewWithWriter(cfg.Logging, a.errOut).With("component", "cli")
}

func (a *app) load(ctx context.Context, args []string) (bootstrap.Dataset, *slog.Logger, error) {
	cfg, err := a.loadConfig(args)
	if err != nil {
		return bootstrap.Dataset{}, nil, err
	}
	logger := a.logger(cfg)
	ds, err := bootstrap.LoadDataset(ctx, logger, cfg)
	if err != nil {
		return bootstrap.Dataset{}, nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, logger, nil
}

func (a *app) interactiveTerminal() bool {
	if a.plain || a.inFile == nil || a.outFile == nil {
		return false
	}
	return isatty.IsTerminal(a.inFile.Fd()) && isatty.IsTerminal(a.outFile.Fd())
}

func (a *app) styles() present.Styles {
	if a.plain || a.outFile == nil || !isatty.IsTerminal(a.outFile.Fd()) {
		return present.PlainStyles()
	}
	return present.ColorStyles()
}

func (a *app) chooser() resolve.Chooser {
	if a.interactiveTerminal() {
		return resolve.NewSelectChooser(os.Getenv("ACCESSIBLE") != "")
	}
	return resolve.NewPromptChooser(a.in, a.out)
}

func (a *app) runInteractive(ctx context.Context, args []string) error {
	fmt.Fprintln(a.out, "Loading data...")
	ds, logger, err := a.load(ctx, args)
	if err != nil {
		return err
	}
	defer ds.Close(context.Background())
	fmt.Fprintln(a.out, "Data loaded.")

	resolver := resolve.NewResolver(ds.Dataset, a.chooser())
	presenter := present.New(ds.Dataset, a.styles())

	source, err := a.promptPerson(ctx, resolver, presenter)
	if err != nil {
		return err
	}
	target, err := a.promptPerson(ctx, resolver, presenter)
	if err != nil {
		return err
	}

	svc := service.NewDegreesService(ds.Dataset, nil, logger)
	result, err := svc.ShortestPath(ctx, source, target)
	if err != nil {
		return err
	}
	return presenter.Render(a.out, result)
}

func (a *app) promptPerson(ctx context.Context, resolver *resolve.Resolver, presenter *present.Presenter) (string, error) {
	fmt.Fprint(a.out, "Name: ")
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read name: %w", err)
	}

	id, err := resolver.Resolve(ctx, strings.TrimSpace(line))
	if err != nil {
		if resolve.IsNotFound(err) {
			_ = presenter.RenderError(a.out, msgNotFound)
			return "", errReported
		}
		return "", err
	}
	return id, nil
}
