package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/trevor-leach/multisearch/api"
	"github.com/trevor-leach/multisearch/api/exact"
	"github.com/trevor-leach/multisearch/errchain"
	"github.com/trevor-leach/multisearch/internal/config"
	"github.com/trevor-leach/multisearch/internal/logging"
	"github.com/trevor-leach/multisearch/internal/report"
	"github.com/trevor-leach/multisearch/internal/scan"
)

// runner carries the process streams and the loaded configuration between
// the cli hooks.
type runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg  *config.Config
	logs io.Closer
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:      "multisearch",
		Usage:     "Search for multiple terms in some text",
		UsageText: "multisearch [--termfile path]... [--searchpath path [-r]] [--mode first|any|all] [search_term...]",
		Writer:    r.stdout,
		ErrWriter: r.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringSliceFlag{
				Name:  "termfile",
				Usage: "File containing search terms, separated by whitespace. May be specified multiple times.",
			},
			&cli.StringFlag{
				Name:    "searchpath",
				Aliases: []string{"p"},
				Usage:   "File in which to search. If a directory, contained files are searched. Defaults to stdin.",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search all subdirectories of searchpath",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "File where results are written. Must not exist. Defaults to stdout.",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "first: first hit of each term, any: earliest hit of any term, all: every hit grouped by term",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Byte offset at which searching starts in each input",
			},
			&cli.BoolFlag{
				Name:  "sort",
				Usage: "Order hits by position instead of grouping them by term",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (tsv, json)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Color output (auto, always, never)",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Encoding of the searched input, e.g. latin1 or shift_jis",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of files searched concurrently",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar while searching a directory",
			},
			&cli.IntFlag{
				Name:  "prefilter",
				Usage: "Term count from which a single-pass trie skips absent terms (0 disables)",
			},
			&cli.BoolFlag{
				Name:  "require",
				Usage: "Exit with an error when nothing matched",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this file, rotated by size",
			},
		},
		Before: r.before,
		Action: r.search,
		After:  r.after,
	}
}

// before loads the configuration, applies explicitly set flags on top of it
// and installs the logger.
func (r *runner) before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errchain.Wrap(err, "loading config")
	}

	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("offset") {
		cfg.Offset = c.Int("offset")
	}
	if c.IsSet("sort") {
		cfg.Sort = c.Bool("sort")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}
	if c.IsSet("encoding") {
		cfg.Encoding = c.String("encoding")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("progress") {
		cfg.Progress = c.Bool("progress")
	}
	if c.IsSet("recursive") {
		cfg.Recursive = c.Bool("recursive")
	}
	if c.IsSet("prefilter") {
		cfg.PrefilterThreshold = c.Int("prefilter")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	cfg.TermFiles = append(cfg.TermFiles, c.StringSlice("termfile")...)

	if err := cfg.Validate(); err != nil {
		return errchain.Wrap(err, "invalid options")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.LogFile = cfg.LogFile
	logger, closer, err := logging.New(logCfg, r.stderr)
	if err != nil {
		return errchain.Wrap(err, "setting up logging")
	}
	slog.SetDefault(logger)

	r.cfg = cfg
	r.logs = closer
	return nil
}

func (r *runner) after(c *cli.Context) error {
	if r.logs != nil {
		return r.logs.Close()
	}
	return nil
}

func (r *runner) search(c *cli.Context) error {
	cfg := r.cfg

	terms, err := r.collectTerms(cfg.Terms, cfg.TermFiles, c.Args().Slice())
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		_ = cli.ShowAppHelp(c)
		return errchain.Wrap(api.ErrNoSearchTerms, "nothing to search for")
	}

	mode, err := api.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	searcher, err := exact.New(mode, terms,
		exact.WithOffset(cfg.Offset),
		exact.WithSorted(cfg.Sort),
		exact.WithPrefilterThreshold(cfg.PrefilterThreshold),
		exact.WithLogger(slog.Default()),
	)
	if err != nil {
		return errchain.Wrap(err, "building searcher")
	}

	searchPath := c.String("searchpath")
	if searchPath == "" && c.IsSet("recursive") {
		return errchain.New("\"-r\" option may only be specified along with \"--searchpath\"")
	}

	out, closeOut, err := r.openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	opts := []scan.Option{
		scan.WithWorkers(cfg.Workers),
		scan.WithRecursive(cfg.Recursive),
		scan.WithEncoding(cfg.Encoding),
		scan.WithLogger(slog.Default()),
	}
	if cfg.Progress {
		opts = append(opts, scan.WithProgress(r.stderr))
	}
	scanner, err := scan.New(searcher, opts...)
	if err != nil {
		return errchain.Wrap(err, "building scanner")
	}
	defer scanner.Release()

	var results []scan.Result
	if searchPath == "" {
		results = []scan.Result{scanner.ScanReader(c.Context, "-", r.stdin)}
	} else {
		results, err = scanner.ScanPath(c.Context, searchPath)
		if err != nil {
			return err
		}
	}

	w, err := report.New(out, report.Format(cfg.Format), cfg.Color)
	if err != nil {
		return err
	}
	if err := w.Write(results); err != nil {
		return errchain.Wrap(err, "writing results")
	}
	slog.Debug("search finished", "inputs", len(results), "matches", w.Count(), "mode", mode)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintln(r.stderr, res.Err)
		}
	}
	if failed > 0 {
		return errchain.New(fmt.Sprintf("%d of %d inputs could not be searched", failed, len(results)))
	}

	if c.Bool("require") {
		_, err := errchain.RequireFunc(w.Count(), w.Count() > 0, func() any {
			return fmt.Sprintf("no matches for %d search terms", len(terms))
		})
		return err
	}
	return nil
}

// collectTerms gathers terms from the config, term files and arguments, in
// that order.
func (r *runner) collectTerms(configured, termFiles, args []string) ([]string, error) {
	var terms []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}

	for _, term := range configured {
		add(term)
	}
	for _, termFile := range termFiles {
		fileTerms, err := readTermFile(termFile)
		if err != nil {
			return nil, err
		}
		for _, term := range fileTerms {
			add(term)
		}
	}
	for _, term := range args {
		add(term)
	}
	return terms, nil
}

func readTermFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errchain.Wrap(err, fmt.Sprintf("opening term file %q", path))
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		terms = append(terms, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errchain.Wrap(err, fmt.Sprintf("reading term file %q", path))
	}
	return terms, nil
}

// openOutput returns the writer for results. A named output file must not
// already exist.
func (r *runner) openOutput(outFile string) (io.Writer, func(), error) {
	if outFile == "" {
		return r.stdout, func() {}, nil
	}

	info, err := os.Stat(outFile)
	if err == nil {
		if info.IsDir() {
			return nil, nil, errchain.New(fmt.Sprintf("output file %q is a directory", outFile))
		}
		return nil, nil, errchain.New(fmt.Sprintf("output file %q already exists", outFile))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, errchain.Wrap(err, fmt.Sprintf("output file %q", outFile))
	}

	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, errchain.Wrap(err, fmt.Sprintf("opening output file %q", outFile))
	}
	return f, func() { f.Close() }, nil
}
