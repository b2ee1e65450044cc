// Package scan runs an api.Searcher over files, directories and streams.
package scan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/trevor-leach/multisearch/api"
	"github.com/trevor-leach/multisearch/errchain"
)

// Result holds the hits for one input. Err is set when the input could not
// be read; Matches is then empty.
type Result struct {
	Path    string
	Matches []api.Match
	Err     error
}

// Scanner searches inputs with a shared Searcher on a worker pool.
type Scanner struct {
	searcher  api.Searcher
	workers   int
	recursive bool
	decoding  encoding.Encoding
	progress  io.Writer
	logger    *slog.Logger
	pool      *ants.Pool
}

// Option configures a Scanner.
type Option func(*Scanner) error

// WithWorkers sets the number of files searched concurrently.
// Default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Scanner) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		s.workers = n
		return nil
	}
}

// WithRecursive makes ScanPath descend into subdirectories.
func WithRecursive(recursive bool) Option {
	return func(s *Scanner) error {
		s.recursive = recursive
		return nil
	}
}

// WithEncoding decodes input from the named encoding (a WHATWG label such
// as "latin1" or "shift_jis") to UTF-8 before searching. Match locations
// are then offsets into the decoded text. UTF-8 input is searched as is.
func WithEncoding(label string) Option {
	return func(s *Scanner) error {
		if label == "" {
			s.decoding = nil
			return nil
		}
		enc, err := htmlindex.Get(label)
		if err != nil {
			return fmt.Errorf("unknown encoding %q: %w", label, err)
		}
		if name, _ := htmlindex.Name(enc); name == "utf-8" {
			enc = nil
		}
		s.decoding = enc
		return nil
	}
}

// WithProgress draws a progress bar on w while scanning directories.
func WithProgress(w io.Writer) Option {
	return func(s *Scanner) error {
		s.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Scanner. Call Release when done.
func New(searcher api.Searcher, opts ...Option) (*Scanner, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Scanner{
		searcher: searcher,
		workers:  runtime.NumCPU(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	return s, nil
}

// Release releases the worker pool.
// The scanner should not be used after calling Release.
func (s *Scanner) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// ScanPath searches the file at path, or the regular files in the directory
// at path. Results are ordered by path. Per-file failures are reported in
// Result.Err; the returned error is for an unusable path or a cancelled ctx.
func (s *Scanner) ScanPath(ctx context.Context, path string) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errchain.Wrap(err, fmt.Sprintf("search path %q", path))
	}
	if !info.IsDir() {
		return []Result{s.scanFile(ctx, path)}, nil
	}

	results, err := s.collect(filepath.Clean(path))
	if err != nil {
		return nil, errchain.Wrap(err, fmt.Sprintf("walking %q", path))
	}

	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = newBar(s.progress, path, pending(results))
	}

	var wg sync.WaitGroup
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.scanFile(ctx, results[i].Path)
			if bar != nil {
				_ = bar.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(s.progress)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanReader searches everything read from r, labelling the result name.
func (s *Scanner) ScanReader(ctx context.Context, name string, r io.Reader) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: name, Err: err}
	}
	source, err := s.read(r)
	if err != nil {
		return s.failed(name, err)
	}
	return Result{Path: name, Matches: s.searcher.Search(source)}
}

func (s *Scanner) scanFile(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return s.failed(path, err)
	}
	defer f.Close()

	return s.ScanReader(ctx, path, f)
}

func (s *Scanner) read(r io.Reader) ([]byte, error) {
	if s.decoding != nil {
		r = transform.NewReader(r, s.decoding.NewDecoder())
	}
	return io.ReadAll(r)
}

func (s *Scanner) failed(path string, err error) Result {
	s.logger.Error("error searching file", "path", path, "err", err)
	return Result{
		Path: path,
		Err:  errchain.WrapFunc(err, func() any { return fmt.Sprintf("searching %s", path) }),
	}
}

// collect lists the regular files under root in lexical order. Entries
// that cannot be read are returned with Err set.
func (s *Scanner) collect(root string) ([]Result, error) {
	var results []Result
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("error walking path", "path", path, "err", err)
			results = append(results, Result{Path: path, Err: errchain.Wrap(err, fmt.Sprintf("walking %s", path))})
			return nil
		}
		if d.IsDir() {
			if path != root && !s.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			results = append(results, Result{Path: path})
		}
		return nil
	})
	return results, err
}

func pending(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

func newBar(w io.Writer, description string, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
