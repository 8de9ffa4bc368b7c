// Package imports scrapes import statements out of a project tree.
//
// The scrape is a flat pattern match over file contents, not an import graph:
// anything that looks like `import x`, `import x as y`, `from x import y` or
// `from x import y as z` is collected, deduplicated and returned.
package imports

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of files read concurrently during a scan.
const DefaultWorkers = 8

// degenerate is produced by malformed dotted paths and is never a valid import.
const degenerate = "import ."

var basePatterns = []string{
	`import [\w.]+ as [\w.]+`,
	`import [\w.]+`,
	`from [\w.]+ import [\w.]+ as [\w.]+`,
	`from [\w.]+ import [\w.]+`,
}

// excludedSegments are substrings that remove a path from the scan.
var excludedSegments = []string{".git", "env"}

var (
	looseRegex    = compile(false)
	anchoredRegex = compile(true)
)

func compile(anchored bool) *regexp.Regexp {
	if !anchored {
		return regexp.MustCompile(strings.Join(basePatterns, "|"))
	}

	return regexp.MustCompile(`(?:\A|\n)(?:` + strings.Join(basePatterns, "|") + `)`)
}

type scanner struct {
	anchored bool
	workers  int
	logger   *zap.Logger
}

// Option configures a scan.
type Option func(s *scanner)

// Anchored only accepts statements at the start of the content or right after a newline.
func Anchored() Option {
	return func(s *scanner) {
		s.anchored = true
	}
}

// Workers sets how many files are read concurrently.
func Workers(n int) Option {
	return func(s *scanner) {
		s.workers = n
	}
}

// Logger sets the logger used to report skipped files.
func Logger(logger *zap.Logger) Option {
	return func(s *scanner) {
		s.logger = logger
	}
}

// Extract returns every import-like statement found in content, in match order.
func Extract(content string, anchored bool) []string {
	re := looseRegex
	if anchored {
		re = anchoredRegex
	}

	matches := re.FindAllString(content, -1)
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		res = append(res, strings.TrimSpace(m))
	}

	return res
}

// Excluded reports whether rel, a path relative to the scan root, is skipped.
func Excluded(rel string) bool {
	for _, seg := range excludedSegments {
		if strings.Contains(rel, seg) {
			return true
		}
	}

	return false
}

// Files lists every regular file under root that survives the exclusion filter.
// A root that cannot be walked yields no files.
func Files(root string) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}

		if rel != "." && Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, path)
		}

		return nil
	})

	return files
}

// Scan walks root and returns the deduplicated, sorted set of import statements.
// Files that cannot be read as UTF-8 text contribute nothing.
func Scan(ctx context.Context, root string, opts ...Option) ([]string, error) {
	s := &scanner{
		workers: DefaultWorkers,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.workers <= 0 {
		s.workers = 1
	}

	var (
		mu  sync.Mutex
		set = make(map[string]struct{})
	)

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(s.workers)

	for _, file := range Files(root) {
		file := file
		errGrp.Go(func() error {
			if err := dCtx.Err(); err != nil {
				return errors.Wrapf(err, "scan of %s interrupted", root)
			}

			found, ok := s.readImports(file)
			if !ok {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			for _, imp := range found {
				set[imp] = struct{}{}
			}

			return nil
		})
	}

	if err := errGrp.Wait(); err != nil {
		return nil, err
	}

	delete(set, degenerate)

	res := make([]string, 0, len(set))
	for imp := range set {
		res = append(res, imp)
	}

	sort.Strings(res)

	return res, nil
}

func (s *scanner) readImports(file string) ([]string, bool) {
	data, err := os.ReadFile(file)
	if err != nil {
		s.logger.Debug("skipping unreadable file", zap.String("path", file), zap.Error(err))

		return nil, false
	}

	if !utf8.Valid(data) {
		s.logger.Debug("skipping non-text file", zap.String("path", file))

		return nil, false
	}

	return Extract(string(data), s.anchored), true
}
