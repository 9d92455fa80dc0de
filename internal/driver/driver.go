// Package driver sits between the CLI and the parse layer: it loads and
// normalizes source bytes, fans parse attempts out over directories, and
// caches check results on disk.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"qasm/internal/parse"
	"qasm/internal/source"
)

// FileResult is the parse outcome for one file plus the normalized bytes,
// kept so formatters can print source context.
type FileResult struct {
	Path   string
	Src    []byte
	Result parse.Result
}

// Parse parses a single file. The bytes are read and normalized here and
// handed to the engine as an in-memory buffer, so CRLF sources report the
// same positions on every platform. A file that cannot be read yields a
// FileResult whose diagnostics name the failure, mirroring parse.File.
func Parse(path string, maxDiagnostics int) (*FileResult, error) {
	content, _, err := source.ReadFile(path)
	if err != nil {
		res, perr := parse.File(path, parse.Options{MaxDiagnostics: maxDiagnostics})
		if perr != nil {
			return nil, perr
		}
		return &FileResult{Path: path, Result: res}, nil
	}

	res, err := parse.Text(string(content), path, parse.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}
	return &FileResult{Path: path, Src: content, Result: res}, nil
}

// listQFiles возвращает отсортированный список всех *.q файлов в директории.
func listQFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".q") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.q file under dir in parallel. Each file is one
// independent attempt with its own session and diagnostic bag, so results
// never share state; they come back ordered by path.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) ([]FileResult, error) {
	files, err := listQFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, err := Parse(path, maxDiagnostics)
			if err != nil {
				return err
			}
			results[i] = *r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
