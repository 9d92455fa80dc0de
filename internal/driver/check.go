package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"qasm/internal/diag"
	"qasm/internal/parse"
	"qasm/internal/source"
)

// CheckResult reports the diagnostics for one file, possibly served from
// the disk cache when the content hash matched.
type CheckResult struct {
	Path        string
	Src         []byte
	HasRoot     bool
	Diagnostics []diag.Diagnostic
	Cached      bool
}

// Clean reports whether the check found no problems.
func (r *CheckResult) Clean() bool {
	return len(r.Diagnostics) == 0
}

// Check parses one file for diagnostics only. With a non-nil cache,
// unchanged content is answered from disk without re-parsing; fresh
// results are stored back. Cache failures degrade to a plain parse.
func Check(path string, maxDiagnostics int, cache *DiskCache) (*CheckResult, error) {
	content, _, err := source.ReadFile(path)
	if err != nil {
		// Вход недоступен: та же диагностика, что и у parse.File.
		res, perr := parse.File(path, parse.Options{MaxDiagnostics: maxDiagnostics})
		if perr != nil {
			return nil, perr
		}
		return &CheckResult{Path: path, Diagnostics: res.Errors.Items()}, nil
	}

	key := HashContent(content)
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		return &CheckResult{
			Path:        path,
			Src:         content,
			HasRoot:     payload.HasRoot,
			Diagnostics: payload.Restore(),
			Cached:      true,
		}, nil
	}

	res, err := parse.Text(string(content), path, parse.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}

	outcome := parseOutcome{hasRoot: res.Root != nil, diags: res.Errors.Items()}
	// Ошибка записи в кеш не мешает самой проверке.
	_ = cache.Put(key, NewDiskPayload(path, outcome))

	return &CheckResult{
		Path:        path,
		Src:         content,
		HasRoot:     res.Root != nil,
		Diagnostics: res.Errors.Items(),
	}, nil
}

// CheckDir checks every *.q file under dir in parallel, in path order.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int, cache *DiskCache) ([]CheckResult, error) {
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

	results := make([]CheckResult, len(files))

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
			r, err := Check(path, maxDiagnostics, cache)
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
