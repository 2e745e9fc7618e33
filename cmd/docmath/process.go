package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docmath/internal/parser"
	"github.com/dgallion1/docmath/internal/pipeline"
)

// fileResult is the outcome of rendering one input file.
type fileResult struct {
	path   string
	input  []byte
	output *pipeline.Rendered
}

// renderFiles renders every path concurrently. Results keep the order of
// paths; the first read or parse error cancels the rest.
func renderFiles(ctx context.Context, opts runOptions, paths []string) ([]fileResult, error) {
	for _, p := range paths {
		if !parser.IsSupportedExtension(p) {
			return nil, fmt.Errorf("%s: unsupported file type", p)
		}
	}

	limit := opts.jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := pipeline.RenderDocument(gctx, opts.tr, path, opts.fragment, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			opts.log.Debug("rendered", "file", path, "diagnostics", out.File.Len())
			results[i] = fileResult{path: path, input: data, output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
