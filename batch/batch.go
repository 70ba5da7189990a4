// Package batch checks many documents concurrently, and optionally writes relinked
// copies of them.
package batch

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rickb777/srcsetlint/config"
	"github.com/rickb777/srcsetlint/filter"
	"github.com/rickb777/srcsetlint/validator"
	"github.com/rickb777/srcsetlint/work"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Batch contains all the checking data.
type Batch struct {
	config  config.Config
	fs      afero.Fs
	baseURL *url.URL

	includes filter.Filter
	excludes filter.Filter

	validator *validator.Validator
}

// New creates a new Batch instance. The config should already have sensible defaults.
func New(cfg config.Config, fs afero.Fs) (*Batch, error) {
	var errs []error

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		errs = append(errs, err)
	} else if baseURL.Scheme == "" || baseURL.Host == "" {
		errs = append(errs, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL))
	}

	includes, err := filter.New(cfg.Includes)
	if err != nil {
		errs = append(errs, err)
	}

	excludes, err := filter.New(cfg.Excludes)
	if err != nil {
		errs = append(errs, err)
	}

	if errs != nil {
		return nil, errors.Join(errs...)
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Batch{
		config:    cfg,
		fs:        fs,
		baseURL:   baseURL,
		includes:  includes,
		excludes:  excludes,
		validator: validator.New(validator.Options{WarnMixedDescriptors: cfg.WarnMixedDescriptors}),
	}, nil
}

// Run checks the documents named by paths, each of which may be a file or a
// directory. Results are in the order of paths, then sorted by path within each
// directory. An error is returned only when the run could not be completed; the
// problems of individual files are held in their results.
func (b *Batch) Run(ctx context.Context, paths ...string) ([]Result, error) {
	var items []work.Item

	for _, root := range paths {
		found, err := b.collect(root)
		if err != nil {
			return nil, err
		}
		items = append(items, found...)
	}

	results := make([]Result, len(items))

	sem := semaphore.NewWeighted(int64(b.config.Concurrency))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, item := range items {
		group.Go(func() error {
			if err := sem.Acquire(groupCtx, 1); err != nil {
				return fmt.Errorf("acquire semaphore: %w", err)
			}
			defer sem.Release(1)

			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = b.process(item)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("checking files: %w", err)
	}

	return results, nil
}
