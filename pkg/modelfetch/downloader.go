// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// DefaultBaseDir is used when no base directory is configured.
const DefaultBaseDir = "models"

// Downloader resolves where each job lands and forwards it to a Fetcher.
// It performs no retries and never cleans up after a failed fetch.
type Downloader struct {
	baseDir  string
	fetcher  Fetcher
	logger   *slog.Logger
	token    string
	progress ProgressFunc
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithLogger sets the logger used for intent and result messages.
func WithLogger(l *slog.Logger) Option {
	return func(d *Downloader) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithToken sets the hub access token forwarded with every request.
func WithToken(token string) Option {
	return func(d *Downloader) { d.token = token }
}

// WithProgress sets the callback forwarded with every request.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Downloader) { d.progress = fn }
}

// New creates a Downloader rooted at baseDir, creating the directory if
// needed. An empty baseDir means DefaultBaseDir.
func New(baseDir string, fetcher Fetcher, opts ...Option) (*Downloader, error) {
	d := &Downloader{
		baseDir: defaultString(baseDir, DefaultBaseDir),
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.fetcher == nil {
		return nil, errors.New("modelfetch: nil fetcher")
	}
	if err := os.MkdirAll(d.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return d, nil
}

// BaseDir returns the directory derived destinations are placed under.
func (d *Downloader) BaseDir() string {
	return d.baseDir
}

// SetBaseDir replaces the base directory, as a manifest override does.
// The directory is not created here; the Fetcher creates destinations.
func (d *Downloader) SetBaseDir(dir string) {
	if dir != "" {
		d.baseDir = dir
	}
}

// Destination returns the directory job's files are materialized into.
func (d *Downloader) Destination(job Job) string {
	if job.LocalDir != "" {
		return job.LocalDir
	}
	return DefaultDestination(d.baseDir, job.Repo)
}

// Download fetches job into its destination and returns the local path.
// A failure from the Fetcher is logged and returned as a *FetchError.
func (d *Downloader) Download(ctx context.Context, job Job) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := job.Validate(); err != nil {
		return "", err
	}

	req := d.request(job)
	d.logger.Info("downloading", "repo", req.Repo, "dir", req.Dir)
	if len(req.AllowPatterns) > 0 {
		d.logger.Info("including patterns", "repo", req.Repo, "patterns", req.AllowPatterns)
	}
	if len(req.IgnorePatterns) > 0 {
		d.logger.Info("excluding patterns", "repo", req.Repo, "patterns", req.IgnorePatterns)
	}
	if req.Revision != "" {
		d.logger.Debug("pinned revision", "repo", req.Repo, "revision", req.Revision)
	}

	start := time.Now()
	path, err := d.fetcher.Fetch(ctx, req)
	if err != nil {
		d.logger.Error("download failed", "repo", req.Repo, "err", err)
		return "", &FetchError{Repo: req.Repo, Err: err}
	}
	d.logger.Info("download complete", "repo", req.Repo, "path", path, "elapsed", time.Since(start).Round(time.Millisecond))
	return path, nil
}

// Plan lists the files job would fetch without downloading anything.
func (d *Downloader) Plan(ctx context.Context, job Job) (*Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	req := d.request(job)
	files, err := d.fetcher.List(ctx, req)
	if err != nil {
		return nil, &FetchError{Repo: req.Repo, Err: err}
	}
	return &Plan{Repo: req.Repo, Revision: req.Revision, Dir: req.Dir, Files: files}, nil
}

func (d *Downloader) request(job Job) Request {
	return Request{
		Repo:           job.Repo,
		Dir:            d.Destination(job),
		AllowPatterns:  job.AllowPatterns,
		IgnorePatterns: job.IgnorePatterns,
		Revision:       job.Revision,
		Force:          job.ForceDownload,
		Token:          d.token,
		Progress:       d.progress,
	}
}
