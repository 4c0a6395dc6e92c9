// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomlx/go-huggingface/hub"
)

// EnvHFTransfer is the process-wide toggle for accelerated transfers.
const EnvHFTransfer = "HF_HUB_ENABLE_HF_TRANSFER"

// cacheSubdir is where the hub client keeps its cache inside a destination.
var cacheSubdir = filepath.Join(".cache", "huggingface")

// AcceleratedTransfer reports whether EnvHFTransfer is switched on.
func AcceleratedTransfer() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvHFTransfer))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// HubFetcher is the Fetcher backed by the go-huggingface hub client.
// The client downloads into a cache inside the destination directory; each
// selected file is then linked (or copied) to its repository path.
type HubFetcher struct {
	logger *slog.Logger

	// Verbosity is handed to the hub client, which prints its own transfer
	// counters to stdout when it is above zero.
	Verbosity int
}

// NewHubFetcher returns a HubFetcher logging to logger (slog.Default if nil).
func NewHubFetcher(logger *slog.Logger) *HubFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &HubFetcher{logger: logger, Verbosity: 1}
}

func (h *HubFetcher) repo(req Request, cacheDir string) *hub.Repo {
	r := hub.New(req.Repo).WithCacheDir(cacheDir)
	if req.Token != "" {
		r = r.WithAuth(req.Token)
	}
	if req.Revision != "" {
		r = r.WithRevision(req.Revision)
	}
	r.Verbosity = h.Verbosity
	return r
}

// List returns the remote files selected by req's patterns. It leaves
// req.Dir untouched: the repository info is cached in a temporary directory.
func (h *HubFetcher) List(ctx context.Context, req Request) ([]string, error) {
	tmp, err := os.MkdirTemp("", "lllms-plan-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)
	return h.list(ctx, h.repo(req, tmp), req)
}

func (h *HubFetcher) list(ctx context.Context, repo *hub.Repo, req Request) ([]string, error) {
	var all []string
	for name, err := range repo.IterFileNames() {
		if err != nil {
			return nil, fmt.Errorf("list remote files: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		all = append(all, name)
	}
	selected := MatchFiles(all, req.AllowPatterns, req.IgnorePatterns)
	h.logger.Debug("remote files", "repo", req.Repo, "total", len(all), "selected", len(selected))
	if len(selected) == 0 {
		return nil, ErrNoMatchingFiles
	}
	return selected, nil
}

// Fetch downloads the selected files and materializes them under req.Dir.
func (h *HubFetcher) Fetch(ctx context.Context, req Request) (string, error) {
	emit := func(ev ProgressEvent) {
		if req.Progress == nil {
			return
		}
		if ev.Time.IsZero() {
			ev.Time = time.Now().UTC()
		}
		ev.Repo = req.Repo
		ev.Revision = req.Revision
		req.Progress(ev)
	}

	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return "", err
	}

	cacheDir := filepath.Join(req.Dir, cacheSubdir)
	repo := h.repo(req, cacheDir)
	if req.Force {
		if err := os.RemoveAll(cacheDir); err != nil {
			return "", fmt.Errorf("clear cache: %w", err)
		}
		if err := repo.DownloadInfo(true); err != nil {
			return "", fmt.Errorf("refresh repository info: %w", err)
		}
	}

	emit(ProgressEvent{Event: "scan_start", Message: "listing remote files"})
	files, err := h.list(ctx, repo, req)
	if err != nil {
		emit(ProgressEvent{Level: "error", Event: "error", Message: err.Error()})
		return "", err
	}
	for i, f := range files {
		emit(ProgressEvent{Event: "plan_item", Path: f, Index: i + 1, Count: len(files)})
	}

	var cached []string
	if AcceleratedTransfer() {
		h.logger.Debug("accelerated transfer", "repo", req.Repo, "files", len(files))
		if cached, err = repo.DownloadFiles(files...); err != nil {
			emit(ProgressEvent{Level: "error", Event: "error", Message: err.Error()})
			return "", err
		}
	} else {
		cached = make([]string, 0, len(files))
		for i, f := range files {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			emit(ProgressEvent{Event: "file_start", Path: f, Index: i + 1, Count: len(files)})
			p, err := repo.DownloadFile(f)
			if err != nil {
				err = &FileError{Path: f, Err: err}
				emit(ProgressEvent{Level: "error", Event: "error", Path: f, Message: err.Error()})
				return "", err
			}
			cached = append(cached, p)
		}
	}
	if len(cached) != len(files) {
		return "", fmt.Errorf("hub client returned %d paths for %d files", len(cached), len(files))
	}

	for i, f := range files {
		dst := filepath.Join(req.Dir, filepath.FromSlash(f))
		if err := materialize(cached[i], dst); err != nil {
			err = &FileError{Path: f, Err: err}
			emit(ProgressEvent{Level: "error", Event: "error", Path: f, Message: err.Error()})
			return "", err
		}
		emit(ProgressEvent{Event: "file_done", Path: f, Index: i + 1, Count: len(files)})
	}

	emit(ProgressEvent{Event: "done", Message: fmt.Sprintf("%d files in %s", len(files), req.Dir)})
	return req.Dir, nil
}

// materialize places the cached file src at dst, replacing whatever is
// there. It hard-links when possible and copies otherwise.
func materialize(src, dst string) error {
	target, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if fi, err := os.Lstat(dst); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", dst)
		}
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	if err := os.Link(target, dst); err == nil {
		return nil
	}
	return copyFile(target, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
