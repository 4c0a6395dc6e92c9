// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/carteakey/lllms/pkg/modelfetch"
)

// fakeFetcher records every request and fails for repos listed in fail.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []modelfetch.Request
	lists []modelfetch.Request
	fail  map[string]error
	files []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, req modelfetch.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err, ok := f.fail[req.Repo]; ok {
		return "", err
	}
	return req.Dir, nil
}

func (f *fakeFetcher) List(ctx context.Context, req modelfetch.Request) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, req)
	if err, ok := f.fail[req.Repo]; ok {
		return nil, err
	}
	return modelfetch.MatchFiles(f.files, req.AllowPatterns, req.IgnorePatterns), nil
}

func (f *fakeFetcher) repos() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Repo)
	}
	return out
}

var errNetwork = errors.New("connection reset by peer")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
