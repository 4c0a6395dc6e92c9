// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// newLogger builds the process logger from the global flags. Logs go to
// stderr and, with --log-file, to the file as well. The returned func
// closes the log file.
func newLogger(ro *RootOpts, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := parseLevel(ro)
	if err != nil {
		return nil, nil, err
	}

	w := stderr
	closer := func() {}
	if ro.LogFile != "" {
		f, err := os.OpenFile(ro.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(stderr, f)
		closer = func() { _ = f.Close() }
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if ro.JSONOut {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h), closer, nil
}

func parseLevel(ro *RootOpts) (slog.Level, error) {
	switch {
	case ro.Verbose:
		return slog.LevelDebug, nil
	case ro.Quiet:
		return slog.LevelWarn, nil
	}
	name := strings.TrimSpace(ro.LogLevel)
	if name == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", ro.LogLevel)
	}
	return lvl, nil
}
