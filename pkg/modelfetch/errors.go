// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"errors"
	"fmt"
)

// Common errors returned by the library.
var (
	// ErrMissingRepo is returned when a job has no repository ID.
	ErrMissingRepo = errors.New("missing repository ID")

	// ErrInvalidRepo is returned when the repository ID is malformed.
	ErrInvalidRepo = errors.New("invalid repository ID")

	// ErrNoMatchingFiles is returned when the include/exclude patterns
	// leave nothing to download.
	ErrNoMatchingFiles = errors.New("no files match the include/exclude patterns")
)

// FetchError wraps a failure from the Fetcher with the repository it was
// fetching.
type FetchError struct {
	Repo string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Repo, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FileError wraps an error with the repository file it concerns.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
