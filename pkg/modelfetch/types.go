// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"context"
	"time"
)

// Job describes one model to fetch from the Hugging Face Hub.
//
// Repo is the only required field. Everything else is optional and falls
// back to the hub client's defaults:
//
//	job := modelfetch.Job{
//	    Repo:          "Qwen/Qwen3-32B-GGUF",
//	    AllowPatterns: []string{"*Q6_K*"},
//	}
type Job struct {
	// Repo is the repository ID, normally in "owner/name" form.
	//
	// Examples:
	//   - "microsoft/DialoGPT-medium"
	//   - "unsloth/Qwen3-30B-A3B-Instruct-2507-GGUF"
	//   - "gpt2" (legacy single-segment ID)
	Repo string `json:"repo_id" yaml:"repo_id" validate:"required,repoid"`

	// LocalDir is where the files are materialized. When empty, the
	// Downloader derives it from its base directory and Repo.
	LocalDir string `json:"local_dir,omitempty" yaml:"local_dir,omitempty"`

	// AllowPatterns selects which remote files are fetched. A file is
	// fetched if it matches any pattern. Empty means every file.
	//
	// Examples:
	//   - []string{"*.json", "*.txt"}
	//   - []string{"*Q8*"} matches "model-Q8_0.gguf"
	AllowPatterns []string `json:"allow_patterns,omitempty" yaml:"allow_patterns,omitempty"`

	// IgnorePatterns drops files even when an allow pattern matched.
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`

	// Revision is the branch, tag, or commit SHA to fetch.
	// If empty, the hub's default branch is used.
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`

	// ForceDownload re-fetches files that are already present locally.
	ForceDownload bool `json:"force_download,omitempty" yaml:"force_download,omitempty"`

	// Description is free text shown next to the job in batch runs.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Request is what the Downloader hands to a Fetcher: a Job with its
// destination resolved and the process-level settings attached.
type Request struct {
	Repo           string
	Dir            string
	AllowPatterns  []string
	IgnorePatterns []string
	Revision       string
	Force          bool

	// Token is forwarded to the hub client for private or gated repos.
	Token string

	// Progress receives file-level events. May be nil.
	Progress ProgressFunc
}

// Fetcher materializes the files of a remote repository into a local
// directory. It is the boundary to the hub client: transfer, caching and
// resume all live behind it.
type Fetcher interface {
	// Fetch downloads the files selected by req into req.Dir and returns
	// the final local path.
	Fetch(ctx context.Context, req Request) (string, error)

	// List returns the remote files req would fetch, without downloading.
	List(ctx context.Context, req Request) ([]string, error)
}

// Plan is the result of a dry run.
type Plan struct {
	Repo     string   `json:"repo"`
	Revision string   `json:"revision,omitempty"`
	Dir      string   `json:"dir"`
	Files    []string `json:"files"`
}

// ProgressEvent represents a progress update while a job runs.
//
// The Event field indicates the type of event:
//   - "scan_start": Remote file listing has begun
//   - "plan_item": A file has been selected for download
//   - "file_start": Download of a file has started
//   - "file_done": File is in place in the destination directory
//   - "error": An error occurred
//   - "done": The job is complete
type ProgressEvent struct {
	// Time is when the event occurred (UTC).
	Time time.Time `json:"time"`

	// Level is the log level: "debug", "info", "warn", "error".
	// Empty defaults to "info".
	Level string `json:"level,omitempty"`

	Event    string `json:"event"`
	Repo     string `json:"repo,omitempty"`
	Revision string `json:"revision,omitempty"`

	// Path is the relative file path within the repository.
	Path string `json:"path,omitempty"`

	// Index and Count locate a file within the job's selection (1-based).
	Index int `json:"index,omitempty"`
	Count int `json:"count,omitempty"`

	Message string `json:"message,omitempty"`
}

// ProgressFunc is a callback for receiving progress events.
type ProgressFunc func(ProgressEvent)
