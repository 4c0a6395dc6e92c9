// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch

import (
	"context"
	"log/slog"
	"strings"
)

// JobFailure records one job that did not complete.
type JobFailure struct {
	Index int // 1-based position in the job list
	Repo  string
	Err   error
}

// Summary is the outcome of RunJobs.
type Summary struct {
	Total     int
	Skipped   int
	Succeeded int
	Failed    int
	Failures  []JobFailure

	// Paths holds the local path of every successful job, in order.
	Paths []string
}

// BatchOptions tunes RunJobs. The zero value is valid.
type BatchOptions struct {
	Logger *slog.Logger

	// DryRun lists each job's files through Downloader.Plan instead of
	// downloading them.
	DryRun bool

	// OnJobStart and OnJobDone are called around every attempted job.
	OnJobStart func(index, total int, job Job)
	OnJobDone  func(index, total int, job Job, path string, err error)

	// OnPlan receives the plan of every job when DryRun is set.
	OnPlan func(index, total int, plan *Plan)
}

// RunJobs processes jobs one at a time, in order. A job without a
// repository ID is skipped with a warning; a job that fails is logged and
// the loop moves on. Cancelling ctx stops further jobs from starting.
func RunJobs(ctx context.Context, d *Downloader, jobs []Job, opts BatchOptions) Summary {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sum := Summary{Total: len(jobs)}
	logger.Info("found models in manifest", "count", len(jobs))

	for i, job := range jobs {
		idx := i + 1
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", "remaining", len(jobs)-i, "err", err)
			break
		}
		if strings.TrimSpace(job.Repo) == "" {
			logger.Warn("skipping model: no repo_id specified", "index", idx)
			sum.Skipped++
			continue
		}

		logger.Info("processing", "index", idx, "total", len(jobs), "repo", job.Repo)
		if job.Description != "" {
			logger.Info("description", "repo", job.Repo, "text", job.Description)
		}
		if opts.OnJobStart != nil {
			opts.OnJobStart(idx, len(jobs), job)
		}

		var (
			path string
			err  error
		)
		if opts.DryRun {
			var p *Plan
			if p, err = d.Plan(ctx, job); err == nil {
				path = p.Dir
				if opts.OnPlan != nil {
					opts.OnPlan(idx, len(jobs), p)
				}
			}
		} else {
			path, err = d.Download(ctx, job)
		}

		if opts.OnJobDone != nil {
			opts.OnJobDone(idx, len(jobs), job, path, err)
		}
		if err != nil {
			logger.Error("failed to download", "repo", job.Repo, "err", err)
			sum.Failed++
			sum.Failures = append(sum.Failures, JobFailure{Index: idx, Repo: job.Repo, Err: err})
			continue
		}
		sum.Succeeded++
		sum.Paths = append(sum.Paths, path)
	}
	return sum
}
