// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

/*
Package modelfetch materializes Hugging Face Hub repositories into local
directories.

The package does not move bytes itself. A Downloader decides where a Job
lands and hands a Request to a Fetcher; HubFetcher is the Fetcher backed by
the go-huggingface hub client, which owns transfer, caching and resume.

# Quick Start

	d, err := modelfetch.New("./models", modelfetch.NewHubFetcher(nil))
	if err != nil {
		log.Fatal(err)
	}

	path, err := d.Download(ctx, modelfetch.Job{
		Repo:          "Qwen/Qwen3-32B-GGUF",
		AllowPatterns: []string{"*Q6_K*"},
	})

# Destinations

When Job.LocalDir is empty the destination is derived from the base
directory and the repository ID:

	"microsoft/DialoGPT-medium" -> <base>/microsoft/DialoGPT-medium
	"gpt2"                      -> <base>/gpt2

# Patterns

AllowPatterns and IgnorePatterns are globs. A pattern matches a file when it
matches the base name or the whole path, with '*' allowed to span
directories. Patterns wrapped in slashes are regular expressions:

	AllowPatterns:  []string{"*.json", "/q[48]_0/"}
	IgnorePatterns: []string{"*.bin"}

# Batches

RunJobs runs a list of jobs sequentially. Jobs without a repository ID are
skipped and failed jobs are recorded in the Summary; neither stops the run.

# Accelerated transfers

The hub client's batched download path is used when HF_HUB_ENABLE_HF_TRANSFER
is set to a true value. Otherwise files are fetched one at a time with a
progress event per file.
*/
package modelfetch
