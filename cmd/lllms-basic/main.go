// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Command lllms-basic fetches one hard-coded model. Edit the job below and
// `go run ./cmd/lllms-basic`; use cmd/lllms for anything configurable.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/carteakey/lllms/pkg/modelfetch"
)

func main() {
	os.Setenv(modelfetch.EnvHFTransfer, "1")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Other models fetched this way:
	//   ggml-org/gpt-oss-120b-GGUF -> models/ggml-org/gpt-oss-120b-GGUF
	//   Qwen/Qwen3-32B-GGUF, allow *Q6_K* -> models/qwen/Qwen3-32B-GGUF
	job := modelfetch.Job{
		Repo:          "unsloth/Qwen3-30B-A3B-Instruct-2507-GGUF",
		LocalDir:      "models/qwen/Qwen3-30B-A3B-Instruct-2507-GGUF",
		AllowPatterns: []string{"*Q8*"},
	}

	d, err := modelfetch.New(modelfetch.DefaultBaseDir, modelfetch.NewHubFetcher(logger),
		modelfetch.WithLogger(logger),
		modelfetch.WithToken(os.Getenv("HF_TOKEN")),
	)
	if err != nil {
		logger.Error("init", "err", err)
		os.Exit(1)
	}
	if _, err := d.Download(context.Background(), job); err != nil {
		os.Exit(1)
	}
}
