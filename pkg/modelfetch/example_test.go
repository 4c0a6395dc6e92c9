// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package modelfetch_test

import (
	"context"
	"fmt"
	"os"

	"github.com/carteakey/lllms/pkg/modelfetch"
)

func ExampleDownloader_Download() {
	progress := func(e modelfetch.ProgressEvent) {
		switch e.Event {
		case "scan_start":
			fmt.Println("Scanning repository...")
		case "file_done":
			fmt.Printf("Downloaded: %s\n", e.Path)
		case "done":
			fmt.Println("Complete!")
		}
	}

	d, err := modelfetch.New("./example_output", modelfetch.NewHubFetcher(nil),
		modelfetch.WithProgress(progress),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	path, err := d.Download(context.Background(), modelfetch.Job{
		Repo:     "hf-internal-testing/tiny-random-gpt2",
		Revision: "main",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	fmt.Println(path)

	// Cleanup
	os.RemoveAll("./example_output")
}

func ExampleRunJobs() {
	d, err := modelfetch.New("./Models", modelfetch.NewHubFetcher(nil))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	jobs := []modelfetch.Job{
		{Repo: "microsoft/DialoGPT-medium"},
		{Repo: "Qwen/Qwen3-32B-GGUF", AllowPatterns: []string{"*Q6_K*"}},
	}
	sum := modelfetch.RunJobs(context.Background(), d, jobs, modelfetch.BatchOptions{})
	fmt.Printf("%d/%d succeeded\n", sum.Succeeded, sum.Total)
}

func ExampleMatchFiles() {
	files := []string{
		"README.md",
		"config.json",
		"Qwen3-32B-Q6_K.gguf",
		"Qwen3-32B-Q8_0.gguf",
		"onnx/model.onnx",
	}

	fmt.Println(modelfetch.MatchFiles(files, []string{"*Q6_K*", "*.json"}, nil))
	fmt.Println(modelfetch.MatchFiles(files, nil, []string{"*.gguf", "onnx/"}))
	// Output:
	// [config.json Qwen3-32B-Q6_K.gguf]
	// [README.md config.json]
}
