// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package manifest

import "github.com/carteakey/lllms/pkg/modelfetch"

// Sample returns the example manifest written by --create-config.
func Sample() Manifest {
	return Manifest{
		BaseModelsDir: "./models",
		Models: []modelfetch.Job{
			{
				Repo:          "microsoft/DialoGPT-medium",
				AllowPatterns: []string{"*.bin", "*.json", "*.txt"},
				Description:   "DialoGPT medium model",
			},
			{
				Repo:          "Qwen/Qwen3-32B-GGUF",
				AllowPatterns: []string{"*Q6_K*"},
				LocalDir:      "./models/qwen/Qwen3-32B-GGUF",
				Description:   "Qwen3 32B model with Q6_K quantization",
			},
			{
				Repo:          "unsloth/Qwen3-30B-A3B-Instruct-2507-GGUF",
				AllowPatterns: []string{"*Q8*"},
				Description:   "Qwen3 30B Instruct with Q8 quantization",
			},
		},
	}
}

// WriteSample writes Sample to path.
func WriteSample(path string) error {
	return Write(path, Sample())
}
