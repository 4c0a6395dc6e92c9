// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/carteakey/lllms/internal/cli"
	"github.com/carteakey/lllms/pkg/modelfetch"
)

// Version is set at build time via ldflags
var Version = "0.1.0-dev"

func main() {
	// Enable accelerated transfers for every download in this process.
	os.Setenv(modelfetch.EnvHFTransfer, "1")

	if err := cli.Execute(Version); err != nil {
		os.Exit(1)
	}
}
