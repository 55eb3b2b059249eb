// Command bookswapctl drives a running bookswap agent over gRPC.
package main

import (
	"fmt"
	"os"

	"github.com/dtroode/bookswap-agent/internal/config"
)

func main() {
	cfg, err := config.NewCLIConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse config: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCommand(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
