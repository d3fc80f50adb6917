// Package main provides the pantry-ci CLI: CI helpers that filter package lists
// against the cellar and compute job-matrix parameters for a platform.
package main

import (
	"fmt"
	"os"

	"pantry-ci/src/config"
	"pantry-ci/src/logger"
)

func main() {
	a := &app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		loadConfig: config.LoadFromEnv,
		openCellar: openCellar,
		openBroker: openBroker,
		log:        logger.NewConsoleLogger(),

		openRecorder: openRecorder,
	}

	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", wrapError(err))
		os.Exit(1)
	}
}
