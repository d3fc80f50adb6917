// Package main provides the MCP server entry point for pantry-ci.
// It exposes the filter_packages and resolve_platform tools over stdio.
package main

import (
	"log"

	"pantry-ci/src/cellar"
	"pantry-ci/src/config"
	"pantry-ci/src/logger"
	"pantry-ci/src/mcp"
	"pantry-ci/src/platform"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	table := platform.DefaultTable()
	if cfg.OverridesFile != "" {
		o, err := platform.LoadOverrides(cfg.OverridesFile)
		if err != nil {
			log.Fatalf("Platform overrides: %v", err)
		}
		if table, err = table.Apply(o); err != nil {
			log.Fatalf("Platform overrides: %v", err)
		}
	}

	var c cellar.Cellar
	if cfg.CellarDSN != "" {
		pg, err := cellar.NewPostgresCellar(cfg.CellarDSN)
		if err != nil {
			log.Fatalf("Cellar: %v", err)
		}
		defer pg.Close()
		c = pg
	} else {
		fsc, err := cellar.NewFSCellar(cfg.TeaPrefix)
		if err != nil {
			log.Fatalf("Cellar: %v", err)
		}
		c = fsc
	}

	server := mcp.NewServer(table, c, logger.NewSilentLogger())

	// Run server over stdin/stdout (stdio transport)
	if err := server.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
