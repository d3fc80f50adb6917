package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pantry-ci/src/logger"
	"pantry-ci/src/mcp"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve filter_packages and resolve_platform as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			c, closeCellar, err := a.openCellar(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to open cellar: %w", err)
			}
			defer closeCellar()

			// stdout carries the protocol.
			return mcp.NewServer(table, c, logger.NewSilentLogger()).Run()
		},
	}
}
