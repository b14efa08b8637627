package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/logging"
	mcpAdapter "github.com/aretw0/canopy/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the support pipeline as an MCP server over stdio.
This allows AI agents (like Claude Desktop) to answer support queries
through the support_chat tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Logs go to stderr so they don't corrupt JSON-RPC on stdout.
		logger := logging.New(slog.LevelInfo)
		log.SetOutput(os.Stderr)

		store := buildStore(cfg)
		engine, retriever, err := buildEngine(cfg, store, canopy.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing canopy: %v\n", err)
			os.Exit(1)
		}
		defer retriever.Close()

		srv := mcpAdapter.NewServer(engine, mcpAdapter.WithStore(store))

		logger.Info("starting canopy MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
