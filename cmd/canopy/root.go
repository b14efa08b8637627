package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/config"
	"github.com/aretw0/canopy/internal/kb"
	"github.com/aretw0/canopy/pkg/adapters/bleve"
	"github.com/aretw0/canopy/pkg/adapters/memory"
	"github.com/aretw0/canopy/pkg/adapters/openai"
	"github.com/aretw0/canopy/pkg/adapters/redis"
	"github.com/aretw0/canopy/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy is a customer support classification and routing engine",
	Long: `Canopy classifies customer queries, answers the ones it can from a
knowledge base, and hands the rest off to human support.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// buildPorts wires the production adapters: the OpenAI completion client
// and a bleve index seeded with the built-in knowledge base.
func buildPorts(cfg config.Config) (ports.Completer, *bleve.Retriever, error) {
	completer, err := openai.NewCompleter(cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	retriever, err := bleve.NewRetriever()
	if err != nil {
		return nil, nil, err
	}
	for _, passage := range kb.Default() {
		if err := retriever.Add(passage.ID, passage.Text); err != nil {
			retriever.Close()
			return nil, nil, fmt.Errorf("seed knowledge base: %w", err)
		}
	}
	return completer, retriever, nil
}

// buildStore selects the transcript backend: Redis when configured,
// in-process memory otherwise.
func buildStore(cfg config.Config) ports.TranscriptStore {
	if cfg.RedisAddr != "" {
		return redis.New(cfg.RedisAddr, "", 0)
	}
	return memory.NewStore()
}

// buildEngine assembles the full pipeline for a command.
func buildEngine(cfg config.Config, store ports.TranscriptStore, opts ...canopy.Option) (*canopy.Engine, *bleve.Retriever, error) {
	completer, retriever, err := buildPorts(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts, canopy.WithTranscripts(store))
	engine, err := canopy.NewWithConfig(cfg, completer, retriever, opts...)
	if err != nil {
		retriever.Close()
		return nil, nil, err
	}
	return engine, retriever, nil
}
