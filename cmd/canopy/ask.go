package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/canopy"
	"github.com/aretw0/canopy/internal/logging"
	"github.com/aretw0/canopy/internal/tui"
	"github.com/aretw0/canopy/pkg/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a support question",
	Long: `Runs one query through the pipeline and prints the answer.
Without arguments it starts an interactive session that keeps a transcript
under a generated session id.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		jsonMode, _ := cmd.Flags().GetBool("json")
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		logger := logging.New(slog.LevelWarn)
		engine, retriever, err := buildEngine(cfg, buildStore(cfg), canopy.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing canopy: %v\n", err)
			os.Exit(1)
		}
		defer retriever.Close()

		if len(args) > 0 {
			query := strings.Join(args, " ")
			if err := askOnce(cmd.Context(), engine, query, sessionID, jsonMode); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		runInteractive(cmd.Context(), engine, sessionID, jsonMode)
	},
}

func askOnce(ctx context.Context, engine *canopy.Engine, query, sessionID string, jsonMode bool) error {
	record, err := engine.Process(ctx, query, sessionID)
	if err != nil {
		return err
	}
	printRecord(record, jsonMode)
	return nil
}

func runInteractive(ctx context.Context, engine *canopy.Engine, sessionID string, jsonMode bool) {
	if !jsonMode {
		tui.PrintBanner()
		fmt.Printf("Session %s. Type your question, or 'exit' to quit.\n\n", sessionID)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			return
		}

		if err := askOnce(ctx, engine, query, sessionID, jsonMode); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func printRecord(record *domain.Record, jsonMode bool) {
	if jsonMode {
		out, _ := json.Marshal(record)
		fmt.Println(string(out))
		return
	}

	render := tui.NewRenderer()
	text, err := render(record.Response)
	if err != nil {
		text = record.Response + "\n"
	}
	fmt.Print(text)

	if record.RequiresEscalation {
		fmt.Println("(escalated to human support)")
	}
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().Bool("json", false, "Print the full result record as JSON")
	askCmd.Flags().String("session", "", "Session id for transcript grouping (generated when empty)")
}
