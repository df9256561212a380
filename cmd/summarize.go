/*
Copyright © 2025 tranvuminh
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/config"
	"github.com/tranvuminh/papermind-be/service"
)

// summarizeDocumentCmd represents the summarize-document command
var summarizeDocumentCmd = &cobra.Command{
	Use:   "summarize-document",
	Short: "Summarize a paper from the command line",
	Long: `Reads a paper from disk, runs it through the extraction and
chunking pipeline, and prints a summary produced by the configured
AI provider. With --out the summary is written as a DOCX file instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		outPath, _ := cmd.Flags().GetString("out")
		if filePath == "" {
			log.Fatal("missing required flag: --file")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", filePath, err)
		}

		extractService := service.NewExtractService(cfg.Pipeline.MaxUploadBytes, logger)
		chunkService := service.NewChunkService(cfg.Pipeline.MaxChunkSize, cfg.Pipeline.BoundaryTolerance)
		sessionService := service.NewSessionService(logger)
		promptService := service.NewPromptService(cfg.Pipeline.ContextBudget)
		aiService := newAIGateway(cfg, logger)
		chatService := service.NewChatService(sessionService, promptService, aiService, nil, logger)

		doc, text, err := extractService.Extract(filepath.Base(filePath), data)
		if err != nil {
			log.Fatalf("Failed to extract document: %v", err)
		}
		sessionService.Replace(doc, text, chunkService.Split(text))

		summary, err := chatService.Summarize(context.Background())
		if err != nil {
			log.Fatalf("Failed to summarize document: %v", err)
		}

		if outPath == "" {
			fmt.Println(summary.Summary)
			return
		}

		exportService := service.NewExportService(logger)
		docx, err := exportService.BuildDOCX(summary.Summary)
		if err != nil {
			log.Fatalf("Failed to build DOCX: %v", err)
		}
		if filepath.Ext(outPath) != ".docx" {
			outPath += ".docx"
		}
		if err := os.WriteFile(outPath, docx, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", outPath, err)
		}
		fmt.Println("Wrote summary to", outPath)
	},
}

func init() {
	rootCmd.AddCommand(summarizeDocumentCmd)

	summarizeDocumentCmd.Flags().StringP("file", "f", "", "Path to the paper to summarize")
	summarizeDocumentCmd.Flags().StringP("out", "o", "", "Write the summary as a DOCX file at this path")
}
