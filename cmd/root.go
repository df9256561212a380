/*
Copyright © 2025 tranvuminh
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/config"
	"github.com/tranvuminh/papermind-be/service"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "papermind-be",
	Short: "Backend for uploading and analyzing research papers",
	Long: `papermind-be ingests research papers (PDF, DOCX, TXT, Markdown),
extracts and chunks their text, and answers questions, produces
summaries, and drafts papers through a configurable AI provider.

Run "papermind-be start" to launch the HTTP server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}

// newAIGateway builds the configured provider wrapped in the retrying
// gateway. Shared by the server and the offline summarize command.
func newAIGateway(cfg *config.Config, logger *zap.Logger) service.AIService {
	var provider service.AIService
	if cfg.Provider == config.ProviderOpenAI {
		provider = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
	} else {
		provider = service.NewGeminiService(cfg.GeminiAPIKey, cfg.Model)
	}
	return service.NewGateway(
		provider,
		cfg.Gateway.RequestTimeout,
		cfg.Gateway.MaxAttempts,
		cfg.Gateway.InitialBackoff,
		logger,
	)
}
