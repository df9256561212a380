/*
Copyright © 2025 tranvuminh
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvuminh/papermind-be/config"
	"github.com/tranvuminh/papermind-be/handler"
	"github.com/tranvuminh/papermind-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the paper analysis server",
	Long:  `Starts the HTTP server that handles uploads, chat, summaries and paper generation`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		// Initialize services
		extractService := service.NewExtractService(cfg.Pipeline.MaxUploadBytes, logger)
		chunkService := service.NewChunkService(cfg.Pipeline.MaxChunkSize, cfg.Pipeline.BoundaryTolerance)
		sessionService := service.NewSessionService(logger)
		promptService := service.NewPromptService(cfg.Pipeline.ContextBudget)
		aiService := newAIGateway(cfg, logger)
		searchService := service.NewWebSearchService(cfg.SearchAPIKey, cfg.SearchEngineID, logger)
		chatService := service.NewChatService(sessionService, promptService, aiService, searchService, logger)
		paperService := service.NewPaperService(aiService, promptService, logger)
		exportService := service.NewExportService(logger)
		websocketService := service.NewWebSocketService(chatService, logger)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(extractService, chunkService, sessionService, cfg.Pipeline.MaxUploadBytes)
		chatHandler := handler.NewChatHandler(chatService)
		summaryHandler := handler.NewSummaryHandler(chatService)
		generateHandler := handler.NewGenerateHandler(paperService)
		downloadHandler := handler.NewDownloadHandler(sessionService, exportService)
		documentHandler := handler.NewDocumentHandler(sessionService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/upload", uploadHandler.HandleUpload)
			apiV1.POST("/chat", chatHandler.HandleChat)
			apiV1.GET("/summary", summaryHandler.HandleSummary)
			apiV1.POST("/generate", generateHandler.HandleGenerate)
			apiV1.POST("/download", downloadHandler.HandleDownload)
			apiV1.GET("/document", documentHandler.HandleDocumentInfo)
			apiV1.GET("/ws/chat", func(c *gin.Context) {
				websocketService.HandleChat(c.Writer, c.Request)
			})
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
