/*
Copyright © 2025 openfreight
*/
package cmd

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/openfreight/docintel/config"
	"github.com/openfreight/docintel/database"
	"github.com/openfreight/docintel/handler"
	"github.com/openfreight/docintel/logger"
	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/middleware"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document intelligence server",
	Long:  `Starts the HTTP server that handles document upload, question answering and shipment extraction`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logg := logger.New(logger.Config{
			Level:  cfg.LogLevel,
			Pretty: cfg.LogPretty,
		})
		m := metrics.New()

		// Initialize services
		embedder, err := service.NewEmbedder(cfg)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to create embedder")
		}
		askLLM, err := service.NewLLM(cfg, cfg.AskTemperature)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to create ask model client")
		}
		extractLLM, err := service.NewLLM(cfg, cfg.ExtractTemperature)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to create extract model client")
		}

		store, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig, embedder, logg)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to connect to weaviate")
		}

		parserService := service.NewParserService(logg)
		chunkerService := service.NewChunkerService(types.ChunkerServiceConfig{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		})
		fileService, err := service.NewFileService(cfg.UploadDir, parserService, chunkerService, store, logg, m)
		if err != nil {
			logg.Fatal().Err(err).Msg("failed to create file service")
		}
		ragService := service.NewRAGService(types.RAGServiceConfig{
			TopK:                cfg.TopK,
			SimilarityThreshold: cfg.SimilarityThreshold,
		}, store, askLLM, extractLLM, logg, m)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(fileService)
		documentHandler := handler.NewDocumentHandler(ragService)

		// Setup Gin router
		router := gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.RequestLogger(logg))
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/upload", uploadHandler.UploadDocumentHandler)
		router.POST("/ask", documentHandler.AskHandler)
		router.POST("/extract", documentHandler.ExtractHandler)
		router.GET("/healthz", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))

		logg.Info().Str("port", cfg.Port).Str("provider", cfg.AIProvider).Msg("starting server")
		if err := router.Run(":" + cfg.Port); err != nil {
			logg.Fatal().Err(err).Msg("server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
