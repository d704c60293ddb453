/*
Copyright © 2025 openfreight
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openfreight/docintel/config"
	"github.com/openfreight/docintel/database"
	"github.com/openfreight/docintel/logger"
	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about an indexed document",
	Long: `Runs a similarity search over one indexed document and answers the
question from the retrieved context. Prints the answer, the best
matching chunk and the confidence score.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		docID, _ := cmd.Flags().GetString("doc-id")
		if docID == "" {
			log.Fatal("--doc-id is required")
		}
		question := strings.Join(args, " ")

		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logg := logger.New(logger.Config{
			Level:  cfg.LogLevel,
			Pretty: cfg.LogPretty,
		})
		m := metrics.New()

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

		ragService := service.NewRAGService(types.RAGServiceConfig{
			TopK:                cfg.TopK,
			SimilarityThreshold: cfg.SimilarityThreshold,
		}, store, askLLM, extractLLM, logg, m)

		resp, err := ragService.Ask(context.Background(), docID, question)
		if err != nil {
			logg.Fatal().Err(err).Str("doc_id", docID).Msg("failed to answer question")
		}

		fmt.Println(resp.Answer)
		if resp.SourceText != nil {
			fmt.Printf("\nSource: %s\n", *resp.SourceText)
		}
		fmt.Printf("Confidence: %.4f\n", resp.ConfidenceScore)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	askCmd.Flags().StringP("doc-id", "d", "", "Document id returned by upload or ingest")
}
