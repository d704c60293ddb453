/*
Copyright © 2025 openfreight
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfreight/docintel/config"
	"github.com/openfreight/docintel/database"
	"github.com/openfreight/docintel/logger"
	"github.com/openfreight/docintel/metrics"
	"github.com/openfreight/docintel/service"
	"github.com/openfreight/docintel/types"
	"github.com/openfreight/docintel/utils"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse and index local documents",
	Long: `Copies one or more local documents into the upload directory, runs the
parse-chunk-embed pipeline on each and prints the resulting document ids.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		files, _ := cmd.Flags().GetStringArray("file")
		if len(files) == 0 {
			log.Fatal("at least one --file is required")
		}

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

		for _, path := range files {
			stored, err := utils.CopyFileWithTimestamp(path, cfg.UploadDir)
			if err != nil {
				logg.Fatal().Err(err).Str("file", path).Msg("failed to copy file")
			}
			resp, err := fileService.IngestFile(context.Background(), stored, filepath.Base(path))
			if err != nil {
				logg.Fatal().Err(err).Str("file", path).Msg("failed to ingest file")
			}
			fmt.Printf("%s: doc_id=%s chunks=%d\n", resp.Filename, resp.DocID, resp.NumChunks)
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	ingestCmd.Flags().StringArrayP("file", "f", []string{}, "Path to a document to ingest (repeatable)")
}
