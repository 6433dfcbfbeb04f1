package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/pro-joshi-grammer/sahayatha/internal/config"
	"github.com/pro-joshi-grammer/sahayatha/internal/openai"
	"github.com/pro-joshi-grammer/sahayatha/internal/repository"
	"github.com/pro-joshi-grammer/sahayatha/internal/retriever"
)

// IngestCmd returns the ingest command. It re-embeds the knowledge corpus
// and stores the snapshot, so a fresh deployment can warm the cache without
// serving traffic.
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [path]",
		Short: "Embed the knowledge corpus and store the snapshot",
		Long:  "Chunk and embed the governance corpus, persisting the result so later startups skip re-embedding",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIngest,
	}
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasOpenAI() {
		return fmt.Errorf("OPENAI_API_KEY is required for ingestion")
	}

	path := cfg.CorpusPath
	if len(args) == 1 {
		path = args[0]
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	aiClient := openai.NewClientWithConfig(openai.Config{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: goopenai.EmbeddingModel(cfg.EmbeddingModel),
	})

	index := retriever.NewIndex(aiClient)
	ingester := retriever.NewIngester(index, aiClient, repository.NewCorpusRepository(pool), retriever.DefaultChunkConfig())

	corpus, err := ingester.IngestFile(ctx, path)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	log.Printf("ingested %s: %d chunks (checksum %s)", path, corpus.Len(), corpus.Checksum)
	return nil
}
