package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fakestore-etl/internal/config"
	"fakestore-etl/internal/etl"
	"fakestore-etl/internal/fakestore"
	"fakestore-etl/internal/logger"
	"fakestore-etl/internal/storage"
)

func newRunCmd() *cobra.Command {
	var configPath string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute exactly one pipeline run and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(configPath)
		},
	}

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config.yaml file")

	return runCmd
}

func runPipeline(configPath string) error {
	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting pipeline run")

	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize S3 storage")
		return err
	}

	client := fakestore.NewClient(cfg)
	pipeline := etl.New(client, store, cfg.Pipeline.ScratchDir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("state", result.State).Msg("Pipeline run failed")
		return err
	}

	log.Info().Str("state", result.State).Msg("Pipeline run succeeded")
	return nil
}
