package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/server"
)

var (
	servePort        int
	serveDatabaseURL string
	serveSnapshot    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes recommendation, transition ranking and course matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (0 uses server.port)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	serveCmd.Flags().StringVar(&serveSnapshot, "snapshot", "", "Path to a SQLite snapshot to serve instead of Postgres")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return err
	}
	applySourceFlags(cfg, serveDatabaseURL, serveSnapshot)
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	encoders := newEncoderProvider(cfg, logger)
	defer func() { _ = encoders.Close() }()

	svc, err := newService(cfg, store, encoders, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Server.Port,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, svc, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
