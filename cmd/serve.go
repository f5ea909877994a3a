package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/llm"
	"github.com/Natnat0905/GeoChat/internal/ocr"
	"github.com/Natnat0905/GeoChat/internal/render"
	"github.com/Natnat0905/GeoChat/internal/server"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the GeoChat HTTP API",
	Long: `Serve the chat API over HTTP: POST /chat, POST /process-image and
GET /health. Configuration comes from GEOCHAT_* environment variables,
optionally overridden by a YAML file passed with --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg := server.ConfigFromEnv()
		if cfgPath != "" {
			var err error
			cfg, err = server.LoadConfigFile(cfgPath)
			if err != nil {
				return err
			}
		}

		if p, _ := cmd.Flags().GetString("db"); p != "" {
			cfg.DBPath = p
		}
		dbPath := cfg.DBPath
		if dbPath == "" {
			var err error
			dbPath, err = store.DefaultDBPath()
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
		} else if err := store.EnsureDir(dbPath); err != nil {
			return fmt.Errorf("create DB directory: %w", err)
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		eventRepo := st.EventRepo()
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		svc := tutor.New(provider, geometry.New(logger), render.New(logger), tutor.DefaultConfig(), logger)

		var ocrClient *ocr.Client
		if cfg.OCRAPIKey != "" {
			ocrClient = ocr.NewClient(cfg.OCRAPIKey, ocr.WithLogger(logger))
		} else {
			logger.Warn("OCR API key not set, POST /process-image will return 503")
		}

		srv := server.New(cfg, svc, ocrClient, eventRepo, logger)

		logger.Info("starting server",
			zap.String("addr", cfg.ListenAddr),
			zap.String("db", dbPath),
			zap.String("model", provider.ModelID()))

		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
}
