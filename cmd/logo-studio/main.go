package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/internal/config"
	"github.com/shouni/gemini-logo-studio/internal/httpclient"
	"github.com/shouni/gemini-logo-studio/internal/logging"
	"github.com/shouni/gemini-logo-studio/internal/server"
	"github.com/shouni/gemini-logo-studio/pkg/adapters"
	"github.com/shouni/gemini-logo-studio/pkg/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "logo-studio",
	Short: "Web UI that turns a short brand brief into a logo concept",
	Long: `logo-studio starts a web server where a short company or brand description
is turned into a minimalist logo by the Gemini image model.

Configuration is read from the environment (and .env): GEMINI_API_KEY is required.

Examples:
  logo-studio
  logo-studio --addr :9090
  logo-studio --model gemini-2.5-flash-image --log-level debug`,
	SilenceUsage: true,
	RunE:         runMain,
}

func init() {
	rootCmd.Flags().String("addr", ":8080", "Address to listen on")
	rootCmd.Flags().StringP("model", "m", generator.DefaultModel, "Gemini image model to use")
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	_ = v.BindPFlag(config.KeyListenAddr, rootCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag(config.KeyGeminiModel, rootCmd.Flags().Lookup("model"))
	_ = v.BindPFlag(config.KeyLogLevel, rootCmd.Flags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := adapters.NewGeminiModel(ctx, adapters.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		HTTPClient: httpclient.New(httpclient.Options{
			PreferIPv4: cfg.PreferIPv4,
			Timeout:    cfg.GeminiTimeout,
		}),
	})
	if err != nil {
		return fmt.Errorf("init gemini model: %w", err)
	}

	gen, err := generator.NewGeminiGenerator(model, cfg.GeminiModel)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Generator:   gen,
		Model:       gen.Model(),
		CORSOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	defer srv.Sessions().CloseAll()

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Str("model", gen.Model()).Msg("Starting logo studio")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return srv.Sessions().RunPruner(gctx, cfg.SessionPruneInterval, cfg.SessionIdleTTL)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
