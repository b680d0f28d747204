package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/saathi/internal/audio"
	"codeberg.org/snonux/saathi/internal/batch"
	"codeberg.org/snonux/saathi/internal/cli"
	"codeberg.org/snonux/saathi/internal/llm"
	"codeberg.org/snonux/saathi/internal/models"
	"codeberg.org/snonux/saathi/internal/server"
	"codeberg.org/snonux/saathi/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags, cli.Actions{
		Serve: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
		Translate: func(cmd *cobra.Command, args []string) error {
			return runTranslate(args, flags)
		},
		Models: func(cmd *cobra.Command, args []string) error {
			lister := models.NewLister(cli.GetOpenAIKey(), cli.LoadConfig().LLM.BaseURL)
			return lister.ListAvailableModels(cmd.Context(), os.Stdout)
		},
	})

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newOrchestrator(cfg *cli.Config, logger *zap.Logger) *translation.Orchestrator {
	opts := []translation.Option{translation.WithLogger(logger)}
	if cfg.Breaker {
		opts = append(opts, translation.WithBreaker(translation.DefaultBreakerSettings()))
	}
	return translation.NewOrchestrator(translation.DefaultChain(nil), opts...)
}

func runServe(cmd *cobra.Command, flags *cli.Flags) error {
	cli.BindServeFlags(cmd.Flags())
	cfg := cli.LoadConfig()

	logger, err := newLogger(flags.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	tts, err := audio.NewProvider(&cfg.TTS, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize TTS provider: %w", err)
	}
	if err := tts.IsAvailable(); err != nil {
		logger.Warn("TTS provider not available", zap.String("provider", tts.Name()), zap.Error(err))
	}
	if cfg.LLM.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, /summarize and /translate_llm will fail")
	}

	if !flags.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.New(server.Deps{
		Translator: newOrchestrator(cfg, logger),
		LLM:        llm.NewClient(cfg.LLM),
		TTS:        tts,
	}, logger)

	// No write timeout: a request may walk the whole provider chain
	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.String("tts", tts.Name()),
			zap.String("llm_model", cfg.LLM.Model),
			zap.Bool("breaker", cfg.Breaker),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func runTranslate(args []string, flags *cli.Flags) error {
	logger := zap.NewNop()
	if flags.Debug {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
	}
	orch := newOrchestrator(cli.LoadConfig(), logger)

	if flags.BatchFile != "" {
		entries, err := batch.ReadBatchFile(flags.BatchFile)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			target := entry.Target
			if target == "" {
				target = flags.Target
			}
			translateOnce(orch, entry.Text, target, flags)
		}
		return nil
	}

	text := strings.Join(args, " ")
	if flags.InputFile != "" {
		data, err := os.ReadFile(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text given: pass it as arguments, with --file or with --batch")
	}

	translateOnce(orch, text, flags.Target, flags)
	return nil
}

func translateOnce(orch *translation.Orchestrator, text, target string, flags *cli.Flags) {
	resp, results := orch.Attempts(context.Background(), translation.Request{
		Text:   text,
		Target: target,
		Source: flags.Source,
	})

	if flags.Verbose {
		for _, res := range results {
			if res.Success {
				fmt.Fprintf(os.Stderr, "%-24s accepted\n", res.Provider)
			} else {
				fmt.Fprintf(os.Stderr, "%-24s failed: %v\n", res.Provider, res.Err)
			}
		}
	}

	fmt.Println(resp.TranslatedText)
}
