package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tjhootman/audiobook-generator/adapters/googletts"
	"github.com/tjhootman/audiobook-generator/adapters/gutenberg"
	"github.com/tjhootman/audiobook-generator/adapters/language"
	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/internal/audio"
	"github.com/tjhootman/audiobook-generator/internal/config"
	"github.com/tjhootman/audiobook-generator/internal/retry"
	"github.com/tjhootman/audiobook-generator/usecase"
)

func main() {
	var (
		url    = flag.String("url", "", "Project Gutenberg plain-text URL to convert (required)")
		gender = flag.String("gender", "auto", "Narrator gender: auto, male, female or neutral")
		out    = flag.String("out", "", "Output directory (overrides AUDIOBOOK_OUTPUT_DIR)")
	)
	flag.Parse()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load .env if present; real environments set variables directly
	godotenv.Load()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: audiobook -url <book-url> [-gender auto|male|female|neutral] [-out <dir>]")
		os.Exit(2)
	}

	genderPref, err := entities.ParseGender(*gender)
	if err != nil {
		logger.Fatal("Invalid gender flag", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	// Cancel the pipeline on Ctrl-C; chunk files survive for resumption
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize adapters
	source := gutenberg.NewSource(
		gutenberg.Config{Timeout: cfg.HTTPTimeout},
		retry.Default(gutenberg.Transient),
		logger,
	)

	analyzer, err := language.NewAnalyzer(ctx, language.Config{}, logger)
	if err != nil {
		logger.Fatal("Could not create the language client", zap.Error(err))
	}
	defer analyzer.Close()

	synthesizer, err := googletts.NewSynthesizer(ctx, logger)
	if err != nil {
		logger.Fatal("Could not create the text-to-speech client", zap.Error(err))
	}
	defer synthesizer.Close()

	// Initialize usecase service
	service := usecase.NewGenerateService(
		source, analyzer, synthesizer, synthesizer,
		audio.NewCombiner(logger),
		usecase.Options{
			OutputDir:    cfg.OutputDir,
			ChunkLimit:   cfg.ChunkLimit,
			SynthWorkers: cfg.SynthWorkers,
		},
		logger,
	)

	audiobook, err := service.Execute(ctx, *url, genderPref)
	if err != nil {
		logger.Error("Audiobook generation failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Audiobook ready",
		zap.String("path", audiobook.Path),
		zap.Int("chunks", len(audiobook.Chunks)))
	fmt.Println(audiobook.Path)
}
