package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/popforge/popgen"
	"github.com/popforge/popgen/internal/util"
	"github.com/popforge/popgen/pkg/processing"
)

func main() {
	var in, outDir, backend, logLevel string
	var views int
	var listen bool

	flag.StringVar(&in, "in", "", "input photo path, URL, or data URL (jpg/png/webp)")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&backend, "backend", "", "caption backend override: hf or ollama")
	flag.IntVar(&views, "views", 0, "t-pose view count: 0, 3, or 6")
	flag.BoolVar(&listen, "progress", false, "print stage progress events")
	flag.StringVar(&logLevel, "loglevel", "info", "log level: debug|info|warn|error")
	flag.Parse()

	if in == "" {
		log.Fatalf("usage: %s -in photo.jpg|URL [-out outdir] [-backend hf|ollama] [-views 3|6]",
			filepath.Base(os.Args[0]))
	}

	// .env is optional; the environment always wins.
	_ = godotenv.Load()

	cfg, err := popgen.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if backend != "" {
		cfg.CaptionBackend = backend
	}

	logger, err := util.NewLogger(logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := util.EnsureDir(outDir); err != nil {
		log.Fatal(err)
	}

	pipeline, err := popgen.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	processor := processing.New(cfg.MinPhotoSize)
	img, err := processor.Load(in)
	if err != nil {
		log.Fatalf("load photo: %v", err)
	}
	photo, err := processing.EncodePNG(img)
	if err != nil {
		log.Fatalf("re-encode photo: %v", err)
	}

	opts := popgen.GenerateOptions{TPoseViews: views}
	if listen {
		opts.Observer = popgen.ObserverFunc(func(e popgen.StageEvent) {
			fmt.Printf(">> %s: %s\n", e.Stage, e.Label)
		})
	}

	result, err := pipeline.Generate(context.Background(), photo, opts)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	logger.Info("character generated",
		zap.String("id", result.ID),
		zap.String("provider", result.ModelUsed),
		zap.String("class", string(result.GameCharacter.CharacterClass)),
		zap.Int64("ms", result.ProcessingTimeMS))

	// Write artifacts: preview image, optional model, optional views, and
	// the characteristics record.
	previewPath := util.OutputFilename(outDir, in, "pop", "png")
	if err := os.WriteFile(previewPath, result.PopImage, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Println("preview:", previewPath)

	if len(result.ModelData) > 0 {
		modelPath := util.OutputFilename(outDir, in, "model", "glb")
		if err := os.WriteFile(modelPath, result.ModelData, 0644); err != nil {
			log.Fatal(err)
		}
		fmt.Println("model:", modelPath)
	}

	for i, view := range result.TPoseViews {
		viewPath := util.OutputFilename(outDir, in, fmt.Sprintf("view%d", i), "png")
		if err := os.WriteFile(viewPath, view, 0644); err != nil {
			log.Fatal(err)
		}
		fmt.Println("view:", viewPath)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	jsonPath := util.OutputFilename(outDir, in, "character", "json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Println("character:", jsonPath)
}
