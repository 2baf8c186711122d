package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akulov/shot2site/internal/config"
	"github.com/akulov/shot2site/internal/describer"
	"github.com/akulov/shot2site/internal/engine"
	"github.com/akulov/shot2site/internal/preview"
	"github.com/akulov/shot2site/internal/source"
	"github.com/akulov/shot2site/internal/system"
)

func main() {
	system.InitResourceLimits()

	// Create the working directories if they are missing.
	dirs := []string{"input/screenshots", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Screenshot, screenshot folder or PDF (default: the most recent file in input/screenshots/)")
	outputPtr := flag.String("output", "", "Output directory (default: output/)")
	configPtr := flag.String("config", "", "YAML config file; flags override its values")
	modelPtr := flag.String("model", "", "Gemini model name")
	workersPtr := flag.Int("workers", 0, "Concurrent describe workers (0 = auto from CPU and memory)")
	maxDepthPtr := flag.Int("max-depth", 0, "Maximum subdivision depth (0 = default)")
	minSegmentPtr := flag.Int("min-segment", 0, "Minimum segment edge in pixels (0 = default)")
	dpiPtr := flag.Int("dpi", 0, "Render DPI for PDF inputs (0 = default)")
	pagePtr := flag.Int("page", 0, "Zero-based page/frame index to clone")
	saveCropsPtr := flag.Bool("save-crops", false, "Save a PNG per leaf region next to the artifacts")
	segmentOnlyPtr := flag.Bool("segment-only", false, "Stop after writing segments.yaml")
	previewPtr := flag.String("preview", "", "Serve the generated site on this address (e.g. :3000) after the run")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Failed to read config: %v", err)
		}
		cfg = loaded
	}

	if *inputPtr != "" {
		cfg.InputPath = *inputPtr
	}
	if *outputPtr != "" {
		cfg.OutputDir = *outputPtr
	}
	if *modelPtr != "" {
		cfg.Model = *modelPtr
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *maxDepthPtr > 0 {
		cfg.Segmenter.MaxDepth = *maxDepthPtr
	}
	if *minSegmentPtr > 0 {
		cfg.Segmenter.MinSegmentSize = *minSegmentPtr
	}
	if *dpiPtr > 0 {
		cfg.DPI = *dpiPtr
	}
	if *pagePtr > 0 {
		cfg.Page = *pagePtr
	}
	if *saveCropsPtr {
		cfg.SaveCrops = true
	}
	if *segmentOnlyPtr {
		cfg.SegmentOnly = true
	}
	if *previewPtr != "" {
		cfg.PreviewAddr = *previewPtr
	}

	if cfg.Workers <= 0 {
		cfg.Workers = system.SuggestWorkers()
	}
	cfg.APIKey = config.LoadAPIKey()

	if cfg.InputPath == "" {
		latest, err := system.FindLatestInput("input/screenshots")
		if err != nil {
			log.Fatalf("[-] %v. Put a screenshot or PDF in input/screenshots/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Selected input: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Failed to open input: %v", err)
	}
	defer src.Close()

	var eng *describer.Engine
	if cfg.APIKey != "" {
		eng = describer.New(cfg.APIKey, cfg.Model)
		fmt.Printf("[*] Using model %s with %d workers\n", cfg.Model, cfg.Workers)
	} else if !cfg.SegmentOnly {
		fmt.Println("[!] GEMINI_API_KEY is not set, generating template scaffolds only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := engine.NewCloneProject(cfg, src, eng)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] %v", err)
	}

	if cfg.PreviewAddr != "" && !cfg.SegmentOnly {
		srv := &preview.Server{Dir: project.SiteDir(), Addr: cfg.PreviewAddr}
		if qr, err := srv.WriteQR(); err == nil {
			fmt.Printf("[>] Preview QR: %s\n", qr)
		}
		if err := srv.Serve(); err != nil {
			log.Fatalf("[-] Preview server: %v", err)
		}
	}
}
