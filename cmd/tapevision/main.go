package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/tapevision/internal/config"
	"github.com/ironsheep/tapevision/internal/imaging"
	"github.com/ironsheep/tapevision/internal/opencv"
	"github.com/ironsheep/tapevision/internal/server"
	"github.com/ironsheep/tapevision/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("tapevision %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  OpenCV backend: %v\n", opencv.Available)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout carries results)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv(config.EnvLogLevel) == "debug"

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	pipeline, err := newPipeline(cfg, debug)
	if err != nil {
		log.Fatalf("Backend error: %v", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			data, err := config.Marshal(cfg)
			if err != nil {
				log.Fatalf("Config error: %v", err)
			}
			os.Stdout.Write(data)
			return
		case "process":
			if len(os.Args) < 3 {
				log.Fatal("process needs at least one image path")
			}
			if err := processFrames(pipeline, cfg.HorizontalRes, os.Args[2:]); err != nil {
				log.Fatalf("Process error: %v", err)
			}
			return
		default:
			log.Fatalf("Unknown command %q, see --help", os.Args[1])
		}
	}

	if debug {
		log.Printf("tapevision server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	server.Version = Version
	srv := server.New(pipeline)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("tapevision - vision tape target pair detector")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tapevision                     Serve detector tools over stdio (JSON-RPC 2.0)")
	fmt.Println("  tapevision process <image>...  Detect the tape pair in each frame, one JSON report per line")
	fmt.Println("  tapevision config              Print the effective configuration as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=<file.json>     Tuning file (fields not listed keep their defaults)\n", config.EnvConfigPath)
	fmt.Printf("  %s=opencv         Use the OpenCV backend (binary built with -tags gocv)\n", config.EnvBackend)
	fmt.Printf("  %s=debug        Enable debug logging\n", config.EnvLogLevel)
}

func newPipeline(cfg vision.Config, debug bool) (*vision.Pipeline, error) {
	var prims vision.Primitives
	switch backend := os.Getenv(config.EnvBackend); backend {
	case "", "native":
		prims = vision.Native()
	case "opencv":
		p, err := opencv.New()
		if err != nil {
			return nil, err
		}
		prims = p
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}

	p := vision.NewPipeline(cfg, prims)
	if debug {
		p.SetLogger(log.Default())
	}
	return p, nil
}

// processFrames runs every frame through the pipeline. Frames where no pair is
// found are reported and skipped; any other failure stops the run.
func processFrames(p *vision.Pipeline, horizontalRes float64, paths []string) error {
	cache := imaging.NewFrameCache()
	enc := json.NewEncoder(os.Stdout)
	for _, path := range paths {
		img, err := cache.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		// frames are processed once
		cache.Evict(path)

		res, err := p.Process(img, horizontalRes)
		if err != nil && !vision.IsFrameSkippable(err) {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err != nil {
			log.Printf("%s: skipped: %v", path, err)
		}
		if err := enc.Encode(res.Report(err)); err != nil {
			return err
		}
	}
	return nil
}
