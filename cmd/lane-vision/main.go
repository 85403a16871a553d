package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/lane-vision/internal/config"
	"github.com/ironsheep/lane-vision/internal/detection"
	"github.com/ironsheep/lane-vision/internal/imaging"
	"github.com/ironsheep/lane-vision/internal/logger"
	"github.com/ironsheep/lane-vision/internal/server"
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
			fmt.Printf("lane-vision %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("lane-vision - lane and ball detection over MCP")
			fmt.Println()
			fmt.Println("Usage: lane-vision [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=<file>      JSON configuration file\n", config.EnvConfigPath)
			fmt.Printf("  %s=debug    Log level (debug, info, warn, error)\n", config.EnvLogLevel)
			fmt.Printf("  %s=<dir>    Write raw_image, final_image and frame_red PNGs\n", config.EnvDebugDir)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Each processed frame emits a notifications/image_data notification.")
			return
		}
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "lane-vision: %v\n", err)
		return 2
	}

	// stdout is for MCP protocol
	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))
	log.Debug("main", "starting", map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
	})

	var opts []detection.Option
	if cfg.Debug.Enabled() {
		debug, err := imaging.NewDebugWriter(cfg.Debug.Dir, cfg.Debug.Buffer, log)
		if err != nil {
			log.Error("main", err, map[string]interface{}{"dir": cfg.Debug.Dir})
			return 1
		}
		defer debug.Close()
		opts = append(opts, detection.WithDebugSink(debug))
	}

	store := detection.NewThresholdStore(cfg.Thresholds, log)
	srv := server.New(cfg.Detection, store, log, opts...)
	if err := srv.Run(); err != nil {
		log.Error("main", fmt.Errorf("server error: %w", err), nil)
		return 1
	}
	return 0
}
