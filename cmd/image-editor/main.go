package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-editor/internal/config"
	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("IMAGE_EDITOR_CONFIG")
	source := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("image-editor %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			if source != "" {
				fmt.Fprintf(os.Stderr, "unexpected argument %q\n", args[i])
				os.Exit(2)
			}
			source = args[i]
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Image Editor v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Surface %dx%d at %d fps, cross-origin %s", cfg.Width, cfg.Height, cfg.FPS, cfg.CrossOrigin)
	}

	edCfg, err := cfg.Editor(log.Default())
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	edCfg.Source = source

	ed, err := editor.Open(context.Background(), edCfg)
	if err != nil {
		log.Fatalf("Editor error: %v", err)
	}
	defer ed.Close()

	server.Version = Version
	srv := server.New(ed)
	srv.SetDebug(cfg.Debug())
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		ed.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("image-editor - MCP server for non-destructive image editing")
	fmt.Println()
	fmt.Println("Usage: image-editor [options] [image]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c PATH    Load settings from a TOML file")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_EDITOR_CONFIG=PATH             Settings file (same as --config)")
	fmt.Println("  IMAGE_EDITOR_WIDTH, IMAGE_EDITOR_HEIGHT  Surface size (default 800x600)")
	fmt.Println("  IMAGE_EDITOR_BACKGROUND=#rrggbb      Surface background (default transparent)")
	fmt.Println("  IMAGE_EDITOR_FPS=60                  Animation frame rate")
	fmt.Println("  IMAGE_EDITOR_ANIMATION_MS=200        Default animation duration")
	fmt.Println("  IMAGE_EDITOR_EASING=linear           linear, easeIn, easeOut or easeInOut")
	fmt.Println("  IMAGE_EDITOR_CROSS_ORIGIN=anonymous  anonymous or use-credentials")
	fmt.Println("  IMAGE_EDITOR_MAX_IMAGE_BYTES=N       Largest accepted source")
	fmt.Println("  IMAGE_EDITOR_LOG_LEVEL=debug         Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}
