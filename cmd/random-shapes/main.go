package main

import (
	"fmt"
	"log"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("random-shapes - labeled random shape images for detector training")
	fmt.Println()
	fmt.Println("Usage: random-shapes <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate     Render one image and its labels")
	fmt.Println("  dataset      Render a dataset described by a YAML config")
	fmt.Println("  verify       Check a rendered image against its label file")
	fmt.Println("  serve        Run the MCP server on stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'random-shapes <command> -h' for the options of a command.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  RANDOM_SHAPES_LOG_LEVEL=debug    Enable debug logging")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("random-shapes %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	// Configure logging to stderr (stdout carries results and the MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("RANDOM_SHAPES_LOG_LEVEL") == "debug" {
		log.Printf("random-shapes v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "generate":
		err = runGenerate(args)
	case "dataset":
		err = runDataset(args)
	case "verify":
		err = runVerify(args)
	case "serve":
		err = runServe(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
