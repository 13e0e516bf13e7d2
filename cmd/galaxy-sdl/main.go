// Galaxy SDL: the star field in a native window.
//
// Usage:
//
//	galaxy-sdl [flags]
//
// Keys: t toggles the theme, p pauses, Esc or q quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Mr-Dark-debug/galaxy/internal/config"
	"github.com/Mr-Dark-debug/galaxy/internal/database"
	"github.com/Mr-Dark-debug/galaxy/internal/framestats"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/sdlview"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
)

func init() {
	// SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.LoadEnv(config.DefaultConfig(), ".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	quality := flag.String("quality", string(cfg.Quality), "Rendering quality: auto, low, normal")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite settings database")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Main loop rate")
	width := flag.Int("width", 1280, "Initial window width")
	height := flag.Int("height", 720, "Initial window height")
	report := flag.Bool("report", false, "Print a frame report on exit")
	flag.Parse()

	if cfg.Quality, err = galaxy.ParseQuality(*quality); err != nil {
		log.Fatalf("Invalid --quality: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.EnsureDBDir(); err != nil {
		log.Fatalf("%v", err)
	}

	store, err := database.NewDBService(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database at %s: %v", cfg.DBPath, err)
	}
	defer store.Close()

	mode, err := theme.Load(store)
	if err != nil {
		log.Printf("galaxy-sdl: %v; using dark theme", err)
		mode = theme.Dark
	}

	view, err := sdlview.New(sdlview.Options{
		Width:   int32(*width),
		Height:  int32(*height),
		Quality: cfg.Quality,
		Tokens:  cfg.Tokens(),
		FPS:     cfg.FPS,
		Store:   store,
		Signal:  theme.NewSignal(mode),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := view.Run()
	if *report {
		fmt.Print(framestats.FormatReport(view.Report()))
	}
	view.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
