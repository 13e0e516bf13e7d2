// Galaxy: an animated star field and meteor shower for the terminal.
//
// Usage:
//
//	galaxy [flags]
//
// Flags:
//
//	--quality      Rendering quality: auto, low, normal (default: auto)
//	--db           Path to SQLite settings database (default: ~/.galaxy/galaxy.db)
//	--log          Write logs to this file (default: discarded)
//	--fps          Host tick rate (default: 60)
//	--cell-width   Logical pixels per terminal column (default: 8)
//	--cell-height  Logical pixels per terminal row (default: 16)
//	--env          Optional .env file (default: .env)
//
// Environment variables GALAXY_QUALITY, GALAXY_DB, GALAXY_LOG, GALAXY_FPS,
// GALAXY_PRIMARY, GALAXY_CELL_WIDTH and GALAXY_CELL_HEIGHT provide the
// defaults that flags override.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/galaxy/internal/config"
	"github.com/Mr-Dark-debug/galaxy/internal/database"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
	"github.com/Mr-Dark-debug/galaxy/internal/tui"
)

func main() {
	envFile := config.EnvFileArg(os.Args[1:], ".env")
	cfg, err := config.LoadEnv(config.DefaultConfig(), envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	quality := flag.String("quality", string(cfg.Quality), "Rendering quality: auto, low, normal")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite settings database")
	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Write logs to this file")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Host tick rate")
	flag.Float64Var(&cfg.CellWidth, "cell-width", cfg.CellWidth, "Logical pixels per terminal column")
	flag.Float64Var(&cfg.CellHeight, "cell-height", cfg.CellHeight, "Logical pixels per terminal row")
	flag.String("env", envFile, "Optional .env file")
	flag.Parse()

	if cfg.Quality, err = galaxy.ParseQuality(*quality); err != nil {
		log.Fatalf("Invalid --quality: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The alt screen owns stdout; logs go to a file or nowhere.
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "galaxy")
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.LogPath, err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := cfg.EnsureDBDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := database.NewDBService(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database at %s: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer store.Close()

	mode, err := theme.Load(store)
	if err != nil {
		log.Printf("galaxy: %v; using dark theme", err)
		mode = theme.Dark
	}

	model := tui.NewModel(store, theme.NewSignal(mode), tui.Options{
		Quality:    cfg.Quality,
		Tokens:     cfg.Tokens(),
		FPS:        cfg.FPS,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Profile:    lipgloss.ColorProfile(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
