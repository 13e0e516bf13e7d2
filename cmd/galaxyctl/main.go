// galaxyctl: command-line tools for Galaxy settings and diagnostics.
//
// Usage:
//
//	galaxyctl <command> [flags]
//
// Commands:
//
//	theme      Show or change the persisted theme
//	settings   List every stored setting
//	seed       Show the tier and star count for a surface size
//	bench      Run the animator headless and report frame statistics
//	snapshot   Render one frame to the terminal
//	version    Print version information
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/Mr-Dark-debug/galaxy/internal/config"
	"github.com/Mr-Dark-debug/galaxy/internal/database"
	"github.com/Mr-Dark-debug/galaxy/internal/framestats"
	"github.com/Mr-Dark-debug/galaxy/internal/galaxy"
	"github.com/Mr-Dark-debug/galaxy/internal/headless"
	"github.com/Mr-Dark-debug/galaxy/internal/raster"
	"github.com/Mr-Dark-debug/galaxy/internal/theme"
	"github.com/Mr-Dark-debug/galaxy/pkg/jsonutil"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadEnv(config.DefaultConfig(), ".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch os.Args[1] {
	case "theme":
		cmdTheme(cfg)
	case "settings":
		cmdSettings(cfg)
	case "seed":
		cmdSeed(cfg)
	case "bench":
		cmdBench(cfg)
	case "snapshot":
		cmdSnapshot(cfg)
	case "version":
		fmt.Printf("Galaxy v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`galaxyctl: settings and diagnostics for Galaxy

Usage:
  galaxyctl <command> [flags]

Commands:
  theme      Show or change the theme: get | set <dark|light> | toggle
  settings   List every stored setting
  seed       Show the tier and star count for a surface size
  bench      Run the animator headless and report frame statistics
  snapshot   Render one frame to the terminal
  version    Print version information

Run 'galaxyctl <command> --help' for details on each command.`)
}

func openStore(path string) *database.DBService {
	cfg := config.DefaultConfig()
	cfg.DBPath = path
	if err := cfg.EnsureDBDir(); err != nil {
		log.Fatalf("%v", err)
	}
	store, err := database.NewDBService(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return store
}

func parseQuality(s string) galaxy.Quality {
	q, err := galaxy.ParseQuality(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return q
}

// cmdTheme reads or changes the persisted theme. Running hosts pick up
// the change on their next reload.
func cmdTheme(cfg config.Config) {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite database")
	fs.Parse(os.Args[2:])

	action := "get"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}

	store := openStore(*dbPath)
	defer store.Close()

	current, err := theme.Load(store)
	if err != nil {
		log.Fatalf("Failed to load theme: %v", err)
	}

	next := current
	switch action {
	case "get":
		fmt.Println(current)
		return
	case "toggle":
		next = theme.ModeOf(!current.IsDark())
	case "set":
		if fs.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Error: theme set requires dark or light")
			os.Exit(1)
		}
		if next, err = theme.ParseMode(fs.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown theme action: %s\n", action)
		os.Exit(1)
	}

	if err := theme.Save(store, next); err != nil {
		log.Fatalf("Failed to save theme: %v", err)
	}
	fmt.Println(next)
}

// cmdSettings dumps the settings table as JSON.
func cmdSettings(cfg config.Config) {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to SQLite database")
	fs.Parse(os.Args[2:])

	store := openStore(*dbPath)
	defer store.Close()

	settings, err := store.ListSettings()
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	if err := jsonutil.Write(os.Stdout, settings); err != nil {
		log.Fatalf("%v", err)
	}
}

// seedInfo is the output of `galaxyctl seed`.
type seedInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Quality     string  `json:"quality"`
	Tier        string  `json:"tier"`
	Small       bool    `json:"small"`
	Stars       int     `json:"stars"`
	MinFrameMs  float64 `json:"min_frame_ms"`
	MaxFPS      float64 `json:"max_fps"`
	AreaPerStar float64 `json:"area_per_star"`
}

// cmdSeed prints how a surface of the given size would be populated.
func cmdSeed(cfg config.Config) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	width := fs.Int("width", 1920, "Surface width in pixels")
	height := fs.Int("height", 1080, "Surface height in pixels")
	quality := fs.String("quality", string(cfg.Quality), "Quality: auto, low, normal")
	fs.Parse(os.Args[2:])

	q := parseQuality(*quality)
	tier := galaxy.ResolveTier(q, *width, *height)
	p := galaxy.ParamsFor(tier)

	info := seedInfo{
		Width:       *width,
		Height:      *height,
		Quality:     string(q),
		Tier:        tier.String(),
		Small:       galaxy.IsSmall(*width, *height),
		Stars:       galaxy.TargetStars(tier, *width, *height),
		MinFrameMs:  p.MinFrameMs,
		MaxFPS:      1000 / p.MinFrameMs,
		AreaPerStar: p.AreaPerStar,
	}
	if err := jsonutil.Write(os.Stdout, info); err != nil {
		log.Fatalf("%v", err)
	}
}

// cmdBench drives the animator on a headless scheduler and reports the
// effective frame rate, throttling and jank.
func cmdBench(cfg config.Config) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	width := fs.Float64("width", 1920, "Surface width in pixels")
	height := fs.Float64("height", 1080, "Surface height in pixels")
	quality := fs.String("quality", string(cfg.Quality), "Quality: auto, low, normal")
	frames := fs.Int("frames", 600, "Scheduler ticks to run")
	hz := fs.Float64("hz", 60, "Scheduler tick rate")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	light := fs.Bool("light", false, "Use the light theme")
	outputFormat := fs.String("format", "markdown", "Output format: markdown, json")
	fs.Parse(os.Args[2:])

	session := headless.NewSession(headless.SessionConfig{
		Width:   *width,
		Height:  *height,
		Quality: parseQuality(*quality),
		Mode:    theme.ModeOf(!*light),
		Seed:    *seed,
		Tokens:  cfg.Tokens(),
	})
	defer session.Close()
	if !session.Animator.Active() {
		fmt.Fprintln(os.Stderr, "Error: surface has no bounds")
		os.Exit(1)
	}

	started := time.Now()
	session.Run(*frames, *hz)
	log.Printf("bench: %d ticks in %s", *frames, time.Since(started).Round(time.Millisecond))

	report := session.Report()
	switch *outputFormat {
	case "json":
		if err := jsonutil.Write(os.Stdout, report); err != nil {
			log.Fatalf("%v", err)
		}
	case "markdown":
		fmt.Print(framestats.FormatReport(report))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *outputFormat)
		os.Exit(1)
	}
}

// cmdSnapshot renders a single frame as half-block cells.
func cmdSnapshot(cfg config.Config) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	cols := fs.Int("cols", 80, "Columns")
	rows := fs.Int("rows", 24, "Rows")
	frames := fs.Int("frames", 1, "Ticks to run before capturing")
	mode := fs.String("theme", "", "Theme: dark or light (default: stored theme)")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	quality := fs.String("quality", string(cfg.Quality), "Quality: auto, low, normal")
	fs.Parse(os.Args[2:])

	m := theme.Dark
	if *mode != "" {
		var err error
		if m, err = theme.ParseMode(*mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else if store, err := database.NewDBService(cfg.DBPath); err == nil {
		if stored, err := theme.Load(store); err == nil {
			m = stored
		}
		store.Close()
	}

	session := headless.NewSession(headless.SessionConfig{
		Width:   float64(*cols) * cfg.CellWidth,
		Height:  float64(*rows) * cfg.CellHeight,
		Quality: parseQuality(*quality),
		Mode:    m,
		Seed:    *seed,
		Tokens:  cfg.Tokens(),
		Canvas:  raster.ForCells(cfg.CellWidth, cfg.CellHeight),
	})
	defer session.Close()
	session.Run(max(1, *frames), 60)

	profile := termenv.EnvColorProfile()
	fmt.Println(session.Canvas.ANSI(raster.Background(m.Backdrop()), profile))
}
