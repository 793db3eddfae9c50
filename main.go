package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-grid-raytracer/pkg/loaders"
	"github.com/df07/go-grid-raytracer/pkg/renderer"
	"github.com/df07/go-grid-raytracer/pkg/report"
	"github.com/df07/go-grid-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	Scene      string
	ConfigFile string
	Accel      string
	Resolution string // "fixed" or "density"
	Res        float64
	Width      int
	Height     int
	AA         int
	Depth      int
	Workers    int
	Out        string
	Format     string
	Stats      bool
	Plot       string
	Inspect    string
	Verbose    bool
	Help       bool
}

func parseFlags(args []string) (Config, *flag.FlagSet, error) {
	var cfg Config
	fs := flag.NewFlagSet("grid-raytracer", flag.ContinueOnError)
	fs.StringVar(&cfg.Scene, "scene", "default", "Built-in scene: "+strings.Join(sceneIDs(), ", "))
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML or JSON scene file (overrides -scene)")
	fs.StringVar(&cfg.Accel, "accel", "", "Accelerator: 'grid' or 'linear' (default from scene)")
	fs.StringVar(&cfg.Resolution, "resolution", "", "Grid resolution policy: 'fixed' or 'density'")
	fs.Float64Var(&cfg.Res, "res", 0, "Cells per axis for 'fixed', objects per cell for 'density'")
	fs.IntVar(&cfg.Width, "width", 0, "Image width (default from scene)")
	fs.IntVar(&cfg.Height, "height", 0, "Image height (default from scene)")
	fs.IntVar(&cfg.AA, "aa", 0, "Anti-aliasing samples per pixel axis")
	fs.IntVar(&cfg.Depth, "depth", 0, "Maximum recursion depth")
	fs.IntVar(&cfg.Workers, "workers", 0, "Rows rendered concurrently (0 = all CPUs)")
	fs.StringVar(&cfg.Out, "out", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&cfg.Format, "format", "", "Output format: "+strings.Join(loaders.Formats, ", ")+" (default from -out extension)")
	fs.BoolVar(&cfg.Stats, "stats", false, "Log grid occupancy statistics")
	fs.StringVar(&cfg.Plot, "plot", "", "Write grid occupancy to this file (.html for an interactive chart)")
	fs.StringVar(&cfg.Inspect, "inspect", "", "Inspect pixel 'x,y' instead of rendering")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")
	err := fs.Parse(args)
	return cfg, fs, err
}

func sceneIDs() []string {
	var ids []string
	for _, info := range scene.BuiltinScenes() {
		ids = append(ids, info.ID)
	}
	return ids
}

func main() {
	cfg, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if cfg.Help {
		printHelp(fs)
		return
	}

	log.SetOutput(colorable.NewColorableStderr())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Error("Render failed")
		os.Exit(1)
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Grid Raytracer")
	fmt.Println("Usage: grid-raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-11s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

// run renders (or inspects) the selected scene
func run(ctx context.Context, cfg Config) error {
	logger := log.WithField("render", uuid.NewString())

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	if err := applyOverrides(s, cfg); err != nil {
		return err
	}
	if err := s.Preprocess(logger); err != nil {
		return err
	}

	if grid := s.Grid(); grid != nil {
		if cfg.Stats {
			stats := grid.Stats()
			logger.WithFields(log.Fields{
				"resolution":   fmt.Sprintf("%dx%dx%d", stats.Resolution[0], stats.Resolution[1], stats.Resolution[2]),
				"cells":        stats.Cells,
				"occupied":     stats.OccupiedCells,
				"references":   stats.References,
				"max_per_cell": stats.MaxPerCell,
				"mean":         fmt.Sprintf("%.2f", stats.MeanPerOccupied),
				"stddev":       fmt.Sprintf("%.2f", stats.StdDevPerOccupied),
				"unbounded":    stats.Unbounded,
			}).Info("Grid occupancy")
		}
		if cfg.Plot != "" {
			if err := report.WritePlot(grid, s.Name, cfg.Plot); err != nil {
				return fmt.Errorf("failed to write occupancy plot: %w", err)
			}
			logger.WithField("file", cfg.Plot).Info("Occupancy plot saved")
		}
	} else if cfg.Stats || cfg.Plot != "" {
		logger.Warn("Grid statistics need the grid accelerator")
	}

	if cfg.Inspect != "" {
		return inspect(s, cfg.Inspect)
	}

	rt := renderer.NewRaytracer(s, logger)
	rt.SetWorkers(cfg.Workers)
	img, _, err := rt.Render(ctx)
	if err != nil {
		return err
	}

	out := cfg.Out
	if out == "" {
		ext := cfg.Format
		if ext == "" {
			ext = "png"
		}
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", s.Name, fmt.Sprintf("render_%s.%s", timestamp, ext))
	}
	if err := loaders.SaveImage(out, img, cfg.Format); err != nil {
		return err
	}
	logger.WithField("file", out).Info("Render saved")
	return nil
}

func loadScene(cfg Config) (*scene.Scene, error) {
	if cfg.ConfigFile != "" {
		return loaders.LoadSceneFile(cfg.ConfigFile)
	}
	return scene.Lookup(cfg.Scene)
}

// applyOverrides folds the command line options into the scene
func applyOverrides(s *scene.Scene, cfg Config) error {
	return scene.Overrides{
		Width:      cfg.Width,
		Height:     cfg.Height,
		AA:         cfg.AA,
		Depth:      cfg.Depth,
		Accel:      cfg.Accel,
		Resolution: cfg.Resolution,
		Res:        cfg.Res,
	}.Apply(s)
}

func inspect(s *scene.Scene, pixel string) error {
	var x, y int
	if _, err := fmt.Sscanf(pixel, "%d,%d", &x, &y); err != nil {
		return fmt.Errorf("-inspect wants 'x,y', got %q: %w", pixel, err)
	}
	result, err := renderer.InspectPixel(s, x, y)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode inspection: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
