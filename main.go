package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"firstglobe/internal/cache"
	"firstglobe/internal/config"
	"firstglobe/internal/engine"
	"firstglobe/internal/geo"
	"firstglobe/internal/logging"
	"firstglobe/internal/story"
	"firstglobe/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	configDir := flag.String("config", ".", "Directory containing firstglobe.cfg.json")
	cacheDir := flag.String("cache", "", "Cache directory for map data (default: ~/.firstglobe/data)")
	seedFile := flag.String("seed", "", "JSON file of memories to load at startup")
	logFile := flag.String("log", "", "Log file (overrides config)")
	tiltMode := flag.String("tilt", "off", "Tilt input: off or demo")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("firstglobe - a globe of first experiences, in your terminal")
		fmt.Println("\nUsage: firstglobe [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		fmt.Println("\nKeys: drag to rotate, click a marker to read, +/- or wheel to zoom,")
		fmt.Println("      a: placement mode, f: category filter, h: heatmap, n: day/night,")
		fmt.Println("      c: constellations, g: tilt, Tab: list, q: quit")
		os.Exit(0)
	}

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logPath := config.GetString("logFile")
	if *logFile != "" {
		logPath = *logFile
	}

	logger, closer, err := logging.New(logPath, config.GetString("logLevel"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	// Ensure world boundary data is available
	fmt.Println("Checking world boundary data...")
	cacheManager, err := cache.NewManager(*cacheDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize cache: %v\n", err)
		os.Exit(1)
	}

	// A failed download is not fatal: the globe still rotates, it
	// just renders ocean-only without country hit-testing
	var world *geo.World
	if err := cacheManager.EnsureData(); err != nil {
		logger.Warn().Err(err).Msg("boundary download failed, starting without land")
		fmt.Fprintf(os.Stderr, "Warning: no map data (%v); starting ocean-only\n", err)
	} else {
		fmt.Println("Loading world boundaries...")
		world, err = geo.LoadWorld(cacheManager.CountriesPath())
		if err != nil {
			logger.Warn().Err(err).Msg("boundary load failed, starting without land")
			fmt.Fprintf(os.Stderr, "Warning: failed to load boundaries (%v); starting ocean-only\n", err)
			world = nil
		} else {
			fmt.Printf("Loaded %d countries\n", len(world.Countries))
		}
	}

	// Load seed memories
	store := story.NewStore()
	if *seedFile != "" {
		n, err := store.LoadFile(*seedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load seed file: %v\n", err)
		} else {
			fmt.Printf("Loaded %d memories\n", n)
		}
	}

	var tilt engine.TiltSource = engine.NoTilt{}
	if *tiltMode == "demo" {
		tilt = engine.NewDemoTilt(10, 20*time.Second)
	}

	opts := ui.Options{
		AspectRatio:   config.GetFloat("globe.aspectRatio"),
		FPS:           config.GetInt("fps"),
		DragThreshold: config.GetFloat("input.dragThreshold"),
		Tuning: engine.Tuning{
			DragSensitivity: config.GetFloat("input.dragSensitivity"),
			Friction:        config.GetFloat("input.friction"),
			VelocityEpsilon: config.GetFloat("input.velocityEpsilon"),
			EaseFactor:      config.GetFloat("input.easeFactor"),
			TiltDeadzone:    config.GetFloat("tilt.deadzone"),
			TiltSensitivity: config.GetFloat("tilt.sensitivity"),
			MinScale:        config.GetFloat("globe.minScale"),
			MaxScale:        config.GetFloat("globe.maxScale"),
			ZoomStep:        config.GetFloat("globe.zoomStep"),
		},
		Particles: engine.ParticleTuning{
			SpawnChance: config.GetFloat("particles.spawnChance"),
			Fade:        config.GetFloat("particles.fade"),
			Speed:       config.GetFloat("particles.speed"),
		},
		Heatmap: engine.HeatmapTuning{
			Bandwidth:  config.GetFloat("heatmap.bandwidth"),
			Thresholds: config.GetInt("heatmap.thresholds"),
			EveryNth:   config.GetInt("heatmap.everyNth"),
		},
		Toggles: engine.Toggles{
			Night:          config.GetBool("overlays.night"),
			Constellations: config.GetBool("overlays.constellations"),
			Heatmap:        config.GetBool("overlays.heatmap"),
		},
		Tilt:        tilt,
		TiltEnabled: *tiltMode != "off",
		Feedback:    config.GetBool("feedback.enabled"),
	}

	callbacks := ui.Callbacks{
		StorySelected: func(p *story.Point) {
			logger.Info().Str("id", p.ID).Msg("story selected")
		},
		LocationPicked: func(lat, lon float64, country string) {
			logger.Info().Float64("lat", lat).Float64("lon", lon).Str("country", country).Msg("location picked")
		},
		ZoomChanged: func(scale float64) {
			logger.Debug().Float64("scale", scale).Msg("zoom changed")
		},
	}

	app, err := ui.NewApp(store, world, opts, callbacks, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
