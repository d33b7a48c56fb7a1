// Command blockworld runs the engine headless: a viewer flies across the
// world while chunks stream in and out around it, logging progress. Useful
// for profiling generation and validating a seed before wiring a renderer.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/markoelez/blockworld/internal/engine"
	"github.com/markoelez/blockworld/internal/engine/config"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "path to JSON config file")
	speed := flag.Float64("speed", 8.0, "fly-through speed in blocks per second")
	duration := flag.Duration("duration", 0, "stop after this long (0 = run until interrupted)")
	verbose := flag.Bool("v", false, "enable debug logging")

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "chunk extent in blocks")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "world height in blocks")
	flag.IntVar(&cfg.SeaLevel, "sea-level", cfg.SeaLevel, "sea level height")
	flag.IntVar(&cfg.LoadRadius, "load-radius", cfg.LoadRadius, "chunk load radius around the viewer")
	flag.IntVar(&cfg.Hysteresis, "hysteresis", cfg.Hysteresis, "extra radius kept before eviction")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "generation workers (0 = NumCPU)")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	eng := engine.New(cfg, log)
	defer eng.Close()

	viewer := eng.SpawnPosition()
	log.Info("spawn found", "x", viewer.X(), "y", viewer.Y(), "z", viewer.Z(), "seed", cfg.Seed)

	const frame = 50 * time.Millisecond
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	report := time.NewTicker(2 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down", "resident", eng.ChunkCount())
			return
		case <-report.C:
			ready := eng.ReadyChunks()
			var quads int
			for _, c := range ready {
				quads += c.Mesh.Opaque.QuadCount() + c.Mesh.Transparent.QuadCount()
			}
			log.Info("streaming",
				"x", int(viewer.X()), "z", int(viewer.Z()),
				"resident", eng.ChunkCount(), "ready", len(ready), "quads", quads)
		case <-ticker.C:
			step := float32(*speed) * float32(frame.Seconds())
			viewer = viewer.Add(mgl32.Vec3{step, 0, 0})
			eng.Update(viewer)
		}
	}
}
