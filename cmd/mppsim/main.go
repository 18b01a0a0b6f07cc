// Command mppsim runs the Game of Life SIMD simulator: it seeds the
// 256x256 torus either randomly or from a pattern file, then steps
// generations on its own clock until told to stop.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mppsim/config"
	"github.com/sarchlab/mppsim/controller"
	"github.com/sarchlab/mppsim/display"
	"github.com/sarchlab/mppsim/internal/logging"
	"github.com/sarchlab/mppsim/internal/rng"
	"github.com/sarchlab/mppsim/pattern"
	"github.com/sarchlab/mppsim/pe"
	"github.com/sarchlab/mppsim/router"
)

const seedX, seedY = 128, 128

func main() {
	var (
		seed       int64
		steps      int
		memorySize int
		headless   bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "mppsim",
		Short: "mppsim — a 256x256 Game of Life simulator over a bit-parallel PE array",
	}

	runCmd := &cobra.Command{
		Use:   "run [pattern-file]",
		Short: "Seed the grid and run generations until terminated",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if memorySize > 0 {
				cfg.MemorySize = memorySize
			}

			var patternFile string
			if len(args) == 1 {
				patternFile = args[0]
			}

			return run(cfg, patternFile, seed, steps, headless)
		},
	}

	runCmd.Flags().Int64Var(&seed, "seed", 1, "random seed used when no pattern file is given")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of generations to run (0 = until terminated)")
	runCmd.Flags().IntVar(&memorySize, "memory-size", 0, "flags per PE (0 = use config default)")
	runCmd.Flags().BoolVar(&headless, "headless", false, "use the counting-only headless sink instead of the buffered one")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML configuration file")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("mppsim: %v", err)
	}

	atexit.Exit(0)
}

func run(cfg config.Config, patternFile string, seed int64, steps int, headless bool) error {
	logger := logging.New(slog.LevelInfo)
	logger.Info("starting mppsim", "memory_size", cfg.MemorySize, "target_hz", cfg.TargetHz, "headless", headless)
	atexit.Register(func() { logger.Info("mppsim exited") })

	engine := pe.Builder{}.WithMemorySize(cfg.MemorySize).Build()
	r := router.New(engine)
	ctrl := controller.New(engine, r)

	if err := seedGrid(engine, r, patternFile, seed); err != nil {
		logger.Error("seeding failed", "error", err)
		return err
	}
	if patternFile == "" {
		logger.Info("seeded grid randomly", "seed", seed)
	} else {
		logger.Info("seeded grid from pattern file", "path", patternFile)
	}

	var sink display.Sink
	if headless {
		sink = display.NewHeadless()
	} else {
		sink = display.NewBuffered()
	}

	simEngine := sim.NewSerialEngine()
	gen := controller.NewGeneration("Generation", simEngine, sim.Freq(cfg.TargetHz)*sim.Hz, ctrl, sink)
	gen.MaxSteps = steps

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received interrupt, finishing in-flight generation")
		gen.MaxSteps = gen.Steps + 1
	}()

	simEngine.Run()

	logger.Info("shutting down", "generations_run", gen.Steps)
	fmt.Printf("ran %d generations\n", gen.Steps)
	return nil
}

// seedGrid seeds the grid either from a pattern file or, for random
// seeding, by RECVing one random 64-bit word per chip rather than
// unicasting individual cells: a chip's whole neighborhood of 64 PEs
// is seeded in a single microinstruction-level operation.
func seedGrid(engine *pe.Engine, r *router.Router, patternFile string, seed int64) error {
	if patternFile == "" {
		src := rng.New(seed)
		chipsPerRow := router.Width / pe.PEsPerChip
		for y := 0; y < router.Height; y++ {
			for cc := 0; cc < chipsPerRow; cc++ {
				chip := y*chipsPerRow + cc
				engine.RECV(chip, src.ChipWord())
			}
		}
		return nil
	}

	cells, err := pattern.Load(seedX, seedY, patternFile)
	if err != nil {
		return err
	}
	for _, c := range cells {
		r.Unicast2D(c.X%router.Width, c.Y%router.Height, true)
	}
	return nil
}
