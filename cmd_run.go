package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/patterns"
	"github.com/sheikhrachel/go-lifelike/storage"
	"github.com/sheikhrachel/go-lifelike/utils"
)

var (
	flagMaxGenerations int
	flagFrameRate      time.Duration
	flagNoRestart      bool
	flagNoRecord       bool
	flagAxis           bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation headless in the terminal",
	Long: `Run the simulation in the terminal, redrawing the board every frame.

Stagnating boards get random cells injected; boards that die out, stay
stagnant or reach the periodic refresh are reseeded when auto restart is
on. The run ends at --max-generations or on Ctrl+C and a summary is
written to the run log.

Examples:
  lifelike run
  lifelike run --size 50 --rule seeds --max-generations 300
  lifelike run --pattern ./gosper.rle --no-restart`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagMaxGenerations, "max-generations", 0, "Stop after this many generations (0 = config value)")
	runCmd.Flags().DurationVar(&flagFrameRate, "frame-rate", 0, "Delay between generations (0 = config value)")
	runCmd.Flags().BoolVar(&flagNoRestart, "no-restart", false, "Do not reseed extinct or stagnant boards")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not write a summary to the run log")
	runCmd.Flags().BoolVar(&flagAxis, "axis", false, "Show x and y axes")
}

// frame is one rendered generation handed from the simulation to the
// renderer. The renderer owns grid.
type frame struct {
	grid   *model.Grid
	status string
}

// runResult summarizes a finished run
type runResult struct {
	generations     int // rendered, including generation 0
	restarts        int
	finalPopulation int
	endReason       string
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := config
	if flagMaxGenerations > 0 {
		cfg.MaxGenerations = flagMaxGenerations
	}
	if flagFrameRate > 0 {
		cfg.FrameRate = flagFrameRate
	}
	if flagNoRestart {
		cfg.AutoRestart = false
	}
	if flagAxis {
		cfg.ShowAxis = true
	}

	pattern, err := loadPattern(cfg.Pattern)
	if err != nil {
		return err
	}
	rng, seed := newRNG(cfg.Seed)

	engine, pool, renderer, stats, err := initializeGame(cfg, pattern, rng)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderer.Out = out
	displayGameInfo(out, cfg, engine, seed)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := &simulation{
		config:  cfg,
		engine:  engine,
		pool:    pool,
		pattern: pattern,
		rng:     rng,
		stats:   stats,
		history: model.NewHistory(cfg.StagnationThreshold),
		logger:  logger,
	}
	result, err := sim.run(ctx, func(f frame) {
		renderer.Clear()
		fmt.Fprint(out, f.status)
		renderer.Display(f.grid)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFinished (%s): %s\n", result.endReason, stats.Summary())

	if flagNoRecord {
		return nil
	}
	recordRun(cfg, engine.Rules().String(), seed, stats, result)
	return nil
}

// recordRun saves the run summary under the rule the engine ran, which a
// pattern file may have set. Failures are logged, not returned.
func recordRun(cfg utils.Config, rule string, seed int64, stats *utils.Stats, result runResult) {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Rule:            rule,
		Size:            cfg.Size,
		Seed:            seed,
		Pattern:         cfg.Pattern,
		Generations:     result.generations,
		FinalPopulation: result.finalPopulation,
		PeakPopulation:  stats.PeakPopulation,
		Restarts:        result.restarts,
		EndReason:       result.endReason,
		Duration:        stats.Runtime(),
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id)
}

// simulation drives the headless loop. Only the producer goroutine touches
// the engine; finished frames travel to the renderer over a channel.
type simulation struct {
	config  utils.Config
	engine  *model.Engine
	pool    *model.GridPool
	pattern *patterns.Pattern
	rng     *rand.Rand
	stats   *utils.Stats
	history *model.History
	logger  *log.Logger
}

// run advances the board until the generation limit or until ctx is done,
// calling render for each generation from a second goroutine.
func (s *simulation) run(ctx context.Context, render func(frame)) (runResult, error) {
	var (
		result runResult
		frames = make(chan frame)
		eg     errgroup.Group
	)

	eg.Go(func() error {
		defer close(frames)
		var err error
		result, err = s.produce(ctx, frames)
		return err
	})

	eg.Go(func() error {
		for f := range frames {
			render(f)
			model.GridToPool(f.grid, s.pool)
		}
		return nil
	})

	err := eg.Wait()
	return result, err
}

func (s *simulation) produce(ctx context.Context, frames chan<- frame) (runResult, error) {
	var (
		result         runResult
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	ticker := time.NewTicker(max(s.config.FrameRate, time.Millisecond))
	defer ticker.Stop()

	for {
		frameStart := time.Now()

		// The engine is one generation ahead of grid from here on
		grid := s.engine.Advance()
		livingCells, density, status, isStagnant := updateGameState(grid, s.history, lastFrameTime, s.stats, generation)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		result.generations = generation + 1
		result.finalPopulation = livingCells

		f := frame{
			grid:   grid,
			status: formatGameStatus(generation, livingCells, density, status, s.stats, lastRestartGen),
		}
		select {
		case frames <- f:
		case <-ctx.Done():
			model.GridToPool(grid, s.pool)
			result.endReason = "interrupted"
			return result, nil
		}

		// generation is 0-based; stop once MaxGenerations frames are out
		if s.config.MaxGenerations > 0 && generation >= s.config.MaxGenerations-1 {
			result.endReason = "max generations"
			return result, nil
		}

		shouldRestart, restartReason := checkRestartConditions(livingCells, stagnantCount, generation, s.config)
		switch {
		case shouldRestart && s.config.AutoRestart:
			s.logger.Info("restarting", "reason", restartReason, "generation", generation)
			if err := restartGame(s.engine, s.pattern, s.config, s.rng, s.history); err != nil {
				return result, err
			}
			lastRestartGen = generation
			stagnantCount = 0
			result.restarts++
			s.stats.Restarts++
		case livingCells == 0 && !s.config.AutoRestart:
			result.endReason = "extinction"
			return result, nil
		case shouldInject(stagnantCount, s.config):
			// Inject some life to try to break the stagnation
			s.engine.InjectRandomLife(s.rng, s.config.InjectionCount)
		}

		generation++

		select {
		case <-ticker.C:
		case <-ctx.Done():
			result.endReason = "interrupted"
			return result, nil
		}
	}
}
