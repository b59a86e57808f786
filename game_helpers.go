package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/patterns"
	"github.com/sheikhrachel/go-lifelike/utils"
)

// refreshInterval restarts long-running boards every so many generations
const refreshInterval = 200

// newRNG returns a generator for seed, or for the clock when seed is 0,
// together with the seed actually used.
func newRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// loadPattern loads the configured pattern, if any
func loadPattern(path string) (*patterns.Pattern, error) {
	if path == "" {
		return nil, nil
	}
	p, err := patterns.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "[loadPattern]")
	}
	return p, nil
}

// newEngine builds an engine of the given size under the configured rule.
// A rule embedded in pattern wins over the configured one.
func newEngine(config utils.Config, size int, pattern *patterns.Pattern, pool *model.GridPool) (*model.Engine, error) {
	rs, err := config.RuleSet()
	if err != nil {
		return nil, errors.Wrap(err, "[newEngine]")
	}
	if pattern != nil && pattern.Rule != nil {
		rs = *pattern.Rule
	}

	var opts []model.Option
	if pool != nil {
		opts = append(opts, model.WithPool(pool))
	}
	return model.NewEngineWithRules(size, rs.Born(), rs.Survive(), opts...), nil
}

// seedBoard fills the board with the pattern, centered, or with gliders,
// blinkers and random life when there is no pattern.
func seedBoard(engine *model.Engine, pattern *patterns.Pattern, config utils.Config, rng *rand.Rand) error {
	if pattern == nil {
		engine.SeedInterestingPatterns(rng, config.RandomDensity)
		return nil
	}

	engine.Clear()
	x, y := pattern.Center(engine.SideLength())
	if err := pattern.Stamp(engine, x, y); err != nil {
		return errors.Wrapf(err, "[seedBoard] pattern %s does not fit a %dx%d board",
			pattern.Name, engine.SideLength(), engine.SideLength())
	}
	return nil
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, pattern *patterns.Pattern, rng *rand.Rand) (
	*model.Engine,
	*model.GridPool,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	engine, err := newEngine(config, config.Size, pattern, pool)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := seedBoard(engine, pattern, config, rng); err != nil {
		return nil, nil, nil, nil, err
	}

	renderer := model.NewTerminalRenderer(config.ShowAxis)
	stats := utils.NewStats()

	return engine, pool, renderer, stats, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, engine *model.Engine, seed int64) {
	fmt.Fprintf(w, "Features: Memory Pool: %v | Rule: %s | Seed: %d\n",
		config.UseMemoryPool, engine.Rules(), seed)
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d\n",
		engine.SideLength(), engine.SideLength(), engine.CurrentGrid().CountLivingCells())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// updateGameState updates the game state and returns status information.
// The grid is compared against the history before being recorded.
func updateGameState(
	grid *model.Grid,
	history *model.History,
	lastFrameTime time.Time,
	stats *utils.Stats,
	generation int,
) (int, float64, string, bool) {
	livingCells := grid.CountLivingCells()
	density := 0.0
	if cells := grid.Size() * grid.Size(); cells > 0 {
		density = float64(livingCells) / float64(cells) * 100
	}

	// Update performance stats
	stats.Update(generation, livingCells, time.Since(lastFrameTime))

	isStagnant := history.IsStagnant(grid)
	history.Record(grid)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// formatGameStatus renders the status lines shown above each frame
func formatGameStatus(
	generation, livingCells int,
	density float64,
	status string,
	stats *utils.Stats,
	lastRestartGen int,
) string {
	s := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	s += fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Peak: %d | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.PeakPopulation, stats.Runtime().Seconds())

	if generation > lastRestartGen {
		s += fmt.Sprintf("Generations since restart: %d\n", generation-lastRestartGen)
	}
	return s + "\n"
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%refreshInterval == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// shouldInject reports whether a stagnating board should get random life
// before the restart threshold is reached
func shouldInject(stagnantCount int, config utils.Config) bool {
	return stagnantCount >= 2 && stagnantCount < config.StagnationThreshold
}

// restartGame starts the board over at generation 0 with a fresh seed
func restartGame(engine *model.Engine, pattern *patterns.Pattern, config utils.Config, rng *rand.Rand, history *model.History) error {
	engine.Resize(engine.SideLength())
	history.Reset()
	return seedBoard(engine, pattern, config, rng)
}
