package main

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/patterns"
	"github.com/sheikhrachel/go-lifelike/storage"
	"github.com/sheikhrachel/go-lifelike/utils"
)

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()

	tests := []struct {
		name          string
		livingCells   int
		stagnantCount int
		generation    int
		wantRestart   bool
		wantReason    string
	}{
		{"extinction", 0, 0, 17, true, "extinction"},
		{"stagnation", 12, 5, 17, true, "stagnation detected"},
		{"periodic refresh", 12, 0, 400, true, "periodic refresh"},
		{"first generation", 12, 0, 0, false, ""},
		{"active", 12, 4, 17, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restart, reason := checkRestartConditions(tt.livingCells, tt.stagnantCount, tt.generation, config)
			if restart != tt.wantRestart || reason != tt.wantReason {
				t.Errorf("checkRestartConditions() = (%v, %q), expected (%v, %q)",
					restart, reason, tt.wantRestart, tt.wantReason)
			}
		})
	}
}

func TestShouldInject(t *testing.T) {
	config := utils.DefaultConfig()
	for count, want := range map[int]bool{0: false, 1: false, 2: true, 4: true, 5: false} {
		if got := shouldInject(count, config); got != want {
			t.Errorf("shouldInject(%d) = %v, expected %v", count, got, want)
		}
	}
}

func TestUpdateGameStateDetectsStillLife(t *testing.T) {
	e := model.NewEngine(6)
	// block
	for _, c := range []model.Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}} {
		if err := e.Set(c.X, c.Y, true); err != nil {
			t.Fatal(err)
		}
	}

	var (
		history = model.NewHistory(5)
		stats   = utils.NewStats()
	)
	for gen := range 4 {
		living, density, status, stagnant := updateGameState(e.Advance(), history, time.Now(), stats, gen)
		if living != 4 {
			t.Fatalf("generation %d: %d living cells, expected 4", gen, living)
		}
		if want := 4.0 / 36 * 100; math.Abs(density-want) > 1e-9 {
			t.Fatalf("density = %v, expected %v", density, want)
		}
		wantStagnant := gen >= 3
		if stagnant != wantStagnant {
			t.Fatalf("generation %d: stagnant = %v, expected %v", gen, stagnant, wantStagnant)
		}
		if stagnant && status != "Stagnant" {
			t.Fatalf("status = %q, expected Stagnant", status)
		}
	}
	if stats.PeakPopulation != 4 {
		t.Errorf("PeakPopulation = %d, expected 4", stats.PeakPopulation)
	}
}

func TestNewEngineUsesPatternRule(t *testing.T) {
	p, err := patterns.Parse(strings.NewReader("x = 2, y = 1, rule = B36/S23\n2o!\n"), patterns.FormatRLE)
	if err != nil {
		t.Fatal(err)
	}

	config := utils.DefaultConfig()
	config.Rule = "seeds"

	e, err := newEngine(config, 10, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Rules().String(); got != "B36/S23" {
		t.Errorf("Rules() = %s, expected the pattern's B36/S23", got)
	}

	e, err = newEngine(config, 10, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Rules().String(); got != "B2/S" {
		t.Errorf("Rules() = %s, expected B2/S", got)
	}
}

func TestRecordRunUsesEngineRule(t *testing.T) {
	logger = log.New(io.Discard)

	p, err := patterns.Parse(strings.NewReader("x = 3, y = 1, rule = B36/S23\n3o!\n"), patterns.FormatRLE)
	if err != nil {
		t.Fatal(err)
	}
	config := utils.DefaultConfig()
	config.DBPath = filepath.Join(t.TempDir(), "runs.db")

	e, err := newEngine(config, 10, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	recordRun(config, e.Rules().String(), 1, utils.NewStats(), runResult{generations: 9, endReason: "max generations"})

	store, err := storage.Open(config.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Rule != "B36/S23" {
		t.Fatalf("RecentRuns() = %+v, expected one run under the pattern's B36/S23", runs)
	}
	if longest, _ := store.LongestRuns("B3/S23", 5); len(longest) != 0 {
		t.Errorf("run recorded under the config rule: %+v", longest)
	}
}

func TestSeedBoardWithPattern(t *testing.T) {
	p, err := patterns.Parse(strings.NewReader("OOO\n"), patterns.FormatPlaintext)
	if err != nil {
		t.Fatal(err)
	}
	config := utils.DefaultConfig()
	rng, _ := newRNG(1)

	e := model.NewEngine(7)
	e.AddGlider(0, 0)
	if err := seedBoard(e, p, config, rng); err != nil {
		t.Fatalf("seedBoard() failed: %v", err)
	}
	got := e.CurrentGrid().LiveCells()
	want := []model.Coord{{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 3}}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("LiveCells() = %v, expected %v", got, want)
	}

	if err := seedBoard(model.NewEngine(2), p, config, rng); err == nil {
		t.Error("expected an error for a pattern wider than the board")
	}
}

func TestNewRNGIsReproducible(t *testing.T) {
	a, seedA := newRNG(42)
	b, seedB := newRNG(42)
	if seedA != 42 || seedB != 42 {
		t.Fatalf("seeds = %d, %d, expected 42", seedA, seedB)
	}
	if a.Int63() != b.Int63() {
		t.Error("equal seeds produced different sequences")
	}
	if _, seed := newRNG(0); seed == 0 {
		t.Error("seed 0 should be replaced by a clock seed")
	}
}

func newTestSimulation(t *testing.T, config utils.Config, engine *model.Engine, pool *model.GridPool) *simulation {
	t.Helper()
	rng, _ := newRNG(7)
	return &simulation{
		config:  config,
		engine:  engine,
		pool:    pool,
		rng:     rng,
		stats:   utils.NewStats(),
		history: model.NewHistory(config.StagnationThreshold),
		logger:  log.New(io.Discard),
	}
}

func TestSimulationStopsAtMaxGenerations(t *testing.T) {
	config := utils.DefaultConfig()
	config.MaxGenerations = 5
	config.FrameRate = time.Millisecond
	config.AutoRestart = false
	config.InjectionCount = 0

	pool := model.NewGridPool()
	e := model.NewEngine(10, model.WithPool(pool))
	e.AddBlinker(4, 4)

	sim := newTestSimulation(t, config, e, pool)

	var generations []int
	result, err := sim.run(context.Background(), func(f frame) {
		generations = append(generations, f.grid.Generation())
		if f.grid.CountLivingCells() != 3 {
			t.Errorf("generation %d: %d living cells, expected 3", f.grid.Generation(), f.grid.CountLivingCells())
		}
		if !strings.Contains(f.status, "Living: 3") {
			t.Errorf("status %q is missing the population", f.status)
		}
	})
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	if result.endReason != "max generations" || result.generations != 5 {
		t.Errorf("result = %+v, expected exactly 5 generations ending at the limit", result)
	}
	want := []int{0, 1, 2, 3, 4}
	if len(generations) != len(want) {
		t.Fatalf("rendered generations %v, expected %v", generations, want)
	}
	for i := range want {
		if generations[i] != want[i] {
			t.Fatalf("rendered generations %v, expected %v", generations, want)
		}
	}
}

func TestSimulationEndsOnExtinction(t *testing.T) {
	config := utils.DefaultConfig()
	config.FrameRate = time.Millisecond
	config.AutoRestart = false

	sim := newTestSimulation(t, config, model.NewEngine(8), nil)

	frames := 0
	result, err := sim.run(context.Background(), func(frame) { frames++ })
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if result.endReason != "extinction" || frames != 1 {
		t.Errorf("result = %+v after %d frames, expected extinction after 1", result, frames)
	}
}

func TestSimulationRestartsEmptyBoard(t *testing.T) {
	config := utils.DefaultConfig()
	config.FrameRate = time.Millisecond
	config.MaxGenerations = 3
	config.RandomDensity = 0.3

	sim := newTestSimulation(t, config, model.NewEngine(20), nil)

	result, err := sim.run(context.Background(), func(frame) {})
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if result.restarts < 1 {
		t.Errorf("restarts = %d, expected the empty board to be reseeded", result.restarts)
	}
	if sim.stats.Restarts != result.restarts {
		t.Errorf("stats.Restarts = %d, expected %d", sim.stats.Restarts, result.restarts)
	}
}

func TestSimulationInterrupted(t *testing.T) {
	config := utils.DefaultConfig()
	config.FrameRate = time.Millisecond
	config.MaxGenerations = 0

	e := model.NewEngine(10)
	e.AddBlinker(4, 4)
	sim := newTestSimulation(t, config, e, nil)

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	result, err := sim.run(ctx, func(frame) {
		frames++
		if frames == 3 {
			cancel()
		}
	})
	if err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if result.endReason != "interrupted" {
		t.Errorf("endReason = %q, expected interrupted", result.endReason)
	}
}

func TestRulesCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rules"}, "highlife           B36/S23"},
		{[]string{"rules", "23/36"}, "B36/S23  born: [3 6]  survive: [2 3]"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(tt.args)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%v printed:\n%s\nexpected it to contain %q", tt.args, out.String(), tt.want)
		}
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	logger = log.New(io.Discard)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg != utils.DefaultConfig() {
		t.Errorf("loadConfig() = %+v, expected defaults", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte(`{"size": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Size != 12 {
		t.Errorf("Size = %d, expected 12 from %s", cfg.Size, defaultConfigFile)
	}
}
