package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sheikhrachel/go-lifelike/tui"
)

var (
	flagFit        bool
	flagStepByStep bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the board interactively",
	Long: `Open the interactive menu.

Menu:
  p  play the simulation (space pauses, n steps while paused)
  s  select the grid size
  c  change cells with the cursor (h/j/k/l, w/a/s/d or arrows, space toggles)
  l  load a pattern from a .cells, .rle or .yaml file
  r  change the rule (B3/S23, 23/3 or a preset name)
  i  step by step mode: every key advances one generation
  a  show x and y axes
  t  add a glider in the top left corner
  q  exits the current screen or the program

Examples:
  lifelike play
  lifelike play --fit --rule day-and-night
  lifelike play --pattern ./pulsar.cells --step`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFit, "fit", false, "Size the board to the terminal")
	playCmd.Flags().BoolVar(&flagStepByStep, "step", false, "Start in step by step mode")
	playCmd.Flags().BoolVar(&flagAxis, "axis", false, "Show x and y axes")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg := config
	if flagFit {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cfg.Size = tui.BoardSizeFor(w, h)
		} else {
			logger.Warn("cannot read terminal size, keeping configured size", "error", err)
		}
	}

	pattern, err := loadPattern(cfg.Pattern)
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg, cfg.Size, pattern, nil)
	if err != nil {
		return err
	}
	if pattern != nil {
		// the interactive board starts empty unless a pattern is given
		rng, _ := newRNG(cfg.Seed)
		if err := seedBoard(engine, pattern, cfg, rng); err != nil {
			return err
		}
	}

	return tui.Run(engine, tui.Options{
		FrameRate:  cfg.FrameRate,
		ShowAxis:   cfg.ShowAxis || flagAxis,
		StepByStep: cfg.StepByStep || flagStepByStep,
		Logger:     logger,
	})
}
