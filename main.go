// lifelike runs life-like cellular automata on a square, clipped board.
//
// Usage:
//
//	lifelike run              - headless loop in the terminal
//	lifelike play             - interactive menu, editor and player
//	lifelike serve            - serve the interactive UI over SSH
//	lifelike history          - show recorded runs
//	lifelike rules            - list rule presets
//
// Global flags:
//
//	--config <path>   - JSON or YAML configuration (default: config.json if present)
//	--size <n>        - board side length
//	--rule <rule>     - B3/S23, 23/3 or a preset name
//	--pattern <path>  - .cells, .rle or .yaml pattern placed in the center
//	--seed <value>    - RNG seed for reproducible boards
//	--db <path>       - run log database (default: ~/.lifelike/runs.db)
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-lifelike/utils"
)

const defaultConfigFile = "config.json"

var (
	// Global flags
	flagConfigPath string
	flagSize       int
	flagRule       string
	flagPattern    string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string

	config utils.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lifelike",
	Short: "Life-like cellular automata in your terminal",
	Long: `lifelike simulates Conway's Game of Life and its life-like relatives
(HighLife, Seeds, Day & Night, ...) on a square board whose edges are
dead, not wrapped.

Examples:
  lifelike run --size 40 --rule highlife
  lifelike play --pattern ./glider.rle
  lifelike serve --ssh :2222
  lifelike history --longest --rule B3/S23`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfigPath, "config", "", "Path to a JSON or YAML config file")
	flags.IntVar(&flagSize, "size", 0, "Board side length")
	flags.StringVar(&flagRule, "rule", "", "Rule string (B3/S23, 23/3) or preset name")
	flags.StringVar(&flagPattern, "pattern", "", "Pattern file to place in the center of the board")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "", "Path to the run log database")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(rulesCmd)
}

// setup builds the logger and resolves the configuration: defaults, then
// the config file, then explicitly set flags.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return errors.Wrapf(err, "[setup] invalid --log-level %q", flagLogLevel)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lifelike",
		Level:           level,
	})

	config, err = loadConfig(flagConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		config.Size = flagSize
	}
	if flags.Changed("rule") {
		config.Rule = flagRule
	}
	if flags.Changed("pattern") {
		config.Pattern = flagPattern
	}
	if flags.Changed("seed") {
		config.Seed = flagSeed
	}
	if flags.Changed("db") {
		config.DBPath = flagDBPath
	}

	return config.Validate()
}

// loadConfig reads path, or config.json when path is empty and the file
// exists. Without either, defaults are used.
func loadConfig(path string) (utils.Config, error) {
	if path != "" {
		return utils.LoadConfig(path)
	}

	if _, err := os.Stat(defaultConfigFile); err != nil {
		logger.Debug("using default configuration", "reason", defaultConfigFile+" not found")
		return utils.DefaultConfig(), nil
	}
	return utils.LoadConfig(defaultConfigFile)
}
