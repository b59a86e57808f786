package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/tui"
	"github.com/sheikhrachel/go-lifelike/utils"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagPatternDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive board over SSH",
	Long: `Start an SSH server that gives every connection its own board and the
same menu as 'lifelike play'. Boards are sized to the client's terminal,
up to the configured size, and the size prompt is capped there too. The
load prompt is off unless --pattern-dir names a directory to load from.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lifelike/host_key

Examples:
  lifelike serve                  # Listen on :23235
  lifelike serve --ssh :2222
  lifelike serve --rule highlife --pattern ./replicator.rle
  lifelike serve --pattern-dir ./patterns

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", tui.DefaultSSHServerConfig().Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagPatternDir, "pattern-dir", "", "Directory sessions may load patterns from (loading is off if empty)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config

	pattern, err := loadPattern(cfg.Pattern)
	if err != nil {
		return err
	}

	factory := func(size int) (*model.Engine, error) {
		if size <= 0 || size > cfg.Size {
			size = cfg.Size
		}
		engine, err := newEngine(cfg, size, pattern, nil)
		if err != nil {
			return nil, err
		}
		if pattern != nil && pattern.Fits(size, 0, 0) {
			rng, _ := newRNG(0)
			if err := seedBoard(engine, pattern, cfg, rng); err != nil {
				return nil, err
			}
		}
		return engine, nil
	}

	opts, err := serveOptions(cfg, flagPatternDir)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Options:     opts,
	}, factory, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting lifelike SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}

// serveOptions are the per-session options. Sessions share the process, so
// they cannot grow boards past cfg.Size or read files outside patternDir.
func serveOptions(cfg utils.Config, patternDir string) (tui.Options, error) {
	dir, err := utils.ExpandHome(patternDir)
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		FrameRate:  cfg.FrameRate,
		ShowAxis:   cfg.ShowAxis,
		StepByStep: cfg.StepByStep,
		// MaxSize 0 would mean uncapped
		MaxSize:    max(cfg.Size, 1),
		PatternDir: dir,
		NoLoad:     dir == "",
	}, nil
}
