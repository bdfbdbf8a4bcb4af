package cli

import (
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arvogrid/floorsa/pkg/blockio"
	"github.com/arvogrid/floorsa/pkg/config"
	"github.com/arvogrid/floorsa/pkg/errors"
	"github.com/arvogrid/floorsa/pkg/ledger"
	"github.com/arvogrid/floorsa/pkg/pipeline"
	"github.com/arvogrid/floorsa/pkg/strategy"
)

type runFlags struct {
	configPath      string
	outputPath      string
	convergencePath string
	strategyTag     string
	workers         int
	deadlineSec     int
	tStart          float64
	tMin            float64
	coolingRate     float64
	factor          float64
	httpStatusAddr  string
	quiet           bool
}

func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <input.block>",
		Short: "Anneal a floorplan and write the packed result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFloorplan(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "TOML configuration file (flags override its values)")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "output .block path (default: stdout)")
	cmd.Flags().StringVar(&flags.convergencePath, "convergence", "", "CSV path to log ledger improvement events")
	cmd.Flags().StringVarP(&flags.strategyTag, "strategy", "s", "", "strategy tag (MultiStart_Coarse, ParallelTempering_Medium, ParallelMoves_Fine)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "worker count (default: host parallelism)")
	cmd.Flags().IntVarP(&flags.deadlineSec, "deadline", "d", 0, "search deadline in seconds")
	cmd.Flags().Float64Var(&flags.tStart, "t-start", 0, "starting temperature")
	cmd.Flags().Float64Var(&flags.tMin, "t-min", 0, "minimum temperature")
	cmd.Flags().Float64Var(&flags.coolingRate, "cooling-rate", 0, "geometric cooling factor per temperature step")
	cmd.Flags().Float64Var(&flags.factor, "factor", 0, "steps-per-temperature multiplier (ceil(factor * n))")
	cmd.Flags().StringVar(&flags.httpStatusAddr, "http-status", "", "address (e.g. :8080) to serve a read-only /status endpoint on while the search runs")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the live progress view")

	return cmd
}

func (c *CLI) runFloorplan(cmd *cobra.Command, inputPath string, flags runFlags) error {
	cfg, fellBack, err := config.LoadFile(flags.configPath)
	if err != nil {
		return err
	}
	runID := uuid.New()
	logger := loggerFromContext(cmd.Context()).With("run_id", runID.String())
	if fellBack {
		logger.Warnf("config file names an unknown strategy, falling back to %s", strategy.MultiStartCoarse)
	}
	applyRunFlags(&cfg, flags)

	outWriter := os.Stdout
	if flags.outputPath != "" {
		f, err := os.Create(flags.outputPath)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "creating output file %s", flags.outputPath)
		}
		defer f.Close()
		outWriter = f
	}

	var convWriter *os.File
	if flags.convergencePath != "" {
		f, err := os.Create(flags.convergencePath)
		if err != nil {
			logger.Warnf("convergence log: %v", errors.Wrap(errors.ErrCodeLogFile, err, "creating %s", flags.convergencePath))
		} else {
			defer f.Close()
			convWriter = f
		}
	}

	runner := pipeline.NewRunner(logger)
	opts := pipeline.Options{
		InputPath: inputPath,
		Strategy:  cfg.Strategy,
		Params:    cfg.Params,
		Workers:   cfg.Workers,
		Deadline:  time.Duration(cfg.DeadlineSec) * time.Second,
		Logger:    logger,
	}
	if convWriter != nil {
		opts.ConvergenceWriter = convWriter
	}

	var progress *tea.Program
	opts.OnLedgerReady = func(led *ledger.Ledger, deadline time.Time) {
		if flags.httpStatusAddr != "" {
			startStatusServer(flags.httpStatusAddr, led, time.Now(), logger)
			logger.Infof("status endpoint listening on %s", flags.httpStatusAddr)
		}
		if !flags.quiet && isTerminal(os.Stderr) {
			model := newRunProgressModel(led, time.Now(), deadline, string(cfg.Strategy), cfg.Workers)
			progress = tea.NewProgram(model, tea.WithOutput(os.Stderr))
			go func() {
				_, _ = progress.Run()
			}()
		}
	}

	result, err := runner.Execute(cmd.Context(), opts)
	if progress != nil {
		progress.Quit()
	}
	if err != nil {
		return err
	}

	if err := blockio.WriteResult(outWriter, result.Tree, result.Cost, result.Catalogue); err != nil {
		return err
	}

	utilization := 0.0
	if result.Cost.ChipW*result.Cost.ChipH > 0 {
		utilization = sumBlockAreas(result) / (result.Cost.ChipW * result.Cost.ChipH)
	}
	logger.Infof("run %s complete: strategy=%s workers=%d elapsed=%s cost=%.6f area=%.4f utilization=%.3f",
		runID, result.Stats.Strategy, result.Stats.Workers, result.Stats.SearchTime.Round(time.Millisecond),
		result.Cost.Cost, result.Cost.Area, utilization)

	return nil
}

// applyRunFlags overrides cfg's fields with any flags the user explicitly
// set, leaving the config-file/default value otherwise. Flags always win.
func applyRunFlags(cfg *config.Config, flags runFlags) {
	if flags.strategyTag != "" {
		// An unrecognised tag is passed through as well, so that
		// pipeline.Runner.Execute warns and falls back to MultiStart_Coarse.
		cfg.Strategy = strategy.Tag(flags.strategyTag)
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
		if limit := runtime.GOMAXPROCS(0); cfg.Workers > limit {
			cfg.Workers = limit
		}
	}
	if flags.deadlineSec > 0 {
		cfg.DeadlineSec = flags.deadlineSec
	}
	if flags.tStart > 0 {
		cfg.Params.TStart = flags.tStart
	}
	if flags.tMin > 0 {
		cfg.Params.TMin = flags.tMin
	}
	if flags.coolingRate > 0 {
		cfg.Params.CoolingRate = flags.coolingRate
	}
	if flags.factor > 0 {
		cfg.Params.Factor = flags.factor
	}
}

// sumBlockAreas totals the catalogue's placed block areas from the packed
// tree, for the utilization ratio original_source/ reports alongside area
// and INL.
func sumBlockAreas(result *pipeline.Result) float64 {
	var sum float64
	for _, n := range result.Tree.Nodes {
		sum += n.W * n.H
	}
	return sum
}
