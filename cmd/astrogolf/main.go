package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/astrogolf/internal/experiment"
	"github.com/san-kum/astrogolf/internal/logging"
	"github.com/san-kum/astrogolf/internal/storage"
	"github.com/san-kum/astrogolf/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	// scenario overrides shared by run, sweep, aim, compare and live
	configFile string
	solver     string
	frameDt    float64
	duration   float64
	params     map[string]string

	// run selection and plotting
	row       int
	component string
	plane     string
	svgSize   int
	outFile   string
	noSave    bool
	xAxis     string
	yAxis     string
	crossAxis string

	// sweeps and searches
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepMetric string
	workers     int
	aimSpeed    float64
	aimAngle    float64
	aimTarget   int
	aimLo       float64
	aimHi       float64
	aimTol      float64
	aimDistance float64

	logger *slog.Logger
)

// main registers the astrogolf commands. With no subcommand it opens the
// preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:          "astrogolf",
		Short:        "fixed-step n-body playground",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelFromEnv()
			if cmd.Flags().Changed("log-level") {
				l, err := logging.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				level = l
			}
			logger = logging.New(logging.Options{Level: level, JSON: logJSON})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(viewerFactory(experiment.NewRegistry()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".astrogolf", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error); defaults to $"+logging.EnvLevel)
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a preset or scenario file and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without storing the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one body component of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&row, "row", 0, "body row")
	plotCmd.Flags().StringVar(&component, "component", "x", "x, y, z, vx, vy, vz or r")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "report metrics and orbital periods of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "draw a phase portrait or Poincaré section of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&row, "row", 0, "body row")
	phaseCmd.Flags().StringVar(&xAxis, "x", "x", "horizontal component")
	phaseCmd.Flags().StringVar(&yAxis, "y", "vx", "vertical component")
	phaseCmd.Flags().StringVar(&crossAxis, "section", "", "record only upward zero crossings of this component")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the paths of a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xz", "projection plane (xz, xy, yz)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openStore().Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a scenario across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "sweep", experiment.AngleParam, "parameter to sweep: an evaluator parameter, angle or speed")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -30, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 30, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 13, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "", "metric to chart (default the first)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default GOMAXPROCS)")
	sweepCmd.Flags().Float64Var(&aimSpeed, "speed", 5, "launch speed when sweeping angle")
	sweepCmd.Flags().Float64Var(&aimAngle, "angle", 0, "launch angle when sweeping speed")

	aimCmd := &cobra.Command{
		Use:   "aim [preset]",
		Short: "search for the launch that reaches a target",
		Long: "For n-body scenarios, search the launch angle that brings the player\n" +
			"closest to the target body. For trajectory scenarios, search the launch\n" +
			"speed that lands the projectile at --distance.",
		Args: cobra.MaximumNArgs(1),
		RunE: runAim,
	}
	addScenarioFlags(aimCmd)
	aimCmd.Flags().IntVar(&aimTarget, "target", -1, "target body row (default the first non-player row)")
	aimCmd.Flags().Float64Var(&aimSpeed, "speed", 5, "launch speed for n-body aiming")
	aimCmd.Flags().Float64Var(&aimLo, "lo", -90, "lower bound of the search")
	aimCmd.Flags().Float64Var(&aimHi, "hi", 90, "upper bound of the search")
	aimCmd.Flags().Float64Var(&aimTol, "tol", 0.01, "search tolerance")
	aimCmd.Flags().Float64Var(&aimDistance, "distance", 0, "landing distance for trajectory scenarios")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [solver...]",
		Short: "run a preset under several solvers and compare drift",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSolvers,
	}
	addScenarioFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "play a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportJSONCmd, exportSVGCmd,
		deleteCmd, presetsCmd, sweepCmd, aimCmd, compareCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "scenario YAML file")
	cmd.Flags().StringVar(&solver, "solver", "", "solver (euler, rk2, rk4)")
	cmd.Flags().Float64Var(&frameDt, "dt", 0, "frame interval")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "evaluator parameter overrides, e.g. -p g=1.6")
}

func openStore() *storage.Store {
	return storage.New(dataDir, storage.WithLogger(logger))
}
