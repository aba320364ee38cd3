package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/astrogolf/internal/analysis"
	"github.com/san-kum/astrogolf/internal/config"
	"github.com/san-kum/astrogolf/internal/experiment"
	"github.com/san-kum/astrogolf/internal/export"
	"github.com/san-kum/astrogolf/internal/integrators"
	"github.com/san-kum/astrogolf/internal/storage"
	"github.com/san-kum/astrogolf/internal/viz"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	e, err := experiment.New(sc, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	fmt.Printf("running %s (%s, %s)...\n", sc.Name, sc.Model, sc.Solver)
	start := time.Now()
	result, err := e.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %-20s %.6g\n", name, result.Metrics[name])
	}

	if noSave {
		return nil
	}
	runID, err := openStore().Save(e.Info(), result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tMODEL\tTIME\tDURATION\tFRAME DT\tSOLVER\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3g\t%.3g\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FrameDt,
			run.Solver,
			run.Frames,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}

	var data []float64
	caption := fmt.Sprintf("%s of %s", component, rowLabel(meta.Names, row))
	switch {
	case meta.Model == config.ModelCooling:
		data = analysis.Column(result.States, 0)
		caption = "temperature"
	case component == "r":
		data = analysis.Radius(result.States, row)
	default:
		c, err := analysis.ParseComponent(component)
		if err != nil {
			return err
		}
		data = analysis.Column(result.States, analysis.Index(row, c))
	}
	if len(data) == 0 {
		return fmt.Errorf("run %s has no data for row %d", meta.ID, row)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s)\n", meta.Scenario, meta.Model)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s, %s)\n", meta.Scenario, meta.Model, meta.Solver)
	fmt.Printf("frames: %d every %gs\n\n", meta.Frames, meta.FrameDt)

	fmt.Println("metrics:")
	for _, name := range sortedKeys(meta.Metrics) {
		fmt.Printf("  %-20s %.6g\n", name, meta.Metrics[name])
	}

	rows := export.Rows(result.States)
	if rows == 0 {
		return nil
	}
	fmt.Println("\nperiods:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ROW\tNAME\tPERIOD (x)\tMIN r\tMAX r")
	for i := 0; i < rows; i++ {
		period := "-"
		if p, err := analysis.DominantPeriod(analysis.Column(result.States, analysis.Index(i, analysis.X)), meta.FrameDt); err == nil {
			period = fmt.Sprintf("%.4g", p)
		}
		r := analysis.Radius(result.States, i)
		lo, hi := minMax(r)
		fmt.Fprintf(w, "  %d\t%s\t%s\t%.4g\t%.4g\n", i, rowLabel(meta.Names, i), period, lo, hi)
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}
	cx, err := analysis.ParseComponent(xAxis)
	if err != nil {
		return err
	}
	cy, err := analysis.ParseComponent(yAxis)
	if err != nil {
		return err
	}
	xi, yi := analysis.Index(row, cx), analysis.Index(row, cy)

	var p *analysis.Portrait
	title := fmt.Sprintf("phase portrait: %s vs %s, row %d", yAxis, xAxis, row)
	if crossAxis != "" {
		cc, err := analysis.ParseComponent(crossAxis)
		if err != nil {
			return err
		}
		p = analysis.NewSection(result.States, analysis.Index(row, cc), 0, xi, yi)
		title = fmt.Sprintf("section at %s = 0: %s vs %s, row %d (%d crossings)", crossAxis, yAxis, xAxis, row, len(p.Points))
	} else {
		p = analysis.NewPortrait(result.States, xi, yi)
	}
	if len(p.Points) == 0 {
		return fmt.Errorf("no points for row %d", row)
	}

	fmt.Println(viz.Title.Render(title))
	fmt.Print(p.ASCII(72, 24))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.WriteJSON(os.Stdout, meta.RunInfo, result)
	}
	if err := storage.ExportJSON(outFile, meta.RunInfo, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}
	p, err := export.ParsePlane(plane)
	if err != nil {
		return err
	}
	svg, err := export.RunToSVG(result.States, meta.Names, p, svgSize)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kind := range config.Models() {
		fmt.Fprintf(w, "%s\t%s\n", kind, strings.Join(config.ListPresets(kind), " "))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sw := experiment.Sweep{
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Speed:   aimSpeed,
		Angle:   aimAngle,
		Workers: workers,
	}

	ctx, cancel := interruptible()
	defer cancel()

	start := time.Now()
	results, err := experiment.RunSweep(ctx, sc, sw, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}
	fmt.Printf("swept %s over %d values in %v\n\n", sw.Param, len(results), time.Since(start))

	metric := sweepMetric
	if metric == "" {
		if keys := sortedKeys(results[0].Metrics); len(keys) > 0 {
			metric = keys[0]
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\t%s\n", strings.ToUpper(sw.Param), strings.ToUpper(metric))
	series := make([]float64, len(results))
	for i, r := range results {
		series[i] = r.Metrics[metric]
		fmt.Fprintf(w, "%.4g\t%d\t%.6g\n", r.Value, r.Frames, series[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", metric, sw.Param)),
		))
	}
	return nil
}

func runAim(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()
	reg := experiment.NewRegistry()

	switch sc.Model {
	case config.ModelNBody:
		target := aimTarget
		if target < 0 {
			target = firstOther(len(sc.Bodies.Masses), sc.Bodies.Player)
		}
		res, err := experiment.FindAim(ctx, reg, sc, target, aimSpeed, aimLo, aimHi, aimTol)
		if err != nil {
			return err
		}
		fmt.Printf("angle %.4f° at speed %g passes row %d at %.6g (%d runs)\n",
			res.Angle, aimSpeed, target, res.Distance, res.Evaluations)
		return nil

	case config.ModelTrajectory:
		if aimDistance <= 0 {
			return fmt.Errorf("--distance is required for %s scenarios", sc.Model)
		}
		lo, hi := aimLo, aimHi
		if !cmd.Flags().Changed("lo") {
			lo = 1
		}
		if !cmd.Flags().Changed("hi") {
			hi = 200
		}
		speed, err := experiment.FindLaunchSpeed(ctx, reg, sc, aimDistance, lo, hi, aimTol)
		if err != nil {
			return err
		}
		fmt.Printf("launch speed %.4f lands at %g\n", speed, aimDistance)
		return nil
	}
	return fmt.Errorf("cannot aim a %s scenario", sc.Model)
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[:1])
	if err != nil {
		return err
	}
	solvers := args[1:]
	if len(solvers) == 0 {
		solvers = integrators.Methods()
	}

	ctx, cancel := interruptible()
	defer cancel()

	fmt.Printf("comparing solvers for %s (frame dt=%g, duration=%g)\n\n", sc.Name, sc.FrameDt, sc.Duration)
	fmt.Printf("%-8s  %-14s  %-14s  %-10s\n", "solver", "energy_drift", "stability", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	reg := experiment.NewRegistry()
	for _, name := range solvers {
		run := sc.Clone()
		run.Solver = name
		e, err := experiment.New(run, experiment.WithRegistry(reg), experiment.WithLogger(logger))
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}
		start := time.Now()
		result, err := e.Run(ctx)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-8s  error: %v\n", name, err)
			continue
		}
		drift := "-"
		if d, ok := result.Metrics["energy_drift"]; ok {
			drift = fmt.Sprintf("%.3e", d)
		}
		fmt.Printf("%-8s  %-14s  %-14.6g  %10.2f\n", name, drift, result.Metrics["stability"],
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	factory := viewerFactory(experiment.NewRegistry())
	if len(args) == 0 && configFile == "" {
		return viz.RunMenu(factory)
	}
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	v, err := factory(sc)
	if err != nil {
		return err
	}
	return viz.Run(v)
}

func rowLabel(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("row %d", i)
}

// firstOther is the first row that is not the player, or -1.
func firstOther(rows, player int) int {
	for i := 0; i < rows; i++ {
		if i != player {
			return i
		}
	}
	return -1
}

func minMax(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return floats.Min(xs), floats.Max(xs)
}
