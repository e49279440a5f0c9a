package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/phasediag/internal/automation"
	"github.com/san-kum/phasediag/internal/config"
	"github.com/san-kum/phasediag/internal/diagram"
	"github.com/san-kum/phasediag/internal/export"
	"github.com/san-kum/phasediag/internal/logging"
	"github.com/san-kum/phasediag/internal/phase"
	"github.com/san-kum/phasediag/internal/storage"
	"github.com/san-kum/phasediag/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	policy     string
	locator    string
	samples    int
	theme      string
	logFile    string
	debug      bool
	// probe and export
	asJSON  bool
	svgFile  string
	pngFile  string
	jsonFile string
	format  string
	// sweep
	isotherm float64
	isopleth float64
	steps    int
	save     bool
	// regions
	cols int
	rows int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "phasediag",
		Short:        "interactive binary phase diagram",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".phasediag", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&policy, "policy", config.DefaultPolicy, "lever-arm policy (simple, windowed)")
	pf.StringVar(&locator, "locator", config.DefaultLocator, "equilibrium locator (linear, bisect)")
	pf.IntVar(&samples, "samples", phase.DefaultSamples, "samples per curve")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&debug, "debug", false, "debug logging")

	probeCmd := &cobra.Command{
		Use:   "probe [x] [y]",
		Short: "evaluate phase fractions at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  probePoint,
	}
	probeCmd.Flags().BoolVar(&asJSON, "json", false, "print the reading as json")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot both curves in the terminal",
		Args:  cobra.NoArgs,
		RunE:  plotCurves,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate fractions along an isotherm or isopleth",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&isotherm, "isotherm", 0, "sweep composition 0..1 at this value")
	sweepCmd.Flags().Float64Var(&isopleth, "isopleth", 0, "sweep the value axis at this composition")
	sweepCmd.Flags().IntVar(&steps, "steps", 80, "number of points")
	sweepCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	sweepCmd.MarkFlagsMutuallyExclusive("isotherm", "isopleth")

	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "print a phase region map",
		Args:  cobra.NoArgs,
		RunE:  printRegions,
	}
	regionsCmd.Flags().IntVar(&cols, "cols", 60, "map columns")
	regionsCmd.Flags().IntVar(&rows, "rows", 20, "map rows")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved sweep as csv to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [x] [y]",
		Short: "render the diagram with a probe at (x, y) as svg",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgFile, "output", "o", "phasediag.svg", "output file")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [x] [y]",
		Short: "render the diagram with a probe at (x, y) as an image",
		Args:  cobra.ExactArgs(2),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&pngFile, "output", "o", "phasediag.png", "output file")
	exportPNGCmd.Flags().StringVar(&format, "format", "png", "image format (png, svg, pdf)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a saved sweep as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonFile, "output", "o", "", "output file (default stdout)")

	replayCmd := &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "replay scripted drag gestures",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&save, "save", false, "store each gesture as a run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(probeCmd, plotCmd, sweepCmd, regionsCmd, listCmd, showCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd, replayCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers preset, config file and changed flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("locator") {
		cfg.Locator = locator
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *diagram.Context, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, err := cfg.Context(1, 1)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ctx, logger, nil
}

func parseProbe(ctx *diagram.Context, args []string) (phase.Probe, error) {
	x, err := cast.ToFloat64E(args[0])
	if err != nil {
		return phase.Probe{}, fmt.Errorf("invalid composition %q: %w", args[0], err)
	}
	y, err := cast.ToFloat64E(args[1])
	if err != nil {
		return phase.Probe{}, fmt.Errorf("invalid value %q: %w", args[1], err)
	}
	return ctx.Clamp(x, y), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	title := cfg.Preset
	if title == "" {
		title = "phase diagram"
	}
	return viz.Run(viz.NewModel(ctx, viz.Options{
		Title:  title,
		Theme:  cfg.Theme,
		Start:  cfg.GetStart(),
		Logger: logger,
	}))
}

func probePoint(cmd *cobra.Command, args []string) error {
	_, ctx, _, err := setup(cmd)
	if err != nil {
		return err
	}
	p, err := parseProbe(ctx, args)
	if err != nil {
		return err
	}
	fb := ctx.Evaluate(p)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fb.Reading)
	}

	fmt.Fprintln(out, fb.CoordinatesText())
	fmt.Fprintln(out, fb.EquilibriumText())
	fmt.Fprintln(out, fb.FractionsText())
	fmt.Fprintf(out, "Region: %s\n", phase.Classify(fb.Fractions))
	return nil
}

// downsample picks n evenly spaced values of vals.
func downsample(vals []float64, n int) []float64 {
	if len(vals) <= n || n < 2 {
		return vals
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = vals[i*(len(vals)-1)/(n-1)]
	}
	return out
}

func plotCurves(cmd *cobra.Command, args []string) error {
	cfg, ctx, _, err := setup(cmd)
	if err != nil {
		return err
	}
	curve := ctx.Curve()
	lo, hi := ctx.Domain()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "preset: %s\n", cfg.Preset)
	fmt.Fprintf(out, "samples: %d\n\n", curve.Len())

	graph := asciigraph.PlotMany(
		[][]float64{
			downsample(curve.Values(phase.Lower), 80),
			downsample(curve.Values(phase.Upper), 80),
		},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("lower (liquid) and upper (vapour) curves vs composition"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	lo, hi := ctx.Domain()
	path := phase.Isotherm((lo+hi)/2, steps)
	switch {
	case cmd.Flags().Changed("isotherm"):
		path = phase.Isotherm(ctx.Clamp(0, isotherm).Y, steps)
	case cmd.Flags().Changed("isopleth"):
		path = phase.Isopleth(ctx.Clamp(isopleth, lo).X, lo, hi, steps)
	}

	readings, err := phase.Sweep(cmd.Context(), ctx.Evaluator(), path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printReadings(out, readings, fmt.Sprintf("vapour / liquid from (%.3f, %s) to (%.3f, %s)",
		path.From.X, diagram.FormatValue(ctx.Axis(), path.From.Y),
		path.To.X, diagram.FormatValue(ctx.Axis(), path.To.Y)))

	sum := storage.Summarize(readings)
	fmt.Fprintf(out, "vapour: %d  liquid: %d  two-phase: %d\n", sum.Vapour, sum.Liquid, sum.TwoPhase)

	if !save {
		return nil
	}
	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Preset:  cfg.Preset,
		Samples: cfg.Samples,
		Locator: cfg.Locator,
		Policy:  cfg.Policy,
		Axis:    cfg.Axis,
		From:    path.From,
		To:      path.To,
	}, readings)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved: %s\n", id)
	return nil
}

func printReadings(out io.Writer, readings []phase.Reading, caption string) {
	if len(readings) < 2 {
		fmt.Fprintln(out, "no data to plot")
		return
	}
	vap := make([]float64, len(readings))
	liq := make([]float64, len(readings))
	for i, r := range readings {
		vap[i], liq[i] = r.Fractions.Vapour, r.Fractions.Liquid
	}
	graph := asciigraph.PlotMany([][]float64{vap, liq},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)
}

func printRegions(cmd *cobra.Command, args []string) error {
	_, ctx, _, err := setup(cmd)
	if err != nil {
		return err
	}
	lo, hi := ctx.Domain()
	grid, err := phase.RegionGrid(ctx.Evaluator(), lo, hi, cols, rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	axis := ctx.Axis()
	for i, line := range grid {
		label := ""
		switch i {
		case 0:
			label = diagram.FormatValue(axis, hi)
		case len(grid) - 1:
			label = diagram.FormatValue(axis, lo)
		}
		var sb strings.Builder
		for _, r := range line {
			sb.WriteRune(r.Symbol())
		}
		fmt.Fprintf(out, "%8s |%s\n", label, sb.String())
	}
	fmt.Fprintf(out, "%8s +%s\n", "", strings.Repeat("-", cols))
	fmt.Fprintf(out, "%8s  0%s1\n", "", strings.Repeat(" ", max(cols-2, 0)))
	fmt.Fprintf(out, "\n%c vapour  %c liquid  %c two-phase  %c undefined\n",
		phase.RegionVapour.Symbol(), phase.RegionLiquid.Symbol(),
		phase.RegionTwoPhase.Symbol(), phase.RegionUndefined.Symbol())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tPOLICY\tLOCATOR\tV/L/2P")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d/%d/%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Policy,
			run.Locator,
			run.Summary.Vapour, run.Summary.Liquid, run.Summary.TwoPhase,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, nil)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	readings, err := st.LoadReadings(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s\n", meta.Preset)
	fmt.Fprintf(out, "policy: %s  locator: %s  samples: %d\n", meta.Policy, meta.Locator, meta.Samples)
	fmt.Fprintf(out, "path: (%.3f, %s) -> (%.3f, %s)\n",
		meta.From.X, diagram.FormatValue(meta.Axis, meta.From.Y),
		meta.To.X, diagram.FormatValue(meta.Axis, meta.To.Y))
	fmt.Fprintf(out, "readings: %d\n\n", len(readings))

	printReadings(out, readings, "vapour / liquid")
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	readings, err := st.LoadReadings(args[0])
	if err != nil {
		return err
	}
	if len(readings) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "vapour", "liquid", "region"}); err != nil {
		return err
	}
	for _, r := range readings {
		row := []string{
			strconv.FormatFloat(r.Probe.X, 'f', 6, 64),
			strconv.FormatFloat(r.Probe.Y, 'f', 6, 64),
			strconv.FormatFloat(r.Fractions.Vapour, 'f', 6, 64),
			strconv.FormatFloat(r.Fractions.Liquid, 'f', 6, 64),
			phase.Classify(r.Fractions).String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	readings, err := st.LoadReadings(args[0])
	if err != nil {
		return err
	}

	if jsonFile == "" {
		return export.WriteJSON(cmd.OutOrStdout(), *meta, readings)
	}
	if err := export.ExportJSON(jsonFile, *meta, readings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", jsonFile)
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	results, err := automation.RunScenario(cmd.Context(), ctx, scenario, logger)
	if err != nil {
		return err
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir, logger)
		if err := st.Init(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if scenario.Name != "" {
		fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	}
	for i, res := range results {
		fb := res.Final
		fmt.Fprintf(out, "\n[%s] %d moves\n", res.Label, len(res.Readings))
		fmt.Fprintln(out, fb.CoordinatesText())
		fmt.Fprintln(out, fb.FractionsText())
		fmt.Fprintf(out, "Region: %s\n", phase.Classify(fb.Fractions))

		if st == nil || len(res.Readings) == 0 {
			continue
		}
		g := scenario.Gestures[i]
		policyName, locatorName := cfg.Policy, cfg.Locator
		if g.Policy != "" {
			policyName = g.Policy
		}
		if g.Locator != "" {
			locatorName = g.Locator
		}
		id, err := st.Save(storage.RunMetadata{
			Preset:  cfg.Preset,
			Samples: cfg.Samples,
			Locator: locatorName,
			Policy:  policyName,
			Axis:    cfg.Axis,
			From:    res.Readings[0].Probe,
			To:      fb.Probe,
		}, res.Readings)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved: %s\n", id)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	p, err := parseProbe(ctx, args)
	if err != nil {
		return err
	}

	svg := export.DiagramToSVG(ctx, ctx.Evaluate(p), export.DefaultSVGOptions())
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", zap.String("file", svgFile))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgFile)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	cfg, ctx, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	p, err := parseProbe(ctx, args)
	if err != nil {
		return err
	}

	f, err := os.Create(pngFile)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := export.DefaultPNGOptions()
	opts.Format = format
	if cfg.Preset != "" {
		opts.Title = cfg.Preset
	}
	if err := export.DiagramToPNG(f, ctx, ctx.Evaluate(p), opts); err != nil {
		return err
	}
	logger.Info("image written", zap.String("file", pngFile), zap.String("format", format))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", pngFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOLICY\tLOCATOR\tSAMPLES\tAXIS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		lo, hi := p.Axis.Domain()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s .. %s\n",
			name, p.Policy, p.Locator, p.Samples,
			diagram.FormatValue(p.Axis, lo), diagram.FormatValue(p.Axis, hi))
	}
	return w.Flush()
}
