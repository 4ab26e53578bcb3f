package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/backdrop/internal/automation"
	"github.com/san-kum/backdrop/internal/bench"
	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/gui"
	"github.com/san-kum/backdrop/internal/pointer"
	"github.com/san-kum/backdrop/internal/storage"
	"github.com/san-kum/backdrop/internal/theme"
	"github.com/san-kum/backdrop/internal/tui"
	"github.com/san-kum/backdrop/internal/variant"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string

	variantName string
	effectName  string
	intensity   string
	themeMode   string
	fps         int
	seed        int64
	scale       float64
	systemDark  bool

	backend     string
	width       int
	height      int
	snapFrames  int
	benchFrames int
	sweepFrames int
	instances   int
	outFile     string
	format      string
	save        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "backdrop",
		Short:         "procedural animated backgrounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".backdrop", "data directory for bench runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file")
	pf.StringVar(&variantName, "variant", config.DefaultVariant, "variant "+strings.Join(variant.Names(), "|"))
	pf.StringVar(&effectName, "effect", "", "pointer effect "+strings.Join(pointer.Names(), "|")+" (empty for none)")
	pf.StringVar(&intensity, "intensity", string(config.DefaultIntensity), "intensity low|medium|high")
	pf.StringVar(&themeMode, "theme", string(theme.System), "theme light|dark|system")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "logical units per braille dot")
	pf.BoolVar(&systemDark, "system-dark", false, "system theme preference (default: detect from terminal)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", gui.Raylib, "window backend "+strings.Join(gui.Backends(), "|"))
	guiCmd.Flags().IntVar(&width, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&height, "height", 720, "window height")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render headless frames and export the last one",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 60, "frames to render")
	snapshotCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	snapshotCmd.Flags().StringVar(&format, "format", "svg", "output format svg|png|braille")
	snapshotCmd.Flags().IntVar(&width, "width", 1280, "surface width")
	snapshotCmd.Flags().IntVar(&height, "height", 720, "surface height")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark independent instances in parallel",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per instance")
	benchCmd.Flags().IntVar(&instances, "instances", 4, "parallel instances")
	benchCmd.Flags().IntVar(&width, "width", 1280, "surface width")
	benchCmd.Flags().IntVar(&height, "height", 720, "surface height")
	benchCmd.Flags().BoolVar(&save, "save", true, "save the run under --data")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot render times of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "list variants and pointer effects",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("variants:", strings.Join(variant.Names(), ", "))
			fmt.Println("effects: ", strings.Join(pointer.Names(), ", "))
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "render every variant at every intensity",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 120, "frames per cell")
	sweepCmd.Flags().IntVar(&width, "width", 1280, "surface width")
	sweepCmd.Flags().IntVar(&height, "height", 720, "surface height")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, snapshotCmd, benchCmd, runsCmd, plotCmd, exportCmd, presetsCmd, variantsCmd, scriptCmd, sweepCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file overrides preset.
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = variantName
	}
	if flags.Changed("effect") {
		cfg.Effect = effectName
	}
	if flags.Changed("intensity") {
		i, err := config.ParseIntensity(intensity)
		if err != nil {
			return nil, err
		}
		cfg.Intensity = i
	}
	if flags.Changed("theme") {
		m, err := theme.ParseMode(themeMode)
		if err != nil {
			return nil, err
		}
		cfg.Theme = m
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("scale") {
		cfg.Terminal.Scale = scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// platform answers the system theme: --system-dark when given, otherwise
// BACKDROP_SYSTEM_THEME and COLORFGBG.
func platform(cmd *cobra.Command) theme.Platform {
	if cmd.Flags().Changed("system-dark") {
		return theme.Fixed(systemDark)
	}
	return theme.Fixed(theme.DetectTerminal(os.Getenv))
}

// setupLogger installs the default logger. fallback receives logs when no
// --log-file is given; the terminal UI passes io.Discard to keep the alt
// screen clean.
func setupLogger(fallback io.Writer) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	out, closer := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		out, closer = f, func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return closer, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(*cfg, tui.Options{Platform: platform(cmd), Logger: slog.Default()})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("opening window", "backend", backend, "variant", cfg.Variant)
	return gui.Run(backend, *cfg, gui.Options{
		Width:    width,
		Height:   height,
		Platform: platform(cmd),
		Logger:   slog.Default(),
	})
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	snap, err := bench.TakeSnapshot(*cfg, float64(width), float64(height), snapFrames, platform(cmd))
	if err != nil {
		return err
	}

	var out string
	switch format {
	case "svg":
		out = snap.SVG()
	case "png":
		img, err := snap.PNG()
		if err != nil {
			return err
		}
		out = string(img)
	case "braille":
		out = snap.Braille(width/16, height/32)
	default:
		return fmt.Errorf("unknown format: %s (want svg, png or braille)", format)
	}

	if outFile == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(out), 0644); err != nil {
		return err
	}
	slog.Info("snapshot written", "path", outFile, "frames", snap.Frames, "format", format)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := bench.NewEnsemble(*cfg, instances, seedStart).
		WithSize(float64(width), float64(height)).
		WithLogger(slog.Default())

	fmt.Printf("benchmarking %s: %d instances x %d frames\n\n", cfg.Variant, instances, benchFrames)
	start := time.Now()
	results, err := ens.Run(ctx, benchFrames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE\tSEED\tFRAMES\tDRAWS\tFRAME_MS\tMAX_MS\tOVER_BUDGET")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.3f\t%.3f\t%.1f%%\n",
			r.Instance, r.Seed, r.Frames, r.DrawCalls,
			r.Metrics["frame_ms"], r.Metrics["frame_max_ms"], r.Metrics["over_budget"]*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	agg := bench.Aggregate(results)
	total := 0
	for _, r := range results {
		total += r.Frames
	}
	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	fmt.Printf("mean frame %.3fms, worst %.3fms, stability %.3f\n", agg["frame_ms"], agg["frame_max_ms"], agg["stability"])

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Variant:   cfg.Variant,
		Effect:    cfg.Effect,
		Intensity: string(cfg.Intensity),
		Seed:      seedStart,
		Frames:    benchFrames,
		Instances: instances,
		Width:     float64(width),
		Height:    float64(height),
		Metrics:   agg,
	}, bench.Samples(results))
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tEFFECT\tINTENSITY\tTIME\tINSTANCES\tFRAMES\tFRAME_MS")

	for _, run := range runs {
		effect := run.Effect
		if effect == "" {
			effect = "none"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%.3f\n",
			run.ID,
			run.Variant,
			effect,
			run.Intensity,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Instances,
			run.Frames,
			run.Metrics["frame_ms"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := make([][]float64, meta.Instances)
	for _, s := range samples {
		if s.Instance >= 0 && s.Instance < len(series) {
			series[s.Instance] = append(series[s.Instance], s.RenderMS)
		}
	}
	for i, data := range series {
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("instance %d render ms", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tVARIANT\tEFFECT\tINTENSITY\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		effect := p.Effect
		if effect == "" {
			effect = "none"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, p.Variant, effect, p.Intensity, p.Theme)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if preset == "" {
		return nil
	}
	p := config.GetPreset(preset)
	if p == nil {
		return fmt.Errorf("unknown preset: %s", preset)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Println()
	return enc.Encode(p)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	path := filepath.Join(dataDir, "config.yaml")
	if len(args) == 1 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n\n", sc.Name, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tELEMENTS\tSIZE\tDARK\tRUNNING\tDRAWS\tSAVED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.0fx%.0f\t%v\t%v\t%d\t%s\n",
			r.Step, r.Frames, r.Elements, r.Width, r.Height, r.Dark, r.Running, r.DrawCalls, r.Saved)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.Sweep{
		Base:   *cfg,
		Frames: sweepFrames,
		Width:  float64(width),
		Height: float64(height),
		Seed:   cfg.Seed,
	}
	if cmd.Flags().Changed("variant") {
		sweep.Variants = []string{cfg.Variant}
	}
	if cmd.Flags().Changed("intensity") {
		sweep.Intensities = []config.Intensity{cfg.Intensity}
	}
	results, err := automation.RunSweep(ctx, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tINTENSITY\tELEMENTS\tDRAWS\tFRAME_MS\tMAX_MS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\t%.3f\n",
			r.Variant, r.Intensity, r.Elements, r.DrawCalls, r.FrameMS, r.MaxMS)
	}
	return w.Flush()
}
