package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/dalitz/internal/config"
	"github.com/san-kum/dalitz/internal/dalitz"
	"github.com/san-kum/dalitz/internal/experiment"
	"github.com/san-kum/dalitz/internal/export"
	"github.com/san-kum/dalitz/internal/logging"
	"github.com/san-kum/dalitz/internal/models"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
	"github.com/san-kum/dalitz/internal/registry"
	"github.com/san-kum/dalitz/internal/storage"
	"github.com/san-kum/dalitz/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	points  int
	workers int
	noSave  bool
	format  string
	axis    string
	svgPath string

	mapWidth  int
	mapHeight int
	level     float64

	// Dalitz plot masses
	mParent float64
	m1      float64
	m2      float64
	m3      float64

	xmin, xmax float64
	ymin, ymax float64

	log zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dalitz",
		Short:         "dalitz plot integration and 2d phase space models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log = logging.NewConsole(os.Stderr, lvl)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dalitz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	phaseCmd := &cobra.Command{
		Use:   "phasespace",
		Short: "dalitz plot area and three-body phase space",
		Args:  cobra.NoArgs,
		RunE:  phaseSpace,
	}
	phaseCmd.Flags().Float64Var(&mParent, "m", 0, "parent mass (default from config)")
	phaseCmd.Flags().Float64Var(&m1, "m1", 0, "first daughter mass")
	phaseCmd.Flags().Float64Var(&m2, "m2", 0, "second daughter mass")
	phaseCmd.Flags().Float64Var(&m3, "m3", 0, "third daughter mass")

	evalCmd := &cobra.Command{
		Use:   "eval [kind] [x] [y]",
		Short: "evaluate a model at a point",
		Args:  cobra.ExactArgs(3),
		RunE:  evalModel,
	}

	integrateCmd := &cobra.Command{
		Use:   "integrate [kind]",
		Short: "integrate a model over a rectangle",
		Args:  cobra.ExactArgs(1),
		RunE:  integrateModel,
	}
	integrateCmd.Flags().Float64Var(&xmin, "xmin", 0, "lower x edge (default box)")
	integrateCmd.Flags().Float64Var(&xmax, "xmax", 0, "upper x edge (default box)")
	integrateCmd.Flags().Float64Var(&ymin, "ymin", 0, "lower y edge (default box)")
	integrateCmd.Flags().Float64Var(&ymax, "ymax", 0, "upper y edge (default box)")

	projectCmd := &cobra.Command{
		Use:   "project [kind]",
		Short: "compute and plot the x and y projections",
		Args:  cobra.ExactArgs(1),
		RunE:  projectModel,
	}
	projectCmd.Flags().IntVar(&points, "points", 0, "samples per projection (default from config)")
	projectCmd.Flags().IntVar(&workers, "workers", 1, "concurrent projection workers")
	projectCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	densityCmd := &cobra.Command{
		Use:   "density [kind]",
		Short: "draw the region where the model exceeds a fraction of its peak",
		Args:  cobra.ExactArgs(1),
		RunE:  densityMap,
	}
	densityCmd.Flags().IntVar(&mapWidth, "width", 40, "map width in characters")
	densityCmd.Flags().IntVar(&mapHeight, "height", 20, "map height in characters")
	densityCmd.Flags().Float64Var(&level, "level", 0.1, "fraction of the peak value")
	densityCmd.Flags().StringVar(&svgPath, "svg", "", "also write the map as svg")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run projections",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or svg")
	exportCmd.Flags().StringVar(&axis, "axis", "x", "projection drawn by svg export (x or y)")

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list model kinds or presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [kind]",
		Short: "adjust model parameters interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  explore,
	}
	exploreCmd.Flags().IntVar(&points, "points", 0, "samples per projection (default from config)")

	rootCmd.AddCommand(phaseCmd, evalCmd, integrateCmd, projectCmd, densityCmd, listCmd, exportCmd, presetsCmd, exploreCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildModel(kind string) (*config.Config, models.Model, error) {
	cfg, err := config.Resolve(kind, preset, configFile)
	if err != nil {
		return nil, nil, err
	}
	m, err := registry.New().Build(cfg, quad.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("kind", cfg.Model.Kind).Int("npars", m.NPars()).Msg("model built")
	return cfg, m, nil
}

func phaseSpace(cmd *cobra.Command, args []string) error {
	// presets describe models; only a config file carries dalitz masses
	cfg, err := config.Resolve("", "", configFile)
	if err != nil {
		return err
	}
	opts := cfg.QuadOptions(quad.WithLogger(log))
	d := cfg.Dalitz
	flags := cmd.Flags()
	if flags.Changed("m") {
		d.M = mParent
	}
	if flags.Changed("m1") {
		d.M1 = m1
	}
	if flags.Changed("m2") {
		d.M2 = m2
	}
	if flags.Changed("m3") {
		d.M3 = m3
	}

	in, err := dalitz.New(d.M1, d.M2, d.M3, opts...)
	if err != nil {
		return err
	}
	s12, err := in.IntegrateS1S2(d.M, dalitz.One)
	if err != nil {
		return fmt.Errorf("s1,s2 integration: %w", err)
	}
	e23, err := in.IntegrateE2E3(d.M, dalitz.One)
	if err != nil {
		return fmt.Errorf("e2,e3 integration: %w", err)
	}
	ps3, err := phasespace.PhaseSpace3(d.M, d.M1, d.M2, d.M3, opts...)
	if err != nil {
		return err
	}

	s := d.M * d.M
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "masses\tM=%g m1=%g m2=%g m3=%g\n", d.M, d.M1, d.M2, d.M3)
	fmt.Fprintf(w, "threshold\t%g\n", in.Threshold())
	fmt.Fprintf(w, "area (s1,s2)\t%.10g\n", s12)
	fmt.Fprintf(w, "area (e2,e3)\t%.10g\n", 4*s*e23)
	fmt.Fprintf(w, "phase space\t%.10g\n", ps3)
	return w.Flush()
}

func evalModel(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}
	_, m, err := buildModel(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%.10g\n", m.Evaluate(x, y))
	return nil
}

func integrateModel(cmd *cobra.Command, args []string) error {
	_, m, err := buildModel(args[0])
	if err != nil {
		return err
	}

	xl, xh, yl, yh := m.XMin(), m.XMax(), m.YMin(), m.YMax()
	flags := cmd.Flags()
	if flags.Changed("xmin") {
		xl = xmin
	}
	if flags.Changed("xmax") {
		xh = xmax
	}
	if flags.Changed("ymin") {
		yl = ymin
	}
	if flags.Changed("ymax") {
		yh = ymax
	}

	v, err := m.Integral(xl, xh, yl, yh)
	if err != nil {
		return err
	}
	fmt.Printf("%.10g\n", v)
	return nil
}

func projectModel(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(args[0])
	if err != nil {
		return err
	}
	n := cfg.Points
	if cmd.Flags().Changed("points") {
		n = points
	}

	exp := experiment.New(m, experiment.Config{Points: n, Workers: workers}, log)
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotProjection(res.ProjX, "x projection", 80, 10))
	fmt.Println()
	fmt.Println(viz.PlotProjection(res.ProjY, "y projection", 80, 10))
	fmt.Printf("\nintegral %.10g\n", res.Integral)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Kind:   cfg.Model.Kind,
		Preset: preset,
		Pars:   m.Pars(),
		XMin:   m.XMin(),
		XMax:   m.XMax(),
		YMin:   m.YMin(),
		YMax:   m.YMax(),
	}
	runID, err := st.Save(meta, res)
	if err != nil {
		return err
	}
	log.Info().Str("run", runID).Msg("run saved")
	return nil
}

func densityMap(cmd *cobra.Command, args []string) error {
	_, m, err := buildModel(args[0])
	if err != nil {
		return err
	}

	c := viz.DensityMap(m, mapWidth, mapHeight, level)
	fmt.Print(c.String())
	fmt.Printf("x [%g, %g]  y [%g, %g]  level %g\n", m.XMin(), m.XMax(), m.YMin(), m.YMax(), level)

	if svgPath == "" {
		return nil
	}
	if err := os.WriteFile(svgPath, []byte(export.CanvasToSVG(c, 4)), 0644); err != nil {
		return err
	}
	log.Info().Str("path", svgPath).Msg("density map written")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPRESET\tTIME\tPOINTS\tINTEGRAL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6g\n",
			run.ID,
			run.Kind,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Integral,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadProjection(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return storage.ExportJSON(os.Stdout, meta.Kind, meta.Pars, res)
	case "csv":
		return storage.WriteCSV(os.Stdout, res)
	case "svg":
		xs, ys := res.X, res.ProjX
		if axis == "y" {
			xs, ys = res.Y, res.ProjY
		}
		_, err := fmt.Println(export.ProjectionToSVG(xs, ys, 800, 400, "#00ffff"))
		return err
	}
	return fmt.Errorf("unknown format: %s", format)
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("model kinds:")
		for _, k := range config.Kinds() {
			fmt.Printf("  %-14s %v\n", k, config.ListPresets(k))
		}
		return nil
	}
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		return fmt.Errorf("no presets for kind: %s", args[0])
	}
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func explore(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(args[0])
	if err != nil {
		return err
	}
	n := cfg.Points
	if cmd.Flags().Changed("points") {
		n = points
	}

	p := tea.NewProgram(viz.NewExplorer(cfg.Model.Kind, m, n, log))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
